package math

import (
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	id := Identity()
	result := m.Mul(id)

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation should be in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestScale(t *testing.T) {
	m := Scale(2, 3, 4)

	if m[0] != 2 || m[5] != 3 || m[10] != 4 {
		t.Errorf("Scale diagonal: got (%f, %f, %f), want (2, 3, 4)", m[0], m[5], m[10])
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	result := m.TransformPoint([3]float32{1, 2, 3})

	expected := [3]float32{11, 22, 33}
	if result != expected {
		t.Errorf("TransformPoint: got %v, want %v", result, expected)
	}
}

func TestRotations(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		in   [3]float32
		want [3]float32
	}{
		{"x90 maps y to z", RotateX(90), [3]float32{0, 1, 0}, [3]float32{0, 0, 1}},
		{"x-90 maps z to y", RotateX(-90), [3]float32{0, 0, 1}, [3]float32{0, 1, 0}},
		{"y90 maps x to -z", RotateY(90), [3]float32{1, 0, 0}, [3]float32{0, 0, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.TransformPoint(tt.in)
			for i := range got {
				if abs(got[i]-tt.want[i]) > 1e-5 {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestMulAppliesRightmostFirst(t *testing.T) {
	// Translate then scale, glTranslate/glScale order: the scale hits the point first.
	m := Translate(1, 0, 0).Mul(Scale(2, 2, 2))
	got := m.TransformPoint([3]float32{1, 1, 1})
	want := [3]float32{3, 2, 2}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(90, 1, 0.1, 100)

	// f = 1/tan(45deg) = 1
	if abs(m[0]-1) > 1e-5 || abs(m[5]-1) > 1e-5 {
		t.Errorf("Perspective focal terms: got (%f, %f), want (1, 1)", m[0], m[5])
	}
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestInverse(t *testing.T) {
	m := Translate(1, 2, 3).Mul(RotateX(30)).Mul(Scale(0.5, 0.5, 2))
	got := m.Mul(m.Inverse())
	if !approxEqual(got, Identity(), 1e-5) {
		t.Errorf("M * M^-1 = %v, want identity", got)
	}
}

func TestTranspose(t *testing.T) {
	m := Translate(1, 2, 3).Transpose()
	if m[3] != 1 || m[7] != 2 || m[11] != 3 || m[12] != 0 {
		t.Errorf("Transpose did not move translation into the bottom row: %v", m)
	}
}

func TestNormalMatrixNonUniformScale(t *testing.T) {
	// A 45 degree surface under Scale(1, 2, 1): the normal must stay perpendicular.
	m := Scale(1, 2, 1)
	tangent := Vec3{1, 1, 0}
	normal := Vec3{1, -1, 0}

	tt := V3(m.TransformDirection(tangent.Array()))
	nn := V3(m.NormalMatrix().TransformDirection(normal.Array()))
	if d := tt.X*nn.X + tt.Y*nn.Y + tt.Z*nn.Z; abs(d) > 1e-5 {
		t.Errorf("transformed normal not perpendicular: dot = %f", d)
	}
}

func TestRadians(t *testing.T) {
	if got := Radians(180); abs(got-3.14159265) > 1e-5 {
		t.Errorf("Radians(180) = %f, want pi", got)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func approxEqual(a, b Mat4, eps float32) bool {
	for i := range a {
		if abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}
