package camera

import (
	"math/rand"
	"testing"

	"github.com/Faultbox/cylinders/internal/config"
	"github.com/Faultbox/cylinders/internal/engine/controls"
	"github.com/Faultbox/cylinders/pkg/math"
)

func newTestCamera(az, el, dist float32) *OrbitCamera {
	cfg := config.Default().Camera
	cfg.Azimuth, cfg.Elevation, cfg.Distance = az, el, dist
	return NewOrbitCamera(cfg)
}

func TestApplyActions(t *testing.T) {
	tests := []struct {
		action       controls.Action
		az, el, dist float32
		wantRedraw   bool
	}{
		{controls.ActionAzimuthLeft, 5, 0, 5, true},
		{controls.ActionAzimuthRight, -5, 0, 5, true},
		{controls.ActionElevationDown, 0, -5, 5, true},
		{controls.ActionElevationUp, 0, 5, 5, true},
		{controls.ActionZoomOut, 0, 0, 5.5, true},
		{controls.ActionZoomIn, 0, 0, 4.5, true},
		{controls.ActionQuit, 0, 0, 5, false},
		{controls.ActionScreenshot, 0, 0, 5, false},
		{controls.ActionNone, 0, 0, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			c := newTestCamera(0, 0, 5)
			if got := c.Apply(tt.action); got != tt.wantRedraw {
				t.Errorf("Apply() = %v, want %v", got, tt.wantRedraw)
			}
			if c.Azimuth != tt.az || c.Elevation != tt.el || c.Distance != tt.dist {
				t.Errorf("state = (%v, %v, %v), want (%v, %v, %v)",
					c.Azimuth, c.Elevation, c.Distance, tt.az, tt.el, tt.dist)
			}
		})
	}
}

func TestElevationClamped(t *testing.T) {
	c := newTestCamera(0, 85, 5)

	c.Apply(controls.ActionElevationUp)
	c.Apply(controls.ActionElevationUp)
	if c.Elevation != MaxElevation {
		t.Errorf("elevation = %v, want %v", c.Elevation, MaxElevation)
	}

	for i := 0; i < 50; i++ {
		c.Apply(controls.ActionElevationDown)
	}
	if c.Elevation != MinElevation {
		t.Errorf("elevation = %v, want %v", c.Elevation, MinElevation)
	}

	// Out-of-range config is clamped on construction
	if c := newTestCamera(0, 120, 5); c.Elevation != MaxElevation {
		t.Errorf("constructed elevation = %v, want %v", c.Elevation, MaxElevation)
	}
}

func TestElevationStaysInRangeForRandomInput(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	c := newTestCamera(0, 0, 5)

	for i := 0; i < 10000; i++ {
		if r.Intn(2) == 0 {
			c.Apply(controls.ActionElevationUp)
		} else {
			c.Apply(controls.ActionElevationDown)
		}
		if c.Elevation < MinElevation || c.Elevation > MaxElevation {
			t.Fatalf("step %d: elevation %v out of range", i, c.Elevation)
		}
	}
}

func TestDistanceUnclampedByDefault(t *testing.T) {
	c := newTestCamera(0, 0, 1)

	for i := 0; i < 4; i++ {
		c.Apply(controls.ActionZoomIn)
	}
	if c.Distance != -1 {
		t.Errorf("distance = %v, want -1", c.Distance)
	}
}

func TestDistanceClampWhenEnabled(t *testing.T) {
	c := newTestCamera(0, 0, 1)
	c.ClampDistance = true
	c.MinDistance = 0.5

	for i := 0; i < 4; i++ {
		c.Apply(controls.ActionZoomIn)
	}
	if c.Distance != 0.5 {
		t.Errorf("distance = %v, want 0.5", c.Distance)
	}
}

func TestViewMatrixNoRotation(t *testing.T) {
	c := newTestCamera(0, 0, 5)
	got := c.ViewMatrix()
	want := math.Translate(0, 0, -5)

	if !approxEqual(got, want, 1e-6) {
		t.Errorf("ViewMatrix() = %v, want %v", got, want)
	}
}

func TestViewMatrixOrder(t *testing.T) {
	c := newTestCamera(90, 0, 5)

	// RotY(90) maps +x to -z before the translation, so +x lands at z = -6.
	got := c.ViewMatrix().TransformPoint([3]float32{1, 0, 0})
	if abs(got[0]) > 1e-5 || abs(got[1]) > 1e-5 || abs(got[2]+6) > 1e-5 {
		t.Errorf("x axis in view space = %v, want (0, 0, -6)", got)
	}

	c = newTestCamera(0, 90, 5)
	// RotX(90) maps +y to +z, then the translation pulls it back to z = -4.
	got = c.ViewMatrix().TransformPoint([3]float32{0, 1, 0})
	if abs(got[0]) > 1e-5 || abs(got[1]) > 1e-5 || abs(got[2]+4) > 1e-5 {
		t.Errorf("y axis in view space = %v, want (0, 0, -4)", got)
	}
}

func TestEye(t *testing.T) {
	c := newTestCamera(0, 0, 5)
	eye := c.Eye()
	if abs(eye.X) > 1e-5 || abs(eye.Y) > 1e-5 || abs(eye.Z-5) > 1e-5 {
		t.Errorf("Eye() = %v, want (0, 0, 5)", eye)
	}

	// Looking down from 90 degrees elevation puts the eye on +y.
	c = newTestCamera(0, 90, 5)
	eye = c.Eye()
	if abs(eye.Y-5) > 1e-4 {
		t.Errorf("Eye() = %v, want (0, 5, 0)", eye)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func approxEqual(a, b math.Mat4, eps float32) bool {
	for i := range a {
		if abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}
