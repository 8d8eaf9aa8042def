// Package mesh generates the unit cylinder side-wall mesh that gets uploaded
// into GPU buffers.
package mesh

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Cylinder is a radius-1 cylindrical shell around the z axis, running from
// z = +1 down to z = -1. It has no caps.
//
// Vertices and Normals hold 3 floats per vertex. Vertex (i, j) on line i and
// stack level j lives at flat index i*(Stacks+1)+j. Indices holds three
// entries per triangle.
type Cylinder struct {
	Sides  int
	Stacks int

	Vertices []float32
	Normals  []float32
	Indices  []uint32
}

// NewCylinder builds the side wall of a unit cylinder from sides longitudinal
// lines and stacks vertical segments.
//
// sides >= 3 and stacks >= 1 are preconditions, not checked: fewer sides give
// degenerate triangles and zero stacks give an empty index list.
func NewCylinder(sides, stacks int) *Cylinder {
	c := &Cylinder{Sides: sides, Stacks: stacks}
	if sides <= 0 || stacks < 0 {
		return c
	}

	perLine := stacks + 1
	numVerts := sides * perLine
	c.Vertices = make([]float32, 0, numVerts*3)
	c.Normals = make([]float32, 0, numVerts*3)

	deltaTheta := 2 * math32.Pi / float32(sides)
	var deltaZ float32
	if stacks > 0 {
		deltaZ = 2 / float32(stacks)
	}

	for i := 0; i < sides; i++ {
		theta := float32(i) * deltaTheta
		y, x := math32.Sincos(theta)

		for j := 0; j < perLine; j++ {
			z := 1 - float32(j)*deltaZ
			if j == stacks {
				z = -1
			}
			c.Vertices = append(c.Vertices, x, y, z)
			c.Normals = append(c.Normals, x, y, 0)
		}
	}

	c.Indices = make([]uint32, 0, 6*stacks*sides)
	for i := 0; i < sides; i++ {
		left := uint32(c.LineBase(i))
		right := uint32(c.LineBase((i + 1) % sides))

		for j := 0; j < stacks; j++ {
			l, r := left+uint32(j), right+uint32(j)
			c.Indices = append(c.Indices,
				l, l+1, r+1,
				l, r+1, r,
			)
		}
	}

	return c
}

// LineBase returns the flat index of the top vertex on line i.
func (c *Cylinder) LineBase(i int) int {
	return i * (c.Stacks + 1)
}

// VertexCount returns the number of vertices (and normals).
func (c *Cylinder) VertexCount() int {
	return len(c.Vertices) / 3
}

// IndexCount returns the number of indices.
func (c *Cylinder) IndexCount() int {
	return len(c.Indices)
}

// TriangleCount returns the number of triangles.
func (c *Cylinder) TriangleCount() int {
	return len(c.Indices) / 3
}

// Vertex returns the position of vertex i.
func (c *Cylinder) Vertex(i int) [3]float32 {
	return [3]float32{c.Vertices[i*3], c.Vertices[i*3+1], c.Vertices[i*3+2]}
}

// Normal returns the normal of vertex i.
func (c *Cylinder) Normal(i int) [3]float32 {
	return [3]float32{c.Normals[i*3], c.Normals[i*3+1], c.Normals[i*3+2]}
}

// Triangle returns the three vertex indices of triangle t.
func (c *Cylinder) Triangle(t int) [3]uint32 {
	return [3]uint32{c.Indices[t*3], c.Indices[t*3+1], c.Indices[t*3+2]}
}

// Validate checks the array length invariants and that every index refers
// to an existing vertex.
func (c *Cylinder) Validate() error {
	if len(c.Vertices)%3 != 0 {
		return fmt.Errorf("vertex array length %d is not a multiple of 3", len(c.Vertices))
	}
	if len(c.Normals) != len(c.Vertices) {
		return fmt.Errorf("normal array length %d does not match vertex array length %d",
			len(c.Normals), len(c.Vertices))
	}
	if len(c.Indices)%3 != 0 {
		return fmt.Errorf("index array length %d is not a multiple of 3", len(c.Indices))
	}

	n := uint32(c.VertexCount())
	for pos, idx := range c.Indices {
		if idx >= n {
			return fmt.Errorf("index %d at position %d out of range [0, %d)", idx, pos, n)
		}
	}
	return nil
}
