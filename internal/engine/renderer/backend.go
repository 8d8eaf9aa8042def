package renderer

import (
	"github.com/Faultbox/cylinders/internal/engine/debug"
	"github.com/Faultbox/cylinders/internal/engine/lighting"
	"github.com/Faultbox/cylinders/internal/mesh"
	"github.com/Faultbox/cylinders/pkg/math"
)

// Color is an RGB colour with components in [0, 1].
type Color [3]float32

// Reference colours.
var (
	Red   = Color{1, 0, 0}
	Green = Color{0, 1, 0}
	Blue  = Color{0, 0, 1}
)

// Mesh is a backend-owned copy of a cylinder mesh.
type Mesh interface {
	IndexCount() int
	// Release frees the backend resources. Calls after the first are no-ops.
	Release()
}

// Axis is an unlit line segment from the origin.
type Axis struct {
	To    [3]float32
	Color Color
}

// Backend is the graphics API the renderer drives. Implementations keep
// whatever state they need between calls within a frame.
type Backend interface {
	// UploadMesh copies the mesh into backend storage once.
	UploadMesh(m *mesh.Cylinder) (Mesh, error)

	// Resize sets the viewport and projection.
	Resize(width, height int, projection math.Mat4)

	// Clear clears colour and depth.
	Clear()

	// SetView resets the view, places camera-space lights, applies view and
	// then places world-space lights.
	SetView(view math.Mat4, rig lighting.Rig)

	// DrawAxes draws unlit lines and leaves lighting enabled afterwards.
	DrawAxes(axes []Axis)

	// DrawMesh draws m lit, with the given model transform and colour.
	DrawMesh(m Mesh, model math.Mat4, color Color) error

	// Present finishes the frame.
	Present() error

	// Screenshot writes the last presented frame.
	Screenshot(sc *debug.ScreenshotCapture) (string, error)

	Close()
}
