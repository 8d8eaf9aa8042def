// Package renderer draws the cylinder scene through a pluggable backend.
package renderer

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/cylinders/internal/config"
	"github.com/Faultbox/cylinders/internal/engine/debug"
	"github.com/Faultbox/cylinders/internal/engine/lighting"
	"github.com/Faultbox/cylinders/internal/logger"
	"github.com/Faultbox/cylinders/internal/mesh"
	"github.com/Faultbox/cylinders/pkg/math"
)

// AxisLength is the length of each reference axis.
const AxisLength = 2

// ErrNoMesh is returned when a frame is rendered before a mesh is loaded.
var ErrNoMesh = errors.New("renderer: no mesh loaded")

// Instance is one placement of the cylinder mesh.
type Instance struct {
	Model math.Mat4
	Color Color
}

// ReferenceInstances returns the two cylinders of the demo scene: a red one
// standing on the z axis and a smaller blue one lying along y.
func ReferenceInstances() []Instance {
	return []Instance{
		{Model: math.Identity(), Color: Red},
		{
			Model: math.RotateX(-90).
				Mul(math.Translate(1.5, 1, -0.5)).
				Mul(math.Scale(0.5, 0.5, 1)),
			Color: Blue,
		},
	}
}

// ReferenceAxes returns +x red, +y green and +z blue of the given length.
func ReferenceAxes(length float32) []Axis {
	return []Axis{
		{To: [3]float32{length, 0, 0}, Color: Red},
		{To: [3]float32{0, length, 0}, Color: Green},
		{To: [3]float32{0, 0, length}, Color: Blue},
	}
}

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Projection config.ProjectionConfig
	Rig        lighting.Rig
	Instances  []Instance // Cylinder placements drawn each frame
}

// Renderer owns the uploaded mesh and runs the per-frame draw sequence.
type Renderer struct {
	config    Config
	backend   Backend
	mesh      Mesh
	instances []Instance
	axes      []Axis
	frames    uint64
}

// New creates a renderer over backend and applies the initial viewport.
func New(backend Backend, cfg Config) *Renderer {
	r := &Renderer{
		config:    cfg,
		backend:   backend,
		instances: cfg.Instances,
		axes:      ReferenceAxes(AxisLength),
	}
	r.Resize(cfg.Width, cfg.Height)
	return r
}

// Load uploads the mesh. It must be called exactly once, before the first frame.
func (r *Renderer) Load(m *mesh.Cylinder) error {
	if r.mesh != nil {
		return errors.New("renderer: mesh already loaded")
	}

	handle, err := r.backend.UploadMesh(m)
	if err != nil {
		return fmt.Errorf("uploading cylinder: %w", err)
	}
	r.mesh = handle

	logger.Info("cylinder uploaded",
		zap.Int("sides", m.Sides),
		zap.Int("stacks", m.Stacks),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("indices", handle.IndexCount()),
	)
	return nil
}

// Projection returns the current projection matrix.
func (r *Renderer) Projection() math.Mat4 {
	h := r.config.Height
	if h <= 0 {
		h = 1
	}
	aspect := float32(r.config.Width) / float32(h)
	p := r.config.Projection
	return math.Perspective(p.FovY, aspect, p.Near, p.Far)
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	r.backend.Resize(width, height, r.Projection())
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// RenderFrame draws one frame: clear, view and lights, unlit axes, lit
// cylinders, present.
func (r *Renderer) RenderFrame(view math.Mat4) error {
	if r.mesh == nil {
		return ErrNoMesh
	}

	r.backend.Clear()
	r.backend.SetView(view, r.config.Rig)
	r.backend.DrawAxes(r.axes)

	for i, inst := range r.instances {
		if err := r.backend.DrawMesh(r.mesh, inst.Model, inst.Color); err != nil {
			return fmt.Errorf("drawing instance %d: %w", i, err)
		}
	}

	if err := r.backend.Present(); err != nil {
		return fmt.Errorf("presenting frame: %w", err)
	}
	r.frames++
	return nil
}

// Frames returns the number of frames presented.
func (r *Renderer) Frames() uint64 {
	return r.frames
}

// Screenshot writes the last presented frame.
func (r *Renderer) Screenshot(sc *debug.ScreenshotCapture) (string, error) {
	if r.frames == 0 {
		return "", errors.New("renderer: no frame presented yet")
	}
	return r.backend.Screenshot(sc)
}

// Close releases the mesh and the backend.
func (r *Renderer) Close() {
	logger.Info("closing renderer", zap.Uint64("frames", r.frames))
	if r.mesh != nil {
		r.mesh.Release()
		r.mesh = nil
	}
	r.backend.Close()
}
