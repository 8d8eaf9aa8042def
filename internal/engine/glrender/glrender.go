// Package glrender implements renderer.Backend on fixed-function OpenGL 2.1.
package glrender

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v2.1/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/cylinders/internal/engine/debug"
	"github.com/Faultbox/cylinders/internal/engine/gpu"
	"github.com/Faultbox/cylinders/internal/engine/lighting"
	"github.com/Faultbox/cylinders/internal/engine/renderer"
	"github.com/Faultbox/cylinders/internal/logger"
	"github.com/Faultbox/cylinders/internal/mesh"
	"github.com/Faultbox/cylinders/pkg/math"
)

// maxLights is the number of fixed-function light slots GL guarantees.
const maxLights = 8

// Swapper presents the back buffer.
type Swapper interface {
	SwapBuffers()
}

// Config holds backend configuration.
type Config struct {
	Background [3]float32
	Rig        lighting.Rig
}

// Backend draws with the fixed-function pipeline.
type Backend struct {
	swapper Swapper
	width   int
	height  int

	// readPixels copies the back buffer; swapped out in tests.
	readPixels func(width, height int, dst []byte)
	pixels     []byte
	captured   bool
}

var _ renderer.Backend = (*Backend)(nil)

// New loads the GL entry points and sets up lighting and depth state.
// IMPORTANT: Must be called AFTER the OpenGL context is current!
func New(swapper Swapper, cfg Config) (*Backend, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	if len(cfg.Rig.Lights) > maxLights {
		return nil, fmt.Errorf("%d lights configured, fixed-function GL supports %d", len(cfg.Rig.Lights), maxLights)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	bg := cfg.Background
	gl.ClearColor(bg[0], bg[1], bg[2], 0)

	for i, l := range cfg.Rig.Lights {
		slot := uint32(gl.LIGHT0 + i)
		gl.Lightfv(slot, gl.AMBIENT, &l.Ambient[0])
		gl.Lightfv(slot, gl.DIFFUSE, &l.Diffuse[0])
		gl.Lightfv(slot, gl.SPECULAR, &l.Specular[0])
		gl.Enable(slot)
	}

	// glColor drives ambient and diffuse; specular and shininess are shared.
	gl.ColorMaterial(gl.FRONT_AND_BACK, gl.AMBIENT_AND_DIFFUSE)
	gl.Enable(gl.COLOR_MATERIAL)
	mat := cfg.Rig.Material
	gl.Materialfv(gl.FRONT_AND_BACK, gl.SPECULAR, &mat.Specular[0])
	gl.Materialf(gl.FRONT_AND_BACK, gl.SHININESS, mat.Shininess)

	gl.LightModeli(gl.LIGHT_MODEL_TWO_SIDE, 1)
	gl.Enable(gl.NORMALIZE)
	gl.Enable(gl.LIGHTING)
	gl.ShadeModel(gl.SMOOTH)
	gl.Enable(gl.DEPTH_TEST)

	return &Backend{swapper: swapper, readPixels: readBackBuffer}, nil
}

// UploadMesh stores the mesh in static GPU buffers.
func (b *Backend) UploadMesh(m *mesh.Cylinder) (renderer.Mesh, error) {
	return gpu.Upload(m)
}

// Resize sets the viewport and loads the projection matrix.
func (b *Backend) Resize(width, height int, projection math.Mat4) {
	b.width, b.height = width, height
	b.captured = false
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.MatrixMode(gl.PROJECTION)
	gl.LoadMatrixf(projection.Ptr())
	gl.MatrixMode(gl.MODELVIEW)
}

// Clear clears the colour and depth buffers.
func (b *Backend) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// SetView positions the lights and loads the view matrix. Light positions
// are transformed by the modelview matrix current when they are set, so
// camera-space lights go in before the view and world-space lights after.
func (b *Backend) SetView(view math.Mat4, rig lighting.Rig) {
	gl.LoadIdentity()
	setLightPositions(rig, lighting.CameraSpace)

	gl.LoadMatrixf(view.Ptr())
	setLightPositions(rig, lighting.WorldSpace)
}

func setLightPositions(rig lighting.Rig, space lighting.Space) {
	for _, slot := range rig.InSpace(space) {
		gl.Lightfv(uint32(gl.LIGHT0+slot), gl.POSITION, &rig.Lights[slot].Position[0])
	}
}

// DrawAxes draws the axes with lighting off, then turns lighting back on.
func (b *Backend) DrawAxes(axes []renderer.Axis) {
	gl.Disable(gl.LIGHTING)

	gl.Begin(gl.LINES)
	for _, a := range axes {
		gl.Color3f(a.Color[0], a.Color[1], a.Color[2])
		gl.Vertex3f(0, 0, 0)
		gl.Vertex3f(a.To[0], a.To[1], a.To[2])
	}
	gl.End()

	gl.Enable(gl.LIGHTING)
}

// DrawMesh draws m with model applied on top of the view matrix.
func (b *Backend) DrawMesh(m renderer.Mesh, model math.Mat4, color renderer.Color) error {
	buffers, ok := m.(*gpu.MeshBuffers)
	if !ok {
		return fmt.Errorf("glrender: unsupported mesh type %T", m)
	}

	gl.PushMatrix()
	defer gl.PopMatrix()

	gl.MultMatrixf(model.Ptr())
	gl.Color3f(color[0], color[1], color[2])
	return buffers.Draw()
}

// Present keeps a copy of the finished back buffer for screenshots, then
// swaps. The front buffer is undefined after a swap on composited desktops.
func (b *Backend) Present() error {
	if b.swapper == nil {
		return errors.New("glrender: no swapper")
	}

	if b.width > 0 && b.height > 0 {
		if n := b.width * b.height * 4; len(b.pixels) != n {
			b.pixels = make([]byte, n)
		}
		b.readPixels(b.width, b.height, b.pixels)
		b.captured = true
	}

	b.swapper.SwapBuffers()
	return nil
}

// Screenshot writes the frame kept by the last Present as PNG.
func (b *Backend) Screenshot(sc *debug.ScreenshotCapture) (string, error) {
	if !b.captured {
		return "", errors.New("glrender: no frame presented at the current size")
	}
	return sc.CaptureFromPixels(b.pixels, b.width, b.height)
}

func readBackBuffer(width, height int, dst []byte) {
	gl.ReadBuffer(gl.BACK)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(dst))
}

// Close has nothing to free; meshes are released by their owner.
func (b *Backend) Close() {
	logger.Debug("closing GL backend")
}
