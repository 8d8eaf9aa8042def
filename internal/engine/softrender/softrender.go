// Package softrender implements renderer.Backend on the fauxgl software
// rasterizer. It needs no window or GL context, so it backs headless runs
// and tests.
package softrender

import (
	"errors"
	"fmt"
	"image"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"go.uber.org/zap"

	"github.com/Faultbox/cylinders/internal/engine/debug"
	"github.com/Faultbox/cylinders/internal/engine/lighting"
	"github.com/Faultbox/cylinders/internal/engine/renderer"
	"github.com/Faultbox/cylinders/internal/logger"
	"github.com/Faultbox/cylinders/internal/mesh"
	"github.com/Faultbox/cylinders/pkg/math"
)

// Config holds backend configuration.
type Config struct {
	Background  [3]float32
	Supersample int // Render at this multiple of the output size, then downscale
	Shininess   float32
}

// Backend rasterizes frames into an in-memory image.
type Backend struct {
	config Config
	log    *zap.Logger

	ctx    *fauxgl.Context
	width  int
	height int

	projection math.Mat4
	viewProj   fauxgl.Matrix
	eye        fauxgl.Vector
	lightDir   fauxgl.Vector

	frame image.Image
}

var _ renderer.Backend = (*Backend)(nil)

// New creates a software backend.
func New(cfg Config) *Backend {
	if cfg.Supersample < 1 {
		cfg.Supersample = 1
	}
	return &Backend{
		config:   cfg,
		log:      logger.Named("softrender"),
		lightDir: fauxgl.V(0, 0, 1),
	}
}

type softMesh struct {
	triangles []*fauxgl.Triangle
	indices   int
}

func (m *softMesh) IndexCount() int { return m.indices }

func (m *softMesh) Release() {
	m.triangles = nil
}

// UploadMesh converts the indexed mesh into fauxgl triangles in model space.
func (b *Backend) UploadMesh(m *mesh.Cylinder) (renderer.Mesh, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("softrender: %w", err)
	}

	sm := &softMesh{
		triangles: make([]*fauxgl.Triangle, 0, m.TriangleCount()),
		indices:   m.IndexCount(),
	}
	for t := 0; t < m.TriangleCount(); t++ {
		idx := m.Triangle(t)
		sm.triangles = append(sm.triangles, fauxgl.NewTriangle(
			vertex(m, idx[0]), vertex(m, idx[1]), vertex(m, idx[2]),
		))
	}

	b.log.Debug("mesh converted", zap.Int("triangles", len(sm.triangles)))
	return sm, nil
}

func vertex(m *mesh.Cylinder, i uint32) fauxgl.Vertex {
	return fauxgl.Vertex{
		Position: toVector(m.Vertex(int(i))),
		Normal:   toVector(m.Normal(int(i))),
	}
}

// Resize reallocates the raster at the supersampled size.
func (b *Backend) Resize(width, height int, projection math.Mat4) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	b.width, b.height = width, height
	b.projection = projection

	ss := b.config.Supersample
	b.ctx = fauxgl.NewContext(width*ss, height*ss)
	b.ctx.Cull = fauxgl.CullNone
	b.ctx.LineWidth = float64(ss)
}

// Clear clears the colour and depth buffers.
func (b *Backend) Clear() {
	bg := b.config.Background
	b.ctx.ClearColorBufferWith(fauxgl.Color{R: float64(bg[0]), G: float64(bg[1]), B: float64(bg[2]), A: 1})
	b.ctx.ClearDepthBuffer()
}

// SetView stores the view-projection and derives the eye position and a
// single world-space light direction from the first light in the rig.
func (b *Backend) SetView(view math.Mat4, rig lighting.Rig) {
	b.viewProj = toMatrix(b.projection.Mul(view))

	inv := view.Inverse()
	b.eye = toVector(inv.TransformPoint([3]float32{}))

	if len(rig.Lights) == 0 {
		return
	}
	l := rig.Lights[0]
	p := [3]float32{l.Position[0], l.Position[1], l.Position[2]}
	if l.Space == lighting.CameraSpace {
		if l.Position[3] == 0 {
			p = inv.TransformDirection(p)
		} else {
			p = inv.TransformPoint(p)
		}
	}
	if dir := toVector(p).Normalize(); dir.Length() > 0 {
		b.lightDir = dir
	}
}

// DrawAxes draws each axis with a flat colour shader.
func (b *Backend) DrawAxes(axes []renderer.Axis) {
	origin := fauxgl.Vertex{Position: fauxgl.V(0, 0, 0)}
	for _, a := range axes {
		b.ctx.Shader = fauxgl.NewSolidColorShader(b.viewProj, toColor(a.Color))
		b.ctx.DrawLine(fauxgl.NewLine(origin, fauxgl.Vertex{Position: toVector(a.To)}))
	}
}

// DrawMesh transforms the mesh into world space and shades it with Phong
// lighting.
func (b *Backend) DrawMesh(m renderer.Mesh, model math.Mat4, color renderer.Color) error {
	sm, ok := m.(*softMesh)
	if !ok {
		return fmt.Errorf("softrender: unsupported mesh type %T", m)
	}
	if sm.triangles == nil {
		return errors.New("softrender: draw after release")
	}

	normalMat := model.NormalMatrix()
	world := make([]*fauxgl.Triangle, len(sm.triangles))
	for i, t := range sm.triangles {
		world[i] = fauxgl.NewTriangle(
			transformVertex(t.V1, model, normalMat),
			transformVertex(t.V2, model, normalMat),
			transformVertex(t.V3, model, normalMat),
		)
	}

	shader := fauxgl.NewPhongShader(b.viewProj, b.lightDir, b.eye)
	shader.ObjectColor = toColor(color)
	if b.config.Shininess > 0 {
		shader.SpecularPower = float64(b.config.Shininess)
	}
	b.ctx.Shader = shader
	b.ctx.DrawTriangles(world)
	return nil
}

func transformVertex(v fauxgl.Vertex, model, normalMat math.Mat4) fauxgl.Vertex {
	p := model.TransformPoint(fromVector(v.Position))
	n := math.V3(normalMat.TransformDirection(fromVector(v.Normal))).Normalize()
	return fauxgl.Vertex{
		Position: toVector(p),
		Normal:   toVector(n.Array()),
	}
}

// Present downsamples the raster into the output frame.
func (b *Backend) Present() error {
	if b.ctx == nil {
		return errors.New("softrender: present before resize")
	}

	img := b.ctx.Image()
	if b.config.Supersample > 1 {
		img = resize.Resize(uint(b.width), uint(b.height), img, resize.Bilinear)
	}
	b.frame = img
	return nil
}

// Frame returns the last presented image, or nil.
func (b *Backend) Frame() image.Image {
	return b.frame
}

// Screenshot writes the last presented frame.
func (b *Backend) Screenshot(sc *debug.ScreenshotCapture) (string, error) {
	if b.frame == nil {
		return "", errors.New("softrender: no frame presented")
	}
	return sc.CaptureFromImage(b.frame)
}

// Close drops the raster.
func (b *Backend) Close() {
	b.ctx = nil
}

func toVector(p [3]float32) fauxgl.Vector {
	return fauxgl.V(float64(p[0]), float64(p[1]), float64(p[2]))
}

func fromVector(v fauxgl.Vector) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

func toColor(c renderer.Color) fauxgl.Color {
	return fauxgl.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2]), A: 1}
}

// toMatrix converts a column-major Mat4 to fauxgl's row-major Matrix.
func toMatrix(m math.Mat4) fauxgl.Matrix {
	f := func(i int) float64 { return float64(m[i]) }
	return fauxgl.Matrix{
		X00: f(0), X01: f(4), X02: f(8), X03: f(12),
		X10: f(1), X11: f(5), X12: f(9), X13: f(13),
		X20: f(2), X21: f(6), X22: f(10), X23: f(14),
		X30: f(3), X31: f(7), X32: f(11), X33: f(15),
	}
}
