// Package camera provides the keyboard-driven orbit camera.
package camera

import (
	"go.uber.org/zap"

	"github.com/Faultbox/cylinders/internal/config"
	"github.com/Faultbox/cylinders/internal/engine/controls"
	"github.com/Faultbox/cylinders/internal/logger"
	"github.com/Faultbox/cylinders/pkg/math"
)

// Elevation limits in degrees.
const (
	MinElevation = -90
	MaxElevation = 90
)

// OrbitCamera looks at the origin from spherical coordinates.
// Angles are in degrees.
type OrbitCamera struct {
	Azimuth   float32 // Rotation about the world Y axis
	Elevation float32 // Rotation about the X axis, kept in [-90, 90]
	Distance  float32 // Distance from the origin

	AngleStep    float32
	DistanceStep float32

	// Distance is unbounded unless ClampDistance is set, in which case it
	// never drops below MinDistance.
	ClampDistance bool
	MinDistance   float32
}

// NewOrbitCamera creates a camera from config.
func NewOrbitCamera(cfg config.CameraConfig) *OrbitCamera {
	c := &OrbitCamera{
		Azimuth:       cfg.Azimuth,
		Distance:      cfg.Distance,
		AngleStep:     cfg.AngleStep,
		DistanceStep:  cfg.DistanceStep,
		ClampDistance: cfg.ClampDistance,
		MinDistance:   cfg.MinDistance,
	}
	c.SetElevation(cfg.Elevation)
	return c
}

// ViewMatrix returns identity * Translate(0, 0, -distance) * RotX(elevation) * RotY(azimuth).
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.Identity().
		Mul(math.Translate(0, 0, -c.Distance)).
		Mul(math.RotateX(c.Elevation)).
		Mul(math.RotateY(c.Azimuth))
}

// Eye returns the camera position in world space.
func (c *OrbitCamera) Eye() math.Vec3 {
	return c.ViewMatrix().Inverse().TransformVec3(math.Vec3{})
}

// RotateAzimuth adds delta degrees to the azimuth.
func (c *OrbitCamera) RotateAzimuth(delta float32) {
	c.Azimuth += delta
}

// RotateElevation adds delta degrees to the elevation, clamped to [-90, 90].
func (c *OrbitCamera) RotateElevation(delta float32) {
	c.SetElevation(c.Elevation + delta)
}

// SetElevation sets the elevation, clamped to [-90, 90].
func (c *OrbitCamera) SetElevation(deg float32) {
	if deg > MaxElevation {
		deg = MaxElevation
	} else if deg < MinElevation {
		deg = MinElevation
	}
	c.Elevation = deg
}

// Zoom adds delta to the distance.
func (c *OrbitCamera) Zoom(delta float32) {
	c.Distance += delta
	if c.ClampDistance && c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
}

// Apply performs a camera action. It returns true if the camera handled
// the action and the frame must be redrawn.
func (c *OrbitCamera) Apply(a controls.Action) bool {
	switch a {
	case controls.ActionAzimuthLeft:
		c.RotateAzimuth(c.AngleStep)
	case controls.ActionAzimuthRight:
		c.RotateAzimuth(-c.AngleStep)
	case controls.ActionElevationDown:
		c.RotateElevation(-c.AngleStep)
	case controls.ActionElevationUp:
		c.RotateElevation(c.AngleStep)
	case controls.ActionZoomOut:
		c.Zoom(c.DistanceStep)
	case controls.ActionZoomIn:
		c.Zoom(-c.DistanceStep)
	default:
		return false
	}

	eye := c.Eye()
	logger.Debug("camera moved",
		zap.Stringer("action", a),
		zap.Float32("azimuth", c.Azimuth),
		zap.Float32("elevation", c.Elevation),
		zap.Float32("distance", c.Distance),
		zap.Float32s("eye", []float32{eye.X, eye.Y, eye.Z}),
	)
	return true
}
