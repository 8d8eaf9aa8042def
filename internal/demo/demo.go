// Package demo holds the render context: the camera, the renderer and the
// key bindings, with no window-system dependency.
package demo

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/cylinders/internal/config"
	"github.com/Faultbox/cylinders/internal/engine/camera"
	"github.com/Faultbox/cylinders/internal/engine/controls"
	"github.com/Faultbox/cylinders/internal/engine/debug"
	"github.com/Faultbox/cylinders/internal/engine/lighting"
	"github.com/Faultbox/cylinders/internal/engine/renderer"
	"github.com/Faultbox/cylinders/internal/logger"
	"github.com/Faultbox/cylinders/internal/mesh"
)

// ErrQuit is returned by HandleKey when a quit key was pressed.
var ErrQuit = errors.New("quit requested")

// Demo is the render context passed to every callback.
type Demo struct {
	Camera   *camera.OrbitCamera
	Renderer *renderer.Renderer

	keymap      controls.Keymap
	screenshots *debug.ScreenshotCapture
	dirty       bool
}

// New generates the cylinder, uploads it through backend and sets up the
// camera. The backend must be ready for uploads.
func New(cfg *config.Config, backend renderer.Backend) (*Demo, error) {
	r := renderer.New(backend, renderer.Config{
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Projection: cfg.Projection,
		Rig:        lighting.DefaultRig(cfg.Lighting),
		Instances:  renderer.ReferenceInstances(),
	})

	cyl := mesh.NewCylinder(cfg.Mesh.Sides, cfg.Mesh.Stacks)
	if err := cyl.Validate(); err != nil {
		logger.Warn("cylinder mesh failed validation", zap.Error(err))
	}
	if err := r.Load(cyl); err != nil {
		r.Close()
		return nil, err
	}

	return &Demo{
		Camera:      camera.NewOrbitCamera(cfg.Camera),
		Renderer:    r,
		keymap:      controls.DefaultKeymap(),
		screenshots: debug.NewScreenshotCapture(cfg.Screenshot.OutputDir, cfg.Screenshot.Prefix),
		dirty:       true,
	}, nil
}

// HandleKey applies the action bound to key. It returns ErrQuit for quit
// keys; other errors come from taking a screenshot.
func (d *Demo) HandleKey(key rune) error {
	action := d.keymap.Lookup(key)

	switch action {
	case controls.ActionNone:
		return nil
	case controls.ActionQuit:
		logger.Info("quit key pressed", zap.String("key", fmt.Sprintf("%q", key)))
		return ErrQuit
	case controls.ActionScreenshot:
		path, err := d.Screenshot()
		if err != nil {
			return err
		}
		logger.Info("screenshot saved", zap.String("path", path))
		return nil
	}

	if d.Camera.Apply(action) {
		d.PostRedisplay()
	}
	return nil
}

// Resize updates the viewport and schedules a redraw.
func (d *Demo) Resize(width, height int) {
	d.Renderer.Resize(width, height)
	d.PostRedisplay()
}

// PostRedisplay marks the frame as needing a redraw.
func (d *Demo) PostRedisplay() {
	d.dirty = true
}

// NeedsRedraw reports whether a redraw is pending.
func (d *Demo) NeedsRedraw() bool {
	return d.dirty
}

// Display renders one frame from the current camera.
func (d *Demo) Display() error {
	if err := d.Renderer.RenderFrame(d.Camera.ViewMatrix()); err != nil {
		return err
	}
	d.dirty = false
	return nil
}

// Screenshot writes the last frame to the screenshot directory.
func (d *Demo) Screenshot() (string, error) {
	path, err := d.Renderer.Screenshot(d.screenshots)
	if err != nil {
		return "", fmt.Errorf("taking screenshot: %w", err)
	}
	return path, nil
}

// Close releases the GPU buffers and the backend.
func (d *Demo) Close() {
	d.Renderer.Close()
}
