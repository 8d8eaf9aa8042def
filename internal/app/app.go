// Package app runs the interactive demo: an SDL2 window, the fixed-function
// GL backend and an event-driven redraw loop.
package app

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/cylinders/internal/config"
	"github.com/Faultbox/cylinders/internal/demo"
	"github.com/Faultbox/cylinders/internal/engine/glrender"
	"github.com/Faultbox/cylinders/internal/engine/input"
	"github.com/Faultbox/cylinders/internal/engine/lighting"
	"github.com/Faultbox/cylinders/internal/engine/window"
	"github.com/Faultbox/cylinders/internal/logger"
)

// waitTimeout bounds how long the loop blocks on an empty event queue.
const waitTimeout = 250 // ms

// ErrBackendInit wraps failures to bring up the window or OpenGL.
var ErrBackendInit = errors.New("graphics backend initialization failed")

// App owns the window and the render context for the process lifetime.
type App struct {
	window *window.Window
	input  *input.Input
	demo   *demo.Demo
}

// New creates the window, initializes OpenGL and uploads the cylinder.
func New(cfg *config.Config) (*App, error) {
	a := &App{input: input.New()}

	var err error
	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBackendInit, err)
	}

	// The backend needs a current GL context, so it comes AFTER the window.
	backend, err := glrender.New(a.window, glrender.Config{
		Background: cfg.Window.Background,
		Rig:        lighting.DefaultRig(cfg.Lighting),
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("%w: %w", ErrBackendInit, err)
	}

	a.demo, err = demo.New(cfg, backend)
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("initializing scene: %w", err)
	}

	// Fullscreen and high-DPI windows differ from the requested size.
	if w, h := a.window.DrawableSize(); w != cfg.Window.Width || h != cfg.Window.Height {
		a.demo.Resize(w, h)
	}

	logger.Info("app initialized")
	return a, nil
}

// Run dispatches events and redraws on demand until a quit key or the
// window is closed.
func (a *App) Run() error {
	logger.Info("entering main loop")
	start := time.Now()

	for {
		for _, ev := range a.input.Wait(waitTimeout) {
			switch ev.Type {
			case input.EventQuit:
				logger.Info("window closed")
				return nil
			case input.EventResize:
				a.demo.Resize(ev.Width, ev.Height)
			case input.EventExpose:
				a.demo.PostRedisplay()
			case input.EventKey:
				if err := a.demo.HandleKey(ev.Key); err != nil {
					if errors.Is(err, demo.ErrQuit) {
						return nil
					}
					logger.Warn("key handler failed", zap.Error(err))
				}
			}
		}

		if !a.demo.NeedsRedraw() {
			continue
		}
		if err := a.demo.Display(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		if frames := a.demo.Renderer.Frames(); frames%100 == 0 {
			logger.Debug("frames drawn",
				zap.Uint64("count", frames),
				zap.Duration("uptime", time.Since(start)),
			)
		}
	}
}

// Close releases the GPU buffers, then the GL context and window.
func (a *App) Close() {
	logger.Info("closing app")

	if a.demo != nil {
		a.demo.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
