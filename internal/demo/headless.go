package demo

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/cylinders/internal/config"
	"github.com/Faultbox/cylinders/internal/engine/softrender"
	"github.com/Faultbox/cylinders/internal/logger"
)

// RunHeadless renders a single frame with the software rasterizer and
// writes it as a PNG. It returns the written path.
func RunHeadless(cfg *config.Config) (string, error) {
	backend := softrender.New(softrender.Config{
		Background:  cfg.Window.Background,
		Supersample: cfg.Screenshot.Supersample,
		Shininess:   cfg.Lighting.Shininess,
	})

	d, err := New(cfg, backend)
	if err != nil {
		return "", fmt.Errorf("creating demo: %w", err)
	}
	defer d.Close()

	if err := d.Display(); err != nil {
		return "", fmt.Errorf("rendering frame: %w", err)
	}

	path, err := d.Screenshot()
	if err != nil {
		return "", err
	}

	logger.Info("headless frame written",
		zap.String("path", path),
		zap.Stringer("size", backend.Frame().Bounds().Size()),
		zap.Uint64("frames", d.Renderer.Frames()),
	)
	return path, nil
}
