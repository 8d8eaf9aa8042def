// Package main is the entry point for the cylinders demo.
package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/cylinders/internal/app"
	"github.com/Faultbox/cylinders/internal/config"
	"github.com/Faultbox/cylinders/internal/demo"
	"github.com/Faultbox/cylinders/internal/logger"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup always runs first.
func run() int {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	logger.Info("=== Cylinders ===",
		zap.Int("sides", cfg.Mesh.Sides),
		zap.Int("stacks", cfg.Mesh.Stacks),
	)
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.SaveRequested() {
		if err := cfg.Save(); err != nil {
			logger.Error("failed to save config", zap.Error(err))
			return 1
		}
		logger.Info("config saved", zap.String("dir", config.ConfigDir()))
		return 0
	}

	if config.Headless() {
		if _, err := demo.RunHeadless(cfg); err != nil {
			logger.Error("headless render failed", zap.Error(err))
			return 1
		}
		return 0
	}

	a, err := app.New(cfg)
	if err != nil {
		if errors.Is(err, app.ErrBackendInit) {
			fmt.Printf("Error: %v\n", err)
		}
		logger.Error("failed to start", zap.Error(err))
		return 1
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		logger.Error("demo error", zap.Error(err))
		return 1
	}

	logger.Info("demo closed normally")
	return 0
}
