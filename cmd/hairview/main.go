// Package main is the entry point for the interactive hair viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/VincentWang001/hairgl/internal/config"
	"github.com/VincentWang001/hairgl/internal/logger"
	"github.com/VincentWang001/hairgl/internal/viewer"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== hairgl viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	v, err := viewer.New(cfg)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Open(cfg.Asset.Path); err != nil {
		logger.Error("failed to open asset", zap.String("path", cfg.Asset.Path), zap.Error(err))
		os.Exit(1)
	}
	if cfg.Asset.Path == "" {
		logger.Info("no asset given, showing generated grid")
		v.OpenDialog()
	}

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
