package main

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/HerbHall/plantmatch/internal/catalog"
	"github.com/HerbHall/plantmatch/internal/config"
	pkgcatalog "github.com/HerbHall/plantmatch/pkg/catalog"
)

// loadSettings reads and validates configuration.
func loadSettings(path string) (config.Settings, *config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Settings{}, nil, err
	}
	s, err := cfg.Settings()
	if err != nil {
		return config.Settings{}, nil, err
	}
	return s, cfg, nil
}

// newLogger builds the process logger. Output goes to stderr so stdout stays
// free for command output and the MCP stdio transport.
func newLogger(s config.LogSettings) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(s.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	zc := zap.NewProductionConfig()
	if s.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}

// newEngine loads the configured catalog eagerly so that a broken catalog
// file fails at startup rather than on the first request.
func newEngine(s config.CatalogSettings) (*catalog.Engine, error) {
	cat := pkgcatalog.NewCatalog()
	if s.Path != "" {
		cat = pkgcatalog.NewCatalogFromFile(s.Path)
	}
	if _, err := cat.Plants(); err != nil {
		return nil, err
	}
	return catalog.NewEngine(cat), nil
}
