// Package config handles cavegen configuration loading and management.
package config

import (
	"github.com/Faultbox/midgard-caves/pkg/cave"
)

// Config holds all cavegen settings.
type Config struct {
	Cave    cave.Config   `yaml:"cave"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// OutputConfig holds export settings.
type OutputConfig struct {
	Format string `yaml:"format"` // obj, json, png, bmp, ascii or gat
	Path   string `yaml:"path"`   // Empty writes to stdout
	Scale  int    `yaml:"scale"`  // Raster pixels per square
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	Format  string `yaml:"format"` // console or json, applies to the log file
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Cave: cave.DefaultConfig(),
		Output: OutputConfig{
			Format: "obj",
			Path:   "",
			Scale:  8,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
			Format:  "console",
		},
	}
}
