package main

import (
	"github.com/spf13/cobra"

	"specmap/internal/config"
	"specmap/internal/logging"
	"specmap/internal/version"
)

var (
	logLevelFlag  string
	logFormatFlag string
)

var rootCmd = &cobra.Command{
	Use:   "specmap",
	Short: "specmap - deterministic repository analysis",
	Long: `specmap analyzes a repository with deterministic structural heuristics
and produces a cacheable manifest: classified files, extracted evidence,
orphan tests, and coverage gaps. No inference, no network calls during
analysis; the same tree at the same commit always yields the same manifest.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("specmap version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn, error (default from config)")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "",
		"Log format: json, human (default from config)")
}

// newLogger builds the logger from config with CLI flag overrides.
func newLogger(cfg *config.Config) *logging.Logger {
	level := cfg.Logging.Level
	if logLevelFlag != "" {
		level = logLevelFlag
	}
	format := cfg.Logging.Format
	if logFormatFlag != "" {
		format = logFormatFlag
	}
	return logging.NewLogger(logging.Config{
		Format: logging.Format(format),
		Level:  logging.ParseLevel(level),
	})
}

// loadConfig loads and validates configuration rooted at dir.
func loadConfig(dir string) (*config.Config, error) {
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
