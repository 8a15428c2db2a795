// Package config holds the single explicit configuration struct for
// the analysis pipeline. All defaults are named here and resolved once
// at pipeline entry; no function re-derives its own fallbacks.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"specmap/internal/errors"
)

// Config is the complete specmap configuration.
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	Analysis AnalysisConfig `json:"analysis" mapstructure:"analysis"`
	Caps     CapsConfig     `json:"caps" mapstructure:"caps"`
	Storage  StorageConfig  `json:"storage" mapstructure:"storage"`
	Logging  LoggingConfig  `json:"logging" mapstructure:"logging"`
}

// AnalysisConfig bounds the walk and the heuristic scans.
type AnalysisConfig struct {
	MaxFiles           int      `json:"maxFiles" mapstructure:"maxFiles"`
	ExcludePatterns    []string `json:"excludePatterns" mapstructure:"excludePatterns"`
	DirTreeDepth       int      `json:"dirTreeDepth" mapstructure:"dirTreeDepth"`
	AnnotationLookback int      `json:"annotationLookback" mapstructure:"annotationLookback"`
	// CoverageGapThreshold is the covered/total ratio below which a
	// coverage_gap item is synthesized. Strictly less-than.
	CoverageGapThreshold float64 `json:"coverageGapThreshold" mapstructure:"coverageGapThreshold"`
	MaxOrphanBodyLines   int     `json:"maxOrphanBodyLines" mapstructure:"maxOrphanBodyLines"`
	MaxSectionChars      int     `json:"maxSectionChars" mapstructure:"maxSectionChars"`
	MinSectionChars      int     `json:"minSectionChars" mapstructure:"minSectionChars"`
	DocLookback          int     `json:"docLookback" mapstructure:"docLookback"`
}

// CapsConfig sets per-type evidence caps, enforced first-N at
// insertion time.
type CapsConfig struct {
	MaxSourceExports int `json:"maxSourceExports" mapstructure:"maxSourceExports"`
	MaxUIComponents  int `json:"maxUiComponents" mapstructure:"maxUiComponents"`
	MaxAPIEndpoints  int `json:"maxApiEndpoints" mapstructure:"maxApiEndpoints"`
	MaxDocumentation int `json:"maxDocumentation" mapstructure:"maxDocumentation"`
	MaxCodeComments  int `json:"maxCodeComments" mapstructure:"maxCodeComments"`
	MaxCoverageGaps  int `json:"maxCoverageGaps" mapstructure:"maxCoverageGaps"`
}

// StorageConfig configures the manifest store.
type StorageConfig struct {
	Dir          string `json:"dir" mapstructure:"dir"`
	HotCacheSize int    `json:"hotCacheSize" mapstructure:"hotCacheSize"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the configuration with all named defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Analysis: AnalysisConfig{
			MaxFiles: 10000,
			ExcludePatterns: []string{
				"node_modules/**",
				"vendor/**",
				"dist/**",
				"build/**",
				".git/**",
				"coverage/**",
			},
			DirTreeDepth:         4,
			AnnotationLookback:   5,
			CoverageGapThreshold: 0.5,
			MaxOrphanBodyLines:   80,
			MaxSectionChars:      500,
			MinSectionChars:      40,
			DocLookback:          10,
		},
		Caps: CapsConfig{
			MaxSourceExports: 200,
			MaxUIComponents:  100,
			MaxAPIEndpoints:  100,
			MaxDocumentation: 50,
			MaxCodeComments:  150,
			MaxCoverageGaps:  100,
		},
		Storage: StorageConfig{
			Dir:          ".specmap",
			HotCacheSize: 64,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// Load reads .specmap/config.json under dir, falling back to defaults
// when no config file exists.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(dir, ".specmap"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrap(errors.ConfigInvalid, "failed to read config", err)
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(errors.ConfigInvalid, "failed to parse config", err)
	}
	return cfg, nil
}

// Save writes the configuration to .specmap/config.json under dir.
func (c *Config) Save(dir string) error {
	specmapDir := filepath.Join(dir, ".specmap")
	if err := os.MkdirAll(specmapDir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(specmapDir, "config.json"), data, 0644)
}

// Validate checks invariants the pipeline depends on. Called once at
// pipeline entry; configuration failures are fatal before any phase.
func (c *Config) Validate() error {
	if c.Analysis.MaxFiles <= 0 {
		return errors.New(errors.ConfigInvalid, "analysis.maxFiles must be positive")
	}
	if c.Analysis.AnnotationLookback <= 0 {
		return errors.New(errors.ConfigInvalid, "analysis.annotationLookback must be positive")
	}
	if c.Analysis.CoverageGapThreshold <= 0 || c.Analysis.CoverageGapThreshold > 1 {
		return errors.New(errors.ConfigInvalid, "analysis.coverageGapThreshold must be in (0, 1]")
	}
	if c.Analysis.DirTreeDepth <= 0 {
		return errors.New(errors.ConfigInvalid, "analysis.dirTreeDepth must be positive")
	}
	return nil
}
