// Package config loads runtime configuration for the comparison tool from
// defaults, an optional YAML file, and PDFDIFF_* environment variables, in
// increasing precedence. Command-line flags override all of it in cmd.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds every tunable of a comparison run.
type Config struct {
	// OutputDir receives highlighted and combined documents.
	OutputDir string `mapstructure:"output_dir"`
	// CombinedName is the file name of the side-by-side document.
	CombinedName string `mapstructure:"combined_name"`
	// Extractor selects the word-extraction backend: "unidoc" or "plain".
	Extractor string `mapstructure:"extractor"`
	// Colors are per-document highlight colors as "#rrggbb" strings; index 0
	// is the reference document.
	Colors []string `mapstructure:"colors"`
	// Opacity of highlight fills, in (0, 1].
	Opacity float64 `mapstructure:"opacity"`
	// DPI used to rasterize pages for the combined document.
	DPI float64 `mapstructure:"dpi"`
	// CaseSensitive disables case folding during diffing.
	CaseSensitive bool `mapstructure:"case_sensitive"`
	// AllowEmptyPages accepts pages without extractable text.
	AllowEmptyPages bool `mapstructure:"allow_empty_pages"`
	// StrictPageCount makes differing page counts an error.
	StrictPageCount bool `mapstructure:"strict_page_count"`
	// Debug enables verbose logging.
	Debug bool `mapstructure:"debug"`
}

// Load reads configuration from the YAML file at path, if any. An empty path
// yields defaults plus environment overrides; a missing file at an explicit
// path is an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("pdfdiff")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("output_dir", "comparison_output")
	v.SetDefault("combined_name", "combined_comparison.pdf")
	v.SetDefault("extractor", "unidoc")
	v.SetDefault("colors", []string{})
	v.SetDefault("opacity", 0.4)
	v.SetDefault("dpi", 150)
	v.SetDefault("case_sensitive", false)
	v.SetDefault("allow_empty_pages", false)
	v.SetDefault("strict_page_count", false)
	v.SetDefault("debug", false)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %q: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Extractor != "unidoc" && cfg.Extractor != "plain" {
		return nil, fmt.Errorf("unknown extractor %q (want unidoc or plain)", cfg.Extractor)
	}
	return &cfg, nil
}
