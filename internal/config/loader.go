package config

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/parcelscope/parcelscope/internal/carto"
	"github.com/parcelscope/parcelscope/internal/output"
)

// SetDefaults installs the default configuration values on the supplied
// viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("carto.base_url", carto.DefaultBaseURL)
	v.SetDefault("carto.timeout", "15s")
	v.SetDefault("carto.properties_table", "opa_properties_public")
	v.SetDefault("carto.assessments_table", "assessments")

	v.SetDefault("years.min", 2023)
	v.SetDefault("years.max", 2026)

	v.SetDefault("report.max_rows", output.DefaultMaxReportRows)

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.profile", "structured")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
}

// Load decodes the viper state into a typed Config, validates it, and
// installs it as the active configuration.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(v.AllSettings()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	SetConfig(cfg)
	return cfg, nil
}

// Validate checks the loaded configuration for unusable values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Carto.BaseURL) == "" {
		return fmt.Errorf("carto.base_url is required")
	}
	if c.Carto.Timeout <= 0 {
		return fmt.Errorf("carto.timeout must be positive")
	}
	if strings.TrimSpace(c.Carto.PropertiesTable) == "" {
		return fmt.Errorf("carto.properties_table is required")
	}
	if strings.TrimSpace(c.Carto.AssessmentsTable) == "" {
		return fmt.Errorf("carto.assessments_table is required")
	}
	if c.Years.Min <= 0 || c.Years.Max < c.Years.Min {
		return fmt.Errorf("years.min/years.max must describe a non-empty range")
	}
	if c.Report.MaxRows <= 0 {
		return fmt.Errorf("report.max_rows must be positive")
	}
	return nil
}
