// Package config provides centralized configuration management for
// parcelscope: viper-discovered file and environment layers decoded into
// one typed struct.
package config

import (
	"sync"
	"time"
)

var (
	appConfig *Config
	configMu  sync.RWMutex
)

// Config represents the complete application configuration.
type Config struct {
	Carto   CartoConfig   `mapstructure:"carto"`
	Years   YearsConfig   `mapstructure:"years"`
	Report  ReportConfig  `mapstructure:"report"`
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// CartoConfig describes the remote query service and the registry tables.
type CartoConfig struct {
	BaseURL          string        `mapstructure:"base_url"`
	Timeout          time.Duration `mapstructure:"timeout"`
	PropertiesTable  string        `mapstructure:"properties_table"`
	AssessmentsTable string        `mapstructure:"assessments_table"`
}

// YearsConfig bounds the selectable tax-year menu.
type YearsConfig struct {
	Min int `mapstructure:"min"`
	Max int `mapstructure:"max"`
}

// ReportConfig controls the formatted report export.
type ReportConfig struct {
	MaxRows int `mapstructure:"max_rows"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level controls the minimum log level: trace, debug, info, warn, error.
	Level string `mapstructure:"level"`

	// Profile selects the logging complexity level: SIMPLE or STRUCTURED.
	Profile string `mapstructure:"profile"`
}

// MetricsConfig contains Prometheus metrics configuration for serve mode.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// GetConfig returns the currently loaded configuration, or nil before Load.
func GetConfig() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return appConfig
}

// SetConfig replaces the current configuration. Exposed for tests.
func SetConfig(cfg *Config) {
	configMu.Lock()
	defer configMu.Unlock()
	appConfig = cfg
}

// SelectableYears expands the configured menu into the full year list.
func (c *Config) SelectableYears() []int {
	if c.Years.Min == 0 || c.Years.Max < c.Years.Min {
		return nil
	}
	years := make([]int, 0, c.Years.Max-c.Years.Min+1)
	for y := c.Years.Min; y <= c.Years.Max; y++ {
		years = append(years, y)
	}
	return years
}
