// Package config loads generator settings from odatagen.yaml, environment
// variables, and defaults.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config represents one generation run's settings as they appear in the
// configuration file. Pattern strings follow the filter syntax: /expr/ or
// /expr/flags is a regular expression, anything else a literal name.
type Config struct {
	Package        string   `mapstructure:"package"`
	Output         string   `mapstructure:"output"`
	Sources        []string `mapstructure:"sources"`
	Imports        []string `mapstructure:"imports"`
	Include        []string `mapstructure:"include"`
	Exclude        []string `mapstructure:"exclude"`
	APIContextName string   `mapstructure:"api_context_name"`
	APIContextBase string   `mapstructure:"api_context_base"`
}

// Load reads odatagen.yaml (or .yml) from the given directory, falling back
// to defaults when no file exists. Environment variables override file
// values.
func Load(dir string) (*Config, error) {
	v := viper.New()

	v.SetDefault("package", "odata")
	v.SetDefault("output", "model.go")

	v.SetConfigName("odatagen")
	v.SetConfigType("yaml")
	if dir == "" {
		dir = "."
	}
	v.AddConfigPath(dir)

	v.SetEnvPrefix("ODATAGEN")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

func validate(config *Config) error {
	if config.Package == "" {
		return fmt.Errorf("package must not be empty")
	}
	if config.Output == "" {
		return fmt.Errorf("output must not be empty")
	}
	return nil
}
