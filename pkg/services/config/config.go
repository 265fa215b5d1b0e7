package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type SacctConfig struct {
	Binary           string `mapstructure:"binary"`
	DefaultPartition string `mapstructure:"default_partition"`
}

type DirectoryConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	ProfilePath string `mapstructure:"profile_path"`
}

type EnrichConfig struct {
	// SkipEmailDomain drops addresses whose domain contains this fragment
	// when extracting contact lists (the operator's own domain).
	SkipEmailDomain string `mapstructure:"skip_email_domain"`
	// InitiativeSuffix marks a secondary group as initiative membership.
	InitiativeSuffix string `mapstructure:"initiative_suffix"`
	// InitiativeTag is the value written for matching identities.
	InitiativeTag string `mapstructure:"initiative_tag"`
}

type Config struct {
	Sacct     SacctConfig     `mapstructure:"sacct"`
	Directory DirectoryConfig `mapstructure:"directory"`
	Enrich    EnrichConfig    `mapstructure:"enrich"`
}

// Defaults returns the configuration used when no config file is given.
func Defaults() *Config {
	return &Config{
		Sacct: SacctConfig{
			Binary:           "sacct",
			DefaultPartition: "lrz-hgx-h100-94x4",
		},
		Enrich: EnrichConfig{
			SkipEmailDomain:  "lrz",
			InitiativeSuffix: "ai-h-mcml",
			InitiativeTag:    "mcml",
		},
	}
}

// LoadConfig reads the tool configuration from the given file, filling
// unset values with defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
