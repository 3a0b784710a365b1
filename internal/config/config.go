package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/a8m/envsubst"
	"github.com/goccy/go-yaml"
)

// Environment variable names read by FromEnv.
const (
	EnvProjectName    = "project_name"
	EnvSSMName        = "ssm_name"
	EnvMirrorURLs     = "mirror_urls"
	EnvMirrorTemplate = "mirror_template"
	EnvLogLevel       = "log_level"
	EnvLogFormat      = "log_format"
)

type Config struct {
	// ProjectName is posted as the message content above the embed.
	ProjectName string `yaml:"project_name" validate:"required"`
	// SSMName is the parameter holding the Discord webhook URL.
	SSMName        string   `yaml:"ssm_name" validate:"required"`
	Mirrors        []string `yaml:"mirrors" validate:"dive,shoutrrr"`
	MirrorTemplate string   `yaml:"mirror_template"`
	Log            Log      `yaml:"log"`
}

type Log struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"omitempty,oneof=auto text json"`
}

// Load reads a YAML config file, expanding ${VAR} references first.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	data, err = envsubst.Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("expanding env vars: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a config from environment variables, the way the Lambda
// runtime provides it. lookup is usually os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) *Config {
	get := func(key string) string {
		v, _ := lookup(key)
		return v
	}

	cfg := &Config{
		ProjectName:    get(EnvProjectName),
		SSMName:        get(EnvSSMName),
		MirrorTemplate: get(EnvMirrorTemplate),
		Log: Log{
			Level:  get(EnvLogLevel),
			Format: get(EnvLogFormat),
		},
	}
	for _, u := range strings.Split(get(EnvMirrorURLs), ",") {
		if u = strings.TrimSpace(u); u != "" {
			cfg.Mirrors = append(cfg.Mirrors, u)
		}
	}
	return cfg
}
