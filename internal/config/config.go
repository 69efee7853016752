// Package config loads the command-line settings from an optional YAML
// file and the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Card    string        `yaml:"card" env:"GAUGE_CARD"`
	States  string        `yaml:"states" env:"GAUGE_STATES"`
	Output  string        `yaml:"output" env:"GAUGE_OUTPUT"`
	Preview PreviewConfig `yaml:"preview"`
	Log     LogConfig     `yaml:"log"`
}

type PreviewConfig struct {
	Interval    time.Duration `yaml:"interval" env:"GAUGE_PREVIEW_INTERVAL" env-default:"1s"`
	HistorySize int           `yaml:"history_size" env:"GAUGE_PREVIEW_HISTORY" env-default:"600"`
	LogFile     string        `yaml:"log_file" env:"GAUGE_PREVIEW_LOG_FILE"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"GAUGE_LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"GAUGE_LOG_FORMAT" env-default:"console"`
	Output string `yaml:"output" env:"GAUGE_LOG_OUTPUT" env-default:"stderr"`
}

// Load reads settings from path, or from the environment alone when path is
// empty. Environment variables override file values.
func Load(path string) (*Config, error) {
	var cfg Config
	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("read env: %w", err)
		}
		return &cfg, nil
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return &cfg, nil
}
