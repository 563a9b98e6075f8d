package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ServerConfig holds the HTTP server settings read from the environment.
type ServerConfig struct {
	Addr         string        `env:"RPGO_ADDR" envDefault:":8080"`
	RulesFile    string        `env:"RPGO_RULES_FILE"`
	MaxBodyBytes int           `env:"RPGO_MAX_BODY_BYTES" envDefault:"1048576"`
	LogLevel     string        `env:"RPGO_LOG_LEVEL" envDefault:"info"`
	ReadTimeout  time.Duration `env:"RPGO_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"RPGO_WRITE_TIMEOUT" envDefault:"10s"`
}

// LoadServerConfig loads server configuration from environment variables.
func LoadServerConfig() (ServerConfig, error) {
	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.MaxBodyBytes <= 0 {
		return ServerConfig{}, fmt.Errorf("RPGO_MAX_BODY_BYTES must be positive, got %d", cfg.MaxBodyBytes)
	}
	return cfg, nil
}
