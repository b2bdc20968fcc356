package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ServerEnv is the environment of the settings server.
type ServerEnv struct {
	Host string `env:"VR_TIMER_HOST" envDefault:"0.0.0.0"`
	Port int    `env:"VR_TIMER_PORT" envDefault:"5000"`
}

// ParseServerEnv loads ServerEnv from environment variables.
func ParseServerEnv() (ServerEnv, error) {
	var result ServerEnv
	if err := env.Parse(&result); err != nil {
		return ServerEnv{}, fmt.Errorf("parse env: %w", err)
	}
	return result, nil
}
