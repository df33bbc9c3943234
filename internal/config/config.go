// Copyright (c) 2025-2026 Wind Space
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment
// variables. The variable names are the de facto deployment contract.
type Config struct {
	DBPath     string `env:"WINDSPACE_DB_PATH" envDefault:"./data/windspace.db"`
	ServerHost string `env:"WINDSPACE_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"WINDSPACE_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"WINDSPACE_ENV" envDefault:"development"`
	LogLevel   string `env:"WINDSPACE_LOG_LEVEL" envDefault:"info"`

	// ClientURL is the public client origin allowed by CORS. Empty means
	// any origin, for local development.
	ClientURL string `env:"WINDSPACE_CLIENT_URL"`

	// DoSeed enables seeding the default category sections on boot.
	DoSeed bool `env:"WINDSPACE_DO_SEED" envDefault:"false"`
}

// IsDevelopment returns true if the application runs in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the listen address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}
