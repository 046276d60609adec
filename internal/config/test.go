package config

import "github.com/caarlos0/env/v11"

// TestConfig is read by DB-backed tests. An empty DSN means those tests skip.
type TestConfig struct {
	TestPostgresDSN string `env:"TEST_POSTGRES_DSN"`
}

func LoadTest() (TestConfig, error) {
	var cfg TestConfig
	err := env.Parse(&cfg)
	return cfg, err
}
