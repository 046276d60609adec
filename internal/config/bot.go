package config

import "github.com/caarlos0/env/v11"

type BotConfig struct {
	WSURL       string `env:"WS_URL" envDefault:"ws://localhost:8080/ws"`
	Seed        int64  `env:"BOT_SEED" envDefault:"0"`
	MoveDelayMS int    `env:"BOT_MOVE_DELAY_MS" envDefault:"500"`
}

func LoadBot() (BotConfig, error) {
	var cfg BotConfig
	err := env.Parse(&cfg)
	return cfg, err
}
