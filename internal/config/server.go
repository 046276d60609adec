package config

import "github.com/caarlos0/env/v11"

type ServerConfig struct {
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`
	AdminAPIKey string `env:"ADMIN_API_KEY"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
	StartPosition  string   `env:"START_POSITION"`

	RejectOutOfTurn bool `env:"REJECT_OUT_OF_TURN" envDefault:"false"`
	AnnounceVacancy bool `env:"ANNOUNCE_VACANCY" envDefault:"false"`

	SendBuffer int `env:"SEND_BUFFER" envDefault:"32"`
	FeedBuffer int `env:"FEED_BUFFER" envDefault:"500"`

	// Empty disables the move journal.
	PostgresDSN   string `env:"POSTGRES_DSN"`
	JournalBuffer int    `env:"JOURNAL_BUFFER" envDefault:"256"`

	MCPEnabled bool `env:"MCP_ENABLED" envDefault:"true"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}

func (c ServerConfig) JournalEnabled() bool {
	return c.PostgresDSN != ""
}
