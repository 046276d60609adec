package config

import "testing"

func TestLoadServerDefaults(t *testing.T) {
	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.RejectOutOfTurn || cfg.AnnounceVacancy {
		t.Fatalf("expected silent policies by default: %+v", cfg)
	}
	if cfg.SendBuffer != 32 || cfg.FeedBuffer != 500 || cfg.JournalBuffer != 256 {
		t.Fatalf("unexpected buffer defaults: %+v", cfg)
	}
	if !cfg.MCPEnabled {
		t.Fatal("MCPEnabled = false, want true")
	}
	if cfg.JournalEnabled() {
		t.Fatal("journal should be disabled without POSTGRES_DSN")
	}
}

func TestLoadServerParseTypes(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://localhost:5432/relay?sslmode=disable")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("REJECT_OUT_OF_TURN", "true")
	t.Setenv("ANNOUNCE_VACANCY", "1")
	t.Setenv("SEND_BUFFER", "8")
	t.Setenv("MCP_ENABLED", "false")
	t.Setenv("START_POSITION", "8/8/8/8/8/8/8/K6k w - - 0 1")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if !cfg.RejectOutOfTurn || !cfg.AnnounceVacancy {
		t.Fatalf("policies not parsed: %+v", cfg)
	}
	if cfg.SendBuffer != 8 || cfg.MCPEnabled {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if !cfg.JournalEnabled() {
		t.Fatal("journal should be enabled with POSTGRES_DSN")
	}
	if cfg.StartPosition != "8/8/8/8/8/8/8/K6k w - - 0 1" {
		t.Fatalf("StartPosition = %q", cfg.StartPosition)
	}
}

func TestLoadServerRejectsBadBool(t *testing.T) {
	t.Setenv("REJECT_OUT_OF_TURN", "maybe")

	if _, err := LoadServer(); err == nil {
		t.Fatal("LoadServer() expected error, got nil")
	}
}
