package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"chess-relay/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	mu     sync.Mutex
	sink   io.Writer = os.Stdout
	closer io.Closer
)

// Init configures the global zerolog logger. A log file that cannot be
// opened falls back to stdout.
func Init(cfg config.LogConfig) {
	mu.Lock()
	defer mu.Unlock()

	level := zerolog.InfoLevel
	if v := strings.TrimSpace(cfg.Level); v != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(v)); err == nil {
			level = parsed
		}
	}

	if closer != nil {
		_ = closer.Close()
		closer = nil
	}
	var base io.Writer = os.Stdout
	var fileErr error
	if cfg.File != "" {
		w, err := newSizeLimitedWriter(cfg.File, cfg.MaxMB)
		if err != nil {
			fileErr = err
		} else {
			base = w
			closer = w
		}
	}
	sink = base

	var output io.Writer = base
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: base, NoColor: cfg.File != ""}
	}

	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(output).With().Timestamp().Logger()
	if cfg.SampleEvery > 1 {
		logger = logger.Sample(&zerolog.BasicSampler{N: uint32(cfg.SampleEvery)})
	}
	log.Logger = logger

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", cfg.File).Msg("log_file_open_failed")
	}
}

// Writer returns the raw sink chosen by Init, for handlers that format
// their own records.
func Writer() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return sink
}
