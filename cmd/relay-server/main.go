package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apppublic "chess-relay/internal/app/public"
	"chess-relay/internal/config"
	"chess-relay/internal/journal"
	"chess-relay/internal/logging"
	"chess-relay/internal/relay"
	"chess-relay/internal/rules"
	"chess-relay/internal/spectatorgateway"
	"chess-relay/internal/store"
	"chess-relay/internal/stream"
	httptransport "chess-relay/internal/transport/http"
	"chess-relay/internal/ws"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.LoadApp()
	if err != nil {
		panic(err)
	}
	logging.Init(cfg.Log)

	engine, err := rules.NewChess(cfg.Server.StartPosition)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid START_POSITION")
	}
	rl := relay.New(engine, relay.Options{
		RejectOutOfTurn: cfg.Server.RejectOutOfTurn,
		AnnounceVacancy: cfg.Server.AnnounceVacancy,
	})

	feedBuf := stream.NewBuffer(cfg.Server.FeedBuffer)
	defer feedBuf.Close()
	feed := spectatorgateway.NewFeed(feedBuf)
	rl.AddObserver(feed)

	deps := httptransport.Deps{
		Config: cfg.Server,
		Relay:  rl,
		WS:     ws.NewServer(rl, ws.Options{AllowedOrigins: cfg.Server.AllowedOrigins, SendBuffer: cfg.Server.SendBuffer}),
		Feed:   feed,
	}

	var jr *journal.Journal
	if cfg.Server.JournalEnabled() {
		st, err := store.New(cfg.Server.PostgresDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("store init failed")
		}
		defer st.Close()
		if err := st.Ping(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("db ping failed")
		}
		jr = journal.New(st, cfg.Server.JournalBuffer)
		rl.AddObserver(jr)
		deps.DB = st
		deps.Public = apppublic.NewService(rl, st)
		log.Info().Int("buffer", cfg.Server.JournalBuffer).Msg("move journal enabled")
	} else {
		deps.Public = apppublic.NewService(rl, nil)
		log.Info().Msg("move journal disabled")
	}

	r := httptransport.NewRouter(deps)
	httptransport.LogRoutes(r)

	server := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", cfg.Server.HTTPAddr).Str("game_id", rl.GameID()).Msg("http listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}

	if jr != nil {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := jr.Close(flushCtx); err != nil {
			log.Warn().Err(err).Msg("journal flush incomplete")
		}
		cancel()
	}
	log.Info().Msg("server stopped")
}
