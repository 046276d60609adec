package main

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"chess-relay/internal/config"
	"chess-relay/internal/logging"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

func main() {
	logCfg, err := config.LoadLog()
	if err != nil {
		panic(err)
	}
	logging.Init(logCfg)
	cfg, err := config.LoadBot()
	if err != nil {
		log.Fatal().Err(err).Msg("load bot config failed")
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	b := newBot(rand.New(rand.NewSource(seed)), currentPosition(cfg.WSURL))
	delay := time.Duration(cfg.MoveDelayMS) * time.Millisecond

	conn, _, err := websocket.DefaultDialer.Dial(cfg.WSURL, nil)
	if err != nil {
		log.Fatal().Err(err).Str("url", cfg.WSURL).Msg("dial failed")
	}
	defer conn.Close()
	log.Info().Str("url", cfg.WSURL).Int64("seed", seed).Msg("bot connected")

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			log.Info().Err(err).Msg("bot disconnected")
			return
		}
		mv, err := b.handle(data)
		if err != nil {
			log.Warn().Err(err).Msg("bad frame")
			continue
		}
		if mv == nil {
			continue
		}
		if delay > 0 {
			time.Sleep(delay)
		}
		log.Debug().Str("side", string(b.side)).Str("from", mv.From).Str("to", mv.To).Msg("bot move")
		if err := conn.WriteJSON(mv); err != nil {
			log.Info().Err(err).Msg("write failed")
			return
		}
	}
}

// currentPosition asks the relay for its board so a bot joining mid-game
// starts from the right position. Empty means the standard start.
func currentPosition(wsURL string) string {
	stateURL, ok := stateURLFor(wsURL)
	if !ok {
		return ""
	}
	client := &http.Client{Timeout: 3 * time.Second}
	resp, err := client.Get(stateURL)
	if err != nil {
		log.Warn().Err(err).Str("url", stateURL).Msg("state fetch failed")
		return ""
	}
	defer resp.Body.Close()
	var snap struct {
		Position string `json:"position"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return ""
	}
	return snap.Position
}

func stateURLFor(wsURL string) (string, bool) {
	u, err := url.Parse(wsURL)
	if err != nil {
		return "", false
	}
	switch u.Scheme {
	case "ws":
		u.Scheme = "http"
	case "wss":
		u.Scheme = "https"
	default:
		return "", false
	}
	u.Path = strings.TrimSuffix(u.Path, "/ws") + "/api/public/state"
	u.RawQuery = ""
	return u.String(), true
}
