package httptransport

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"chess-relay/internal/relay"
	"chess-relay/internal/rules"

	"github.com/rs/zerolog/log"
)

type AdminHandlers struct {
	relay *relay.Relay
	db    Pinger
}

func NewAdminHandlers(rl *relay.Relay, db Pinger) *AdminHandlers {
	return &AdminHandlers{relay: rl, db: db}
}

func (h *AdminHandlers) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.db == nil {
			writeJSON(w, map[string]any{"ok": true, "journal": "disabled"})
			return
		}
		if err := h.db.Ping(r.Context()); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "journal": "down"})
			return
		}
		writeJSON(w, map[string]any{"ok": true, "journal": "up"})
	}
}

type resetRequest struct {
	Position string `json:"position"`
}

// Reset starts a new game. An empty body restarts from the configured
// start position.
func (h *AdminHandlers) Reset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req resetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if err := h.relay.Reset(req.Position); err != nil {
			if errors.Is(err, rules.ErrBadPosition) {
				WriteHTTPError(w, http.StatusBadRequest, "bad_position")
				return
			}
			log.Error().Err(err).Msg("reset failed")
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		metricAdminResetTotal.Add(1)
		writeJSON(w, h.relay.Snapshot())
	}
}
