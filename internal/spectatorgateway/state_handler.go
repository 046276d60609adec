package spectatorgateway

import (
	"encoding/json"
	"net/http"

	"chess-relay/internal/relay"
)

func StateHandler(rl *relay.Relay) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(rl.Snapshot())
	}
}
