package spectatorgateway

import (
	"net/http"
	"time"

	"chess-relay/internal/stream"
)

var pingInterval = 15 * time.Second

func EventsHandler(feed *Feed) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		buf := feed.Buffer()
		metricSpectatorSSEConnectionsTotal.Add(1)
		metricSpectatorSSEConnectionsActive.Add(1)
		defer metricSpectatorSSEConnectionsActive.Add(-1)

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		ch := buf.Subscribe()
		defer buf.Unsubscribe(ch)

		replay := buf.ReplayAfter(r.Header.Get("Last-Event-ID"))
		last := ""
		for _, ev := range replay {
			if err := stream.WriteSSE(w, ev); err != nil {
				return
			}
			last = ev.EventID
		}
		flusher.Flush()

		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case ev, ok := <-ch:
				if !ok {
					return
				}
				if last != "" && !newer(ev.EventID, last) {
					continue
				}
				if err := stream.WriteSSE(w, ev); err != nil {
					return
				}
				flusher.Flush()
			case <-ticker.C:
				ping := stream.Event{
					Event:    "ping",
					ServerTS: time.Now().UnixMilli(),
					Data:     map[string]any{"ts": time.Now().UnixMilli()},
				}
				if err := stream.WriteSSE(w, ping); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	}
}

// newer reports whether event id a comes after b. Ids are decimal counters.
func newer(a, b string) bool {
	if len(a) != len(b) {
		return len(a) > len(b)
	}
	return a > b
}
