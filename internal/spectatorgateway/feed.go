package spectatorgateway

import (
	"chess-relay/internal/relay"
	"chess-relay/internal/stream"
)

// Feed projects relay events onto a public stream buffer. Connection ids
// are never copied into the projection.
type Feed struct {
	buf *stream.Buffer
}

func NewFeed(buf *stream.Buffer) *Feed {
	return &Feed{buf: buf}
}

func (f *Feed) Buffer() *stream.Buffer {
	return f.buf
}

func (f *Feed) Observe(ev relay.Event) {
	switch ev.Kind {
	case relay.EventGameStarted:
		f.buf.Append("game_started", ev.GameID, map[string]any{"position": ev.Position, "ply": ev.Ply})
	case relay.EventSeatAssigned:
		f.buf.Append("seat_assigned", ev.GameID, map[string]any{"role": ev.Role.String()})
	case relay.EventSeatReleased:
		f.buf.Append("seat_released", ev.GameID, map[string]any{"role": ev.Role.String()})
	case relay.EventMoveAccepted:
		if ev.Move == nil {
			return
		}
		f.buf.Append("move", ev.GameID, map[string]any{
			"from":      ev.Move.From,
			"to":        ev.Move.To,
			"promotion": ev.Move.Promotion,
			"san":       ev.Move.SAN,
			"side":      ev.Move.Side,
			"ply":       ev.Ply,
		})
		f.buf.Append("board_state", ev.GameID, map[string]any{"position": ev.Position, "ply": ev.Ply})
	}
}
