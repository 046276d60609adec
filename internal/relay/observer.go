package relay

import (
	"time"

	"chess-relay/internal/rules"
)

type EventKind string

const (
	EventGameStarted  EventKind = "game_started"
	EventSeatAssigned EventKind = "seat_assigned"
	EventSeatReleased EventKind = "seat_released"
	EventMoveAccepted EventKind = "move_accepted"
)

// Event describes a state change in a relay. Connection ids are included
// for server-side consumers; public projections must strip them.
type Event struct {
	Kind     EventKind
	GameID   string
	ConnID   ConnID
	Role     Role
	Move     *rules.Move
	Position string
	Ply      int
	At       time.Time
}

// Observer receives relay events. Observe is called while the relay holds
// its lock, so implementations must return quickly and never call back into
// the relay.
type Observer interface {
	Observe(ev Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ev Event)

func (f ObserverFunc) Observe(ev Event) { f(ev) }
