package relay

import "chess-relay/internal/rules"

// ConnID identifies one transport connection for its lifetime.
type ConnID string

type Role int

const (
	RoleObserver Role = iota
	RoleFirst
	RoleSecond
)

// Side returns the side a seated role moves for.
func (r Role) Side() (rules.Side, bool) {
	switch r {
	case RoleFirst:
		return rules.White, true
	case RoleSecond:
		return rules.Black, true
	}
	return "", false
}

// Moves reports whether r is entitled to move when side is to play.
func (r Role) Moves(side rules.Side) bool {
	s, ok := r.Side()
	return ok && s == side
}

func (r Role) String() string {
	if s, ok := r.Side(); ok {
		return string(s)
	}
	return "observer"
}

// ConnState tracks a connection through Connecting -> {Player, Observer} -> Disconnected.
type ConnState int

const (
	StateConnecting ConnState = iota
	StatePlayer
	StateObserver
	StateDisconnected
)

func (s ConnState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StatePlayer:
		return "player"
	case StateObserver:
		return "observer"
	default:
		return "disconnected"
	}
}
