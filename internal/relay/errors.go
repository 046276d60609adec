package relay

import (
	"errors"

	"chess-relay/internal/rules"
)

var (
	ErrNotYourTurn       = errors.New("not_your_turn")
	ErrIllegalMove       = rules.ErrIllegalMove
	ErrUnknownConnection = errors.New("unknown_connection")
)

// ReasonCode maps a rejection to the code sent to clients.
func ReasonCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotYourTurn):
		return "not_your_turn"
	case errors.Is(err, rules.ErrMalformedMove):
		return "malformed_move"
	case errors.Is(err, rules.ErrGameOver):
		return "game_over"
	case errors.Is(err, ErrIllegalMove):
		return "illegal_move"
	case errors.Is(err, ErrUnknownConnection):
		return "unknown_connection"
	default:
		return "unknown_error"
	}
}
