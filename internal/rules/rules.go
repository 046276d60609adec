package rules

import "errors"

var (
	ErrIllegalMove   = errors.New("illegal_move")
	ErrMalformedMove = errors.New("malformed_move")
	ErrGameOver      = errors.New("game_over")
	ErrBadPosition   = errors.New("bad_position")
)

// Side identifies who moves. Values match the wire encoding.
type Side string

const (
	White Side = "w"
	Black Side = "b"
)

func (s Side) Opponent() Side {
	if s == White {
		return Black
	}
	return White
}

func (s Side) Valid() bool {
	return s == White || s == Black
}

// MoveInput is a proposed move in square notation, as submitted by a client.
type MoveInput struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

// Complete reports whether both squares are present.
func (in MoveInput) Complete() bool {
	return in.From != "" && in.To != ""
}

// Move is the canonical record of an accepted move.
type Move struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
	SAN       string `json:"san"`
	Side      Side   `json:"-"`
}

// UCI returns the move in long algebraic (UCI) form, e.g. e7e8q.
func (m Move) UCI() string {
	return m.From + m.To + m.Promotion
}

// Outcome mirrors PGN result strings.
type Outcome string

const (
	NoOutcome Outcome = "*"
	WhiteWon  Outcome = "1-0"
	BlackWon  Outcome = "0-1"
	Draw      Outcome = "1/2-1/2"
)

// Engine owns a single game position. Implementations are not safe for
// concurrent use; callers serialize access.
type Engine interface {
	CurrentTurn() Side
	// ApplyMove validates and applies in. On any error the position is unchanged.
	ApplyMove(in MoveInput) (Move, error)
	Serialize() string
	Load(position string) error
	Outcome() (Outcome, string)
	Ply() int
}
