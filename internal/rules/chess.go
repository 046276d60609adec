package rules

import (
	"fmt"
	"strings"

	nchess "github.com/corentings/chess/v2"
)

// Chess is an Engine backed by corentings/chess.
type Chess struct {
	game  *nchess.Game
	start string
	ply   int
}

// NewChess starts a game from the standard position, or from fen when non-empty.
func NewChess(fen string) (*Chess, error) {
	c := &Chess{}
	if strings.TrimSpace(fen) == "" {
		c.game = nchess.NewGame()
		c.start = c.game.FEN()
		return c, nil
	}
	if err := c.Load(fen); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Chess) CurrentTurn() Side {
	if c.game.Position().Turn() == nchess.White {
		return White
	}
	return Black
}

func (c *Chess) Serialize() string {
	return c.game.FEN()
}

func (c *Chess) Load(position string) error {
	opt, err := nchess.FEN(strings.TrimSpace(position))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadPosition, err)
	}
	c.game = nchess.NewGame(opt)
	c.start = c.game.FEN()
	c.ply = 0
	return nil
}

// Reset returns to the position the engine was created or last loaded with.
func (c *Chess) Reset() error {
	return c.Load(c.start)
}

func (c *Chess) Ply() int {
	return c.ply
}

func (c *Chess) Outcome() (Outcome, string) {
	switch c.game.Outcome() {
	case nchess.WhiteWon:
		return WhiteWon, c.game.Method().String()
	case nchess.BlackWon:
		return BlackWon, c.game.Method().String()
	case nchess.Draw:
		return Draw, c.game.Method().String()
	}
	return NoOutcome, ""
}

func (c *Chess) ApplyMove(in MoveInput) (mv Move, err error) {
	defer func() {
		if r := recover(); r != nil {
			mv, err = Move{}, fmt.Errorf("%w: %v", ErrIllegalMove, r)
		}
	}()
	if !in.Complete() {
		return Move{}, fmt.Errorf("%w: %w", ErrIllegalMove, ErrMalformedMove)
	}
	if c.game.Outcome() != nchess.NoOutcome {
		return Move{}, fmt.Errorf("%w: %w", ErrIllegalMove, ErrGameOver)
	}
	side := c.CurrentTurn()
	pos := c.game.Position()
	var lastErr error
	for _, uci := range candidates(in) {
		m, derr := nchess.UCINotation{}.Decode(pos, uci)
		if derr != nil {
			lastErr = derr
			continue
		}
		if merr := c.game.Move(m, nil); merr != nil {
			lastErr = merr
			continue
		}
		c.ply++
		applied := m
		if moves := c.game.Moves(); len(moves) > 0 {
			applied = moves[len(moves)-1]
		}
		out := parseUCI(applied.String())
		out.SAN = nchess.AlgebraicNotation{}.Encode(pos, applied)
		out.Side = side
		return out, nil
	}
	return Move{}, fmt.Errorf("%w: %v", ErrIllegalMove, lastErr)
}

// candidates lists the UCI strings to try for in. Clients may attach a
// promotion piece to every move, and may omit it on a pawn reaching the
// last rank; the latter promotes to a queen.
func candidates(in MoveInput) []string {
	from := strings.ToLower(strings.TrimSpace(in.From))
	to := strings.ToLower(strings.TrimSpace(in.To))
	promo := strings.ToLower(strings.TrimSpace(in.Promotion))
	base := from + to
	if promo == "" {
		return []string{base, base + "q"}
	}
	return []string{base + promo, base}
}

func parseUCI(s string) Move {
	if len(s) < 4 {
		return Move{From: s}
	}
	return Move{From: s[0:2], To: s[2:4], Promotion: s[4:]}
}

// LegalMoves lists every legal move in the current position as from/to
// pairs. Promotions appear once per promotion piece.
func (c *Chess) LegalMoves() []MoveInput {
	if c.game.Outcome() != nchess.NoOutcome {
		return nil
	}
	valid := c.game.Position().ValidMoves()
	out := make([]MoveInput, 0, len(valid))
	for _, m := range valid {
		mv := parseUCI(m.String())
		out = append(out, MoveInput{From: mv.From, To: mv.To, Promotion: mv.Promotion})
	}
	return out
}

// LegalMovesFEN is LegalMoves for a serialized position.
func LegalMovesFEN(fen string) ([]MoveInput, error) {
	c, err := NewChess(fen)
	if err != nil {
		return nil, err
	}
	return c.LegalMoves(), nil
}
