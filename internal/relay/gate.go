package relay

import (
	"errors"
	"fmt"

	"chess-relay/internal/rules"
)

// Accepted is the result of a move that passed both turn and rules checks.
type Accepted struct {
	Move     rules.Move
	Position string
}

// Gate authorizes moves against seat ownership and the rules engine.
type Gate struct {
	registry *Registry
	engine   rules.Engine
}

func NewGate(registry *Registry, engine rules.Engine) *Gate {
	return &Gate{registry: registry, engine: engine}
}

// Submit checks that id holds the seat for the side to move, then hands the
// move to the engine. Only an accepted move mutates the position.
func (g *Gate) Submit(id ConnID, in rules.MoveInput) (acc Accepted, err error) {
	expected := g.engine.CurrentTurn()
	if !g.registry.RoleOf(id).Moves(expected) {
		return Accepted{}, ErrNotYourTurn
	}
	if !in.Complete() {
		return Accepted{}, fmt.Errorf("%w: %w", ErrIllegalMove, rules.ErrMalformedMove)
	}
	defer func() {
		if r := recover(); r != nil {
			acc, err = Accepted{}, fmt.Errorf("%w: engine panic: %v", ErrIllegalMove, r)
		}
	}()
	mv, err := g.engine.ApplyMove(in)
	if err != nil {
		if !errors.Is(err, ErrIllegalMove) {
			err = fmt.Errorf("%w: %w", ErrIllegalMove, err)
		}
		return Accepted{}, err
	}
	return Accepted{Move: mv, Position: g.engine.Serialize()}, nil
}
