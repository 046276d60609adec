package relay

import (
	"errors"
	"testing"

	"chess-relay/internal/rules"
)

// stubEngine counts applications so tests can assert non-mutation.
type stubEngine struct {
	turn    rules.Side
	applied int
	err     error
	panics  bool
}

func (e *stubEngine) CurrentTurn() rules.Side { return e.turn }

func (e *stubEngine) ApplyMove(in rules.MoveInput) (rules.Move, error) {
	if e.panics {
		panic("boom")
	}
	if e.err != nil {
		return rules.Move{}, e.err
	}
	e.applied++
	side := e.turn
	e.turn = e.turn.Opponent()
	return rules.Move{From: in.From, To: in.To, Side: side}, nil
}

func (e *stubEngine) Serialize() string                { return "pos" }
func (e *stubEngine) Load(string) error                { return nil }
func (e *stubEngine) Outcome() (rules.Outcome, string) { return rules.NoOutcome, "" }
func (e *stubEngine) Ply() int                         { return e.applied }

func newGateWithSeats(engine rules.Engine) *Gate {
	reg := NewRegistry()
	reg.AssignSeat("white")
	reg.AssignSeat("black")
	return NewGate(reg, engine)
}

func TestGateRejectsOutOfTurn(t *testing.T) {
	eng := &stubEngine{turn: rules.White}
	g := newGateWithSeats(eng)

	for _, id := range []ConnID{"black", "observer", ""} {
		_, err := g.Submit(id, rules.MoveInput{From: "e2", To: "e4"})
		if !errors.Is(err, ErrNotYourTurn) {
			t.Fatalf("%q: expected not your turn, got %v", id, err)
		}
	}
	if eng.applied != 0 {
		t.Fatalf("engine mutated by out-of-turn moves")
	}
}

func TestGateAcceptsSeatedMover(t *testing.T) {
	eng := &stubEngine{turn: rules.White}
	g := newGateWithSeats(eng)

	acc, err := g.Submit("white", rules.MoveInput{From: "e2", To: "e4"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if acc.Move.From != "e2" || acc.Position != "pos" {
		t.Fatalf("unexpected accepted %+v", acc)
	}
	if _, err := g.Submit("white", rules.MoveInput{From: "d2", To: "d4"}); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("expected white to be blocked after moving, got %v", err)
	}
	if _, err := g.Submit("black", rules.MoveInput{From: "e7", To: "e5"}); err != nil {
		t.Fatalf("black submit: %v", err)
	}
}

func TestGateMalformedInputIsIllegal(t *testing.T) {
	eng := &stubEngine{turn: rules.White}
	g := newGateWithSeats(eng)

	_, err := g.Submit("white", rules.MoveInput{From: "e2"})
	if !errors.Is(err, ErrIllegalMove) || !errors.Is(err, rules.ErrMalformedMove) {
		t.Fatalf("expected malformed illegal move, got %v", err)
	}
	if eng.applied != 0 {
		t.Fatal("malformed move reached engine")
	}
}

func TestGateWrapsEngineErrors(t *testing.T) {
	eng := &stubEngine{turn: rules.White, err: errors.New("no such move")}
	g := newGateWithSeats(eng)

	_, err := g.Submit("white", rules.MoveInput{From: "e2", To: "e5"})
	if !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("expected illegal move, got %v", err)
	}
}

func TestGateSurvivesEnginePanic(t *testing.T) {
	eng := &stubEngine{turn: rules.White, panics: true}
	g := newGateWithSeats(eng)

	_, err := g.Submit("white", rules.MoveInput{From: "e2", To: "e4"})
	if !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("expected illegal move after panic, got %v", err)
	}
}
