package main

import (
	"encoding/json"
	"math/rand"

	"chess-relay/internal/relay"
	"chess-relay/internal/rules"
	"chess-relay/internal/ws"
)

// bot plays uniformly random legal moves for whichever side it is seated at.
type bot struct {
	rnd      *rand.Rand
	side     rules.Side
	seated   bool
	position string
}

func newBot(rnd *rand.Rand, position string) *bot {
	return &bot{rnd: rnd, position: position}
}

// handle consumes one server frame and returns the move to send, if any.
func (b *bot) handle(frame []byte) (*ws.MoveRequest, error) {
	var base struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(frame, &base); err != nil {
		return nil, err
	}
	switch base.Type {
	case relay.TypePlayerRole:
		var msg relay.PlayerRole
		if err := json.Unmarshal(frame, &msg); err != nil {
			return nil, err
		}
		b.side, b.seated = msg.Side, true
	case relay.TypeSpectatorRole:
		b.seated = false
		return nil, nil
	case relay.TypeBoardState:
		var msg relay.BoardState
		if err := json.Unmarshal(frame, &msg); err != nil {
			return nil, err
		}
		b.position = msg.Position
	case relay.TypeInvalidMove:
		// position is unchanged; pick again
	default:
		return nil, nil
	}
	return b.decide()
}

func (b *bot) decide() (*ws.MoveRequest, error) {
	if !b.seated {
		return nil, nil
	}
	eng, err := rules.NewChess(b.position)
	if err != nil {
		return nil, err
	}
	if eng.CurrentTurn() != b.side {
		return nil, nil
	}
	legal := eng.LegalMoves()
	if len(legal) == 0 {
		return nil, nil
	}
	pick := legal[b.rnd.Intn(len(legal))]
	return &ws.MoveRequest{Type: relay.TypeMove, From: pick.From, To: pick.To, Promotion: pick.Promotion}, nil
}
