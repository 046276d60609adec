package public

import (
	"context"
	"errors"
	"strings"

	"chess-relay/internal/relay"
	"chess-relay/internal/store"
)

// History reads journaled games.
type History interface {
	GetGame(ctx context.Context, id string) (store.Game, error)
	ListMoves(ctx context.Context, gameID string, afterPly, limit int) ([]store.MoveRecord, error)
}

type Service struct {
	relay   *relay.Relay
	history History
}

const movesMaxRows = 500

// NewService builds the public read service. history may be nil when no
// journal is configured.
func NewService(rl *relay.Relay, history History) *Service {
	return &Service{relay: rl, history: history}
}

func (s *Service) State() relay.Snapshot {
	return s.relay.Snapshot()
}

// CurrentGameID is used when callers ask for the "current" game.
func (s *Service) CurrentGameID() string {
	return s.relay.GameID()
}

func (s *Service) GameMoves(ctx context.Context, gameID string, afterPly, limit int) (*MovesResponse, error) {
	if s.history == nil {
		return nil, ErrJournalDisabled
	}
	gameID = strings.TrimSpace(gameID)
	if gameID == "current" {
		gameID = s.relay.GameID()
	}
	if gameID == "" || afterPly < 0 || limit < 0 {
		return nil, ErrInvalidRequest
	}
	if limit == 0 {
		limit = 200
	}
	if limit > movesMaxRows {
		limit = movesMaxRows
	}
	game, err := s.history.GetGame(ctx, gameID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	rows, err := s.history.ListMoves(ctx, gameID, afterPly, limit)
	if err != nil {
		return nil, err
	}
	items := make([]MoveItem, 0, len(rows))
	for _, m := range rows {
		items = append(items, MoveItem{
			Ply:       m.Ply,
			Side:      m.Side,
			From:      m.From,
			To:        m.To,
			Promotion: m.Promotion,
			SAN:       m.SAN,
			Position:  m.Position,
			PlayedAt:  m.CreatedAt,
		})
	}
	return &MovesResponse{
		GameID:        game.ID,
		StartPosition: game.StartPosition,
		Items:         items,
		AfterPly:      afterPly,
		Limit:         limit,
	}, nil
}
