package store

import (
	"context"

	"chess-relay/internal/ids"

	"github.com/jackc/pgx/v5/pgtype"
)

func (s *Store) CreateGame(ctx context.Context, g Game) error {
	_, err := s.Pool.Exec(ctx,
		`INSERT INTO games (id, start_position, created_at) VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO NOTHING`,
		g.ID, g.StartPosition, timestamptzParam(g.CreatedAt))
	return err
}

func (s *Store) GetGame(ctx context.Context, id string) (Game, error) {
	var (
		g  Game
		at pgtype.Timestamptz
	)
	err := s.Pool.QueryRow(ctx,
		`SELECT id, start_position, created_at FROM games WHERE id = $1`, id,
	).Scan(&g.ID, &g.StartPosition, &at)
	if err != nil {
		return Game{}, mapNotFound(err)
	}
	g.CreatedAt = at.Time
	return g, nil
}

func (s *Store) InsertMove(ctx context.Context, m MoveRecord) error {
	if m.ID == "" {
		m.ID = ids.New()
	}
	_, err := s.Pool.Exec(ctx,
		`INSERT INTO moves (id, game_id, ply, side, from_square, to_square, promotion, san, position, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.ID, m.GameID, m.Ply, m.Side, m.From, m.To, textParam(m.Promotion), m.SAN, m.Position,
		timestamptzParam(m.CreatedAt))
	return err
}

// ListMoves returns moves of a game with ply greater than afterPly, oldest first.
func (s *Store) ListMoves(ctx context.Context, gameID string, afterPly, limit int) ([]MoveRecord, error) {
	if limit <= 0 || limit > 500 {
		limit = 200
	}
	rows, err := s.Pool.Query(ctx,
		`SELECT id, game_id, ply, side, from_square, to_square, promotion, san, position, created_at
		 FROM moves WHERE game_id = $1 AND ply > $2 ORDER BY ply ASC LIMIT $3`,
		gameID, afterPly, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []MoveRecord{}
	for rows.Next() {
		var (
			m     MoveRecord
			promo pgtype.Text
			at    pgtype.Timestamptz
		)
		if err := rows.Scan(&m.ID, &m.GameID, &m.Ply, &m.Side, &m.From, &m.To, &promo, &m.SAN, &m.Position, &at); err != nil {
			return nil, err
		}
		m.Promotion = textVal(promo)
		m.CreatedAt = at.Time
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) InsertSeatEvent(ctx context.Context, e SeatEvent) error {
	if e.ID == "" {
		e.ID = ids.New()
	}
	_, err := s.Pool.Exec(ctx,
		`INSERT INTO seat_events (id, game_id, kind, role, created_at) VALUES ($1, $2, $3, $4, $5)`,
		e.ID, e.GameID, e.Kind, e.Role, timestamptzParam(e.CreatedAt))
	return err
}

func (s *Store) ListSeatEvents(ctx context.Context, gameID string) ([]SeatEvent, error) {
	rows, err := s.Pool.Query(ctx,
		`SELECT id, game_id, kind, role, created_at FROM seat_events
		 WHERE game_id = $1 ORDER BY created_at ASC, id ASC`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []SeatEvent{}
	for rows.Next() {
		var (
			e  SeatEvent
			at pgtype.Timestamptz
		)
		if err := rows.Scan(&e.ID, &e.GameID, &e.Kind, &e.Role, &at); err != nil {
			return nil, err
		}
		e.CreatedAt = at.Time
		out = append(out, e)
	}
	return out, rows.Err()
}
