package store

import "time"

type Game struct {
	ID            string    `json:"id"`
	StartPosition string    `json:"start_position"`
	CreatedAt     time.Time `json:"created_at"`
}

type MoveRecord struct {
	ID        string    `json:"id"`
	GameID    string    `json:"game_id"`
	Ply       int       `json:"ply"`
	Side      string    `json:"side"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Promotion string    `json:"promotion,omitempty"`
	SAN       string    `json:"san"`
	Position  string    `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

type SeatEvent struct {
	ID        string    `json:"id"`
	GameID    string    `json:"game_id"`
	Kind      string    `json:"kind"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	SeatAssigned = "assigned"
	SeatReleased = "released"
)
