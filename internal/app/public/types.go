package public

import "time"

type MoveItem struct {
	Ply       int       `json:"ply"`
	Side      string    `json:"side"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Promotion string    `json:"promotion,omitempty"`
	SAN       string    `json:"san"`
	Position  string    `json:"position"`
	PlayedAt  time.Time `json:"played_at"`
}

type MovesResponse struct {
	GameID        string     `json:"game_id"`
	StartPosition string     `json:"start_position"`
	Items         []MoveItem `json:"items"`
	AfterPly      int        `json:"after_ply"`
	Limit         int        `json:"limit"`
}
