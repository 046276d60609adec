package ws

import "chess-relay/internal/rules"

// MoveRequest is the client->server move frame.
type MoveRequest struct {
	Type      string `json:"type"`
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

func (m MoveRequest) Input() rules.MoveInput {
	return rules.MoveInput{From: m.From, To: m.To, Promotion: m.Promotion}
}
