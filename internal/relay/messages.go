package relay

import "chess-relay/internal/rules"

const ProtocolVersion = "1.0"

const (
	TypePlayerRole    = "playerRole"
	TypeSpectatorRole = "spectatorRole"
	TypeMove          = "move"
	TypeBoardState    = "boardState"
	TypeInvalidMove   = "invalidMove"
	TypeSeatVacated   = "seatVacated"
)

type PlayerRole struct {
	Type            string     `json:"type"`
	ProtocolVersion string     `json:"protocol_version"`
	Side            rules.Side `json:"side"`
}

type SpectatorRole struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
}

type MoveMessage struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	From            string `json:"from"`
	To              string `json:"to"`
	Promotion       string `json:"promotion,omitempty"`
	SAN             string `json:"san,omitempty"`
}

type BoardState struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Position        string `json:"position"`
}

// InvalidMove echoes the submitted move unmodified so a client can match it
// against its pending submissions.
type InvalidMove struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	From            string `json:"from"`
	To              string `json:"to"`
	Promotion       string `json:"promotion,omitempty"`
	Reason          string `json:"reason,omitempty"`
}

type SeatVacated struct {
	Type            string     `json:"type"`
	ProtocolVersion string     `json:"protocol_version"`
	Side            rules.Side `json:"side"`
}

func roleMessage(role Role) any {
	if side, ok := role.Side(); ok {
		return PlayerRole{Type: TypePlayerRole, ProtocolVersion: ProtocolVersion, Side: side}
	}
	return SpectatorRole{Type: TypeSpectatorRole, ProtocolVersion: ProtocolVersion}
}

func moveMessage(mv rules.Move) MoveMessage {
	return MoveMessage{
		Type:            TypeMove,
		ProtocolVersion: ProtocolVersion,
		From:            mv.From,
		To:              mv.To,
		Promotion:       mv.Promotion,
		SAN:             mv.SAN,
	}
}

func boardState(position string) BoardState {
	return BoardState{Type: TypeBoardState, ProtocolVersion: ProtocolVersion, Position: position}
}

func invalidMove(in rules.MoveInput, reason error) InvalidMove {
	return InvalidMove{
		Type:            TypeInvalidMove,
		ProtocolVersion: ProtocolVersion,
		From:            in.From,
		To:              in.To,
		Promotion:       in.Promotion,
		Reason:          ReasonCode(reason),
	}
}
