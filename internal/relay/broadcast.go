package relay

import (
	"chess-relay/internal/rules"

	"github.com/rs/zerolog/log"
)

// Peer is the transport's handle on one connection. Send must not block;
// delivery is best effort.
type Peer interface {
	ID() ConnID
	Send(msg any) error
}

// Broadcaster delivers relay messages to connected peers. Each recipient is
// sent to independently: one failing peer never stops the rest of a fan-out.
type Broadcaster struct {
	peers map[ConnID]Peer
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{peers: map[ConnID]Peer{}}
}

func (b *Broadcaster) Add(p Peer) {
	b.peers[p.ID()] = p
}

func (b *Broadcaster) Remove(id ConnID) {
	delete(b.peers, id)
}

func (b *Broadcaster) Len() int {
	return len(b.peers)
}

// OnAccepted sends the move to everyone, then the resulting position to everyone.
func (b *Broadcaster) OnAccepted(acc Accepted) {
	b.all(moveMessage(acc.Move))
	b.all(boardState(acc.Position))
}

func (b *Broadcaster) OnRejected(id ConnID, in rules.MoveInput, reason error) {
	b.one(id, invalidMove(in, reason))
}

func (b *Broadcaster) OnRoleAssigned(id ConnID, role Role) {
	b.one(id, roleMessage(role))
}

func (b *Broadcaster) OnPosition(position string) {
	b.all(boardState(position))
}

func (b *Broadcaster) OnSeatVacated(side rules.Side) {
	b.all(SeatVacated{Type: TypeSeatVacated, ProtocolVersion: ProtocolVersion, Side: side})
}

func (b *Broadcaster) one(id ConnID, msg any) {
	if p, ok := b.peers[id]; ok {
		deliver(p, msg)
	}
}

func (b *Broadcaster) all(msg any) {
	for _, p := range b.peers {
		deliver(p, msg)
	}
}

func deliver(p Peer, msg any) {
	if err := p.Send(msg); err != nil {
		metricSendFailuresTotal.Add(1)
		log.Warn().Err(err).Str("conn_id", string(p.ID())).Msg("send_dropped")
	}
}
