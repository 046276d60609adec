package relay

import (
	"errors"
	"sync"
	"time"

	"chess-relay/internal/ids"
	"chess-relay/internal/rules"

	"github.com/rs/zerolog/log"
)

type Options struct {
	// RejectOutOfTurn sends invalidMove to a connection that moves out of
	// turn. By default such submissions are dropped without a reply.
	RejectOutOfTurn bool
	// AnnounceVacancy broadcasts seatVacated when a seated player leaves.
	AnnounceVacancy bool
}

// Relay runs one game: it owns the seat registry and the engine and
// processes connect, disconnect and move events one at a time.
type Relay struct {
	mu sync.Mutex

	opts      Options
	gameID    string
	start     string
	engine    rules.Engine
	registry  *Registry
	gate      *Gate
	bc        *Broadcaster
	conns     map[ConnID]ConnState
	observers []Observer
}

func New(engine rules.Engine, opts Options) *Relay {
	reg := NewRegistry()
	return &Relay{
		opts:     opts,
		gameID:   ids.New(),
		start:    engine.Serialize(),
		engine:   engine,
		registry: reg,
		gate:     NewGate(reg, engine),
		bc:       NewBroadcaster(),
		conns:    map[ConnID]ConnState{},
	}
}

// AddObserver registers o and immediately reports the current game to it.
func (r *Relay) AddObserver(o Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, o)
	o.Observe(Event{
		Kind:     EventGameStarted,
		GameID:   r.gameID,
		Position: r.engine.Serialize(),
		Ply:      r.engine.Ply(),
		At:       time.Now(),
	})
}

func (r *Relay) GameID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gameID
}

// Connect seats p if a seat is free and tells p its role. Connecting an id
// that is already connected returns its current role without a new message.
func (r *Relay) Connect(p Peer) Role {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := p.ID()
	if st, ok := r.conns[id]; ok && st != StateDisconnected {
		return r.registry.RoleOf(id)
	}
	r.conns[id] = StateConnecting
	r.bc.Add(p)
	metricConnectionsActive.Add(1)
	metricConnectionsTotal.Add(1)

	role := r.registry.AssignSeat(id)
	if role == RoleObserver {
		r.conns[id] = StateObserver
	} else {
		r.conns[id] = StatePlayer
	}
	r.bc.OnRoleAssigned(id, role)
	log.Info().Str("game_id", r.gameID).Str("conn_id", string(id)).Str("role", role.String()).Msg("seat_assigned")
	r.emit(Event{Kind: EventSeatAssigned, ConnID: id, Role: role})
	return role
}

// Disconnect releases any seat held by id. Other connections are not told
// unless AnnounceVacancy is set. Unknown or repeated disconnects are no-ops.
func (r *Relay) Disconnect(id ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.conns[id]
	if !ok || st == StateDisconnected {
		return
	}
	delete(r.conns, id)
	r.bc.Remove(id)
	metricConnectionsActive.Add(-1)

	role := r.registry.Release(id)
	log.Info().Str("game_id", r.gameID).Str("conn_id", string(id)).Str("role", role.String()).Msg("seat_released")
	if role == RoleObserver {
		return
	}
	r.emit(Event{Kind: EventSeatReleased, ConnID: id, Role: role})
	if side, ok := role.Side(); ok && r.opts.AnnounceVacancy {
		r.bc.OnSeatVacated(side)
	}
}

// SubmitMove authorizes and applies a move from id. Accepted moves are
// broadcast to every connection; illegal moves are reported to id only;
// out-of-turn moves are dropped unless RejectOutOfTurn is set. The returned
// error is informational for the transport.
func (r *Relay) SubmitMove(id ConnID, in rules.MoveInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.conns[id]
	if !ok || st == StateDisconnected {
		return ErrUnknownConnection
	}
	acc, err := r.gate.Submit(id, in)
	switch {
	case errors.Is(err, ErrNotYourTurn):
		metricMovesDroppedTotal.Add(1)
		log.Debug().Str("game_id", r.gameID).Str("conn_id", string(id)).Msg("move_dropped")
		if r.opts.RejectOutOfTurn {
			r.bc.OnRejected(id, in, err)
		}
		return err
	case err != nil:
		metricMovesRejectedTotal.Add(1)
		log.Info().Err(err).Str("game_id", r.gameID).Str("conn_id", string(id)).
			Str("from", in.From).Str("to", in.To).Msg("move_rejected")
		r.bc.OnRejected(id, in, err)
		return err
	}

	metricMovesAcceptedTotal.Add(1)
	log.Info().Str("game_id", r.gameID).Str("conn_id", string(id)).
		Str("move", acc.Move.UCI()).Str("san", acc.Move.SAN).Int("ply", r.engine.Ply()).Msg("move_accepted")
	r.bc.OnAccepted(acc)
	mv := acc.Move
	r.emit(Event{Kind: EventMoveAccepted, ConnID: id, Role: r.registry.RoleOf(id), Move: &mv, Position: acc.Position})
	return nil
}

// Reset starts a new game from position, or from the relay's initial
// position when empty. Seats are kept; every connection gets the new board.
func (r *Relay) Reset(position string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if position == "" {
		position = r.start
	}
	if err := r.engine.Load(position); err != nil {
		return err
	}
	r.gameID = ids.New()
	log.Info().Str("game_id", r.gameID).Str("position", position).Msg("game_reset")
	r.bc.OnPosition(r.engine.Serialize())
	r.emit(Event{Kind: EventGameStarted})
	return nil
}

// StateOf returns the lifecycle state of id; unknown ids are Disconnected.
func (r *Relay) StateOf(id ConnID) ConnState {
	r.mu.Lock()
	defer r.mu.Unlock()
	if st, ok := r.conns[id]; ok {
		return st
	}
	return StateDisconnected
}

// RoleOf returns the current role of id, derived from seat occupancy.
func (r *Relay) RoleOf(id ConnID) Role {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registry.RoleOf(id)
}

// Snapshot is a public view of the relay. It never exposes connection ids.
type Snapshot struct {
	GameID      string        `json:"game_id"`
	Position    string        `json:"position"`
	Turn        rules.Side    `json:"turn"`
	Ply         int           `json:"ply"`
	Outcome     rules.Outcome `json:"outcome"`
	Method      string        `json:"method,omitempty"`
	WhiteSeated bool          `json:"white_seated"`
	BlackSeated bool          `json:"black_seated"`
	Connections int           `json:"connections"`
	Observers   int           `json:"observers"`
}

func (r *Relay) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	white, black := r.registry.Occupied()
	outcome, method := r.engine.Outcome()
	seated := 0
	if white {
		seated++
	}
	if black {
		seated++
	}
	return Snapshot{
		GameID:      r.gameID,
		Position:    r.engine.Serialize(),
		Turn:        r.engine.CurrentTurn(),
		Ply:         r.engine.Ply(),
		Outcome:     outcome,
		Method:      method,
		WhiteSeated: white,
		BlackSeated: black,
		Connections: r.bc.Len(),
		Observers:   r.bc.Len() - seated,
	}
}

// emit fills the common fields of ev and hands it to every observer.
func (r *Relay) emit(ev Event) {
	ev.GameID = r.gameID
	ev.At = time.Now()
	ev.Ply = r.engine.Ply()
	if ev.Position == "" {
		ev.Position = r.engine.Serialize()
	}
	for _, o := range r.observers {
		o.Observe(ev)
	}
}
