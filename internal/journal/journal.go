package journal

import (
	"context"
	"sync"
	"time"

	"chess-relay/internal/relay"
	"chess-relay/internal/store"

	"github.com/rs/zerolog/log"
)

// Writer is the subset of the store the journal appends to.
type Writer interface {
	CreateGame(ctx context.Context, g store.Game) error
	InsertMove(ctx context.Context, m store.MoveRecord) error
	InsertSeatEvent(ctx context.Context, e store.SeatEvent) error
}

var writeTimeout = 5 * time.Second

// Journal appends relay events to a Writer from a single worker goroutine.
// Observe never blocks: when the queue is full the event is dropped.
type Journal struct {
	w     Writer
	queue chan relay.Event
	done  chan struct{}

	mu     sync.Mutex
	closed bool
}

func New(w Writer, size int) *Journal {
	if size <= 0 {
		size = 256
	}
	j := &Journal{
		w:     w,
		queue: make(chan relay.Event, size),
		done:  make(chan struct{}),
	}
	go j.run()
	return j
}

func (j *Journal) Observe(ev relay.Event) {
	if !journaled(ev) {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return
	}
	select {
	case j.queue <- ev:
		metricJournalEnqueuedTotal.Add(1)
	default:
		metricJournalDroppedTotal.Add(1)
		log.Warn().Str("game_id", ev.GameID).Str("kind", string(ev.Kind)).Msg("journal_queue_full")
	}
}

// Close stops accepting events and waits for queued ones to be written or
// for ctx to end.
func (j *Journal) Close(ctx context.Context) error {
	j.mu.Lock()
	if !j.closed {
		j.closed = true
		close(j.queue)
	}
	j.mu.Unlock()

	select {
	case <-j.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (j *Journal) run() {
	defer close(j.done)
	for ev := range j.queue {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		err := j.write(ctx, ev)
		cancel()
		if err != nil {
			metricJournalWriteErrorsTotal.Add(1)
			log.Error().Err(err).Str("game_id", ev.GameID).Str("kind", string(ev.Kind)).Msg("journal_write_failed")
			continue
		}
		metricJournalWrittenTotal.Add(1)
	}
}

func journaled(ev relay.Event) bool {
	switch ev.Kind {
	case relay.EventGameStarted:
		return true
	case relay.EventMoveAccepted:
		return ev.Move != nil
	case relay.EventSeatAssigned, relay.EventSeatReleased:
		return ev.Role != relay.RoleObserver
	}
	return false
}

func (j *Journal) write(ctx context.Context, ev relay.Event) error {
	switch ev.Kind {
	case relay.EventGameStarted:
		return j.w.CreateGame(ctx, store.Game{ID: ev.GameID, StartPosition: ev.Position, CreatedAt: ev.At})
	case relay.EventMoveAccepted:
		return j.w.InsertMove(ctx, store.MoveRecord{
			GameID:    ev.GameID,
			Ply:       ev.Ply,
			Side:      string(ev.Move.Side),
			From:      ev.Move.From,
			To:        ev.Move.To,
			Promotion: ev.Move.Promotion,
			SAN:       ev.Move.SAN,
			Position:  ev.Position,
			CreatedAt: ev.At,
		})
	case relay.EventSeatAssigned:
		return j.w.InsertSeatEvent(ctx, store.SeatEvent{GameID: ev.GameID, Kind: store.SeatAssigned, Role: ev.Role.String(), CreatedAt: ev.At})
	case relay.EventSeatReleased:
		return j.w.InsertSeatEvent(ctx, store.SeatEvent{GameID: ev.GameID, Kind: store.SeatReleased, Role: ev.Role.String(), CreatedAt: ev.At})
	}
	return nil
}
