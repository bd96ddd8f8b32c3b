/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package ranking

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"
)

// Transport delivers engine output to connections. Tagging a connection with a
// room code subscribes it to that room's broadcasts.
type Transport interface {
	Send(connID, event string, payload any)
	Broadcast(code, event string, payload any)
	Tag(connID, code string)
	Untag(connID string)
}

type Options struct {
	// MinPlayers needed before the host may start.
	MinPlayers int
	// LockStarted rejects joins once a game has left the lobby.
	LockStarted bool
	CodeLength  int
	// TopicChoices is how many catalog topics the spotlight chooses from.
	TopicChoices int
	Defaults     Settings
	// IdleTimeout destroys rooms with no activity for this long. Zero disables it.
	IdleTimeout time.Duration

	Catalog *Catalog
	Source  rand.Source
	Tickers TickerFactory
	Clock   func() time.Time
	Logger  zerolog.Logger
	// QueueSize bounds the number of pending turns.
	QueueSize int
}

// DefaultOptions mirrors the command line defaults.
func DefaultOptions() Options {
	return Options{
		MinPlayers:   3,
		LockStarted:  true,
		CodeLength:   4,
		TopicChoices: 3,
		Defaults:     Settings{RoundCount: 5, TimerSeconds: 60},
		IdleTimeout:  time.Hour,
		Logger:       zerolog.Nop(),
		QueueSize:    256,
	}
}

// Engine owns every room. All state changes happen inside Run, one turn at a time.
type Engine struct {
	opts      Options
	transport Transport
	registry  *Registry
	catalog   *Catalog
	shuffler  *Shuffler
	tickers   TickerFactory
	now       func() time.Time
	log       zerolog.Logger

	// connection id -> room code
	sessions map[string]string

	queue    chan any
	timerSeq uint64
}

type inboundTurn struct {
	connID string
	msg    Inbound
}

type disconnectTurn struct {
	connID string
}

func New(transport Transport, opts Options) *Engine {
	if opts.Catalog == nil {
		opts.Catalog = DefaultCatalog()
	}
	if opts.Tickers == nil {
		opts.Tickers = SystemTickers()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 256
	}

	shuffler := NewShuffler(opts.Source)

	return &Engine{
		opts:      opts,
		transport: transport,
		registry:  NewRegistry(opts.CodeLength, shuffler),
		catalog:   opts.Catalog,
		shuffler:  shuffler,
		tickers:   opts.Tickers,
		now:       opts.Clock,
		log:       opts.Logger,
		sessions:  make(map[string]string),
		queue:     make(chan any, opts.QueueSize),
	}
}

// Submit queues a client event for the loop.
func (e *Engine) Submit(ctx context.Context, connID string, msg Inbound) {
	e.enqueue(ctx, inboundTurn{connID: connID, msg: msg})
}

// Disconnect queues the departure of a connection.
func (e *Engine) Disconnect(ctx context.Context, connID string) {
	e.enqueue(ctx, disconnectTurn{connID: connID})
}

func (e *Engine) enqueue(ctx context.Context, turn any) {
	select {
	case e.queue <- turn:
	case <-ctx.Done():
	}
}

// Run processes turns until ctx is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	var reap <-chan time.Time
	if e.opts.IdleTimeout > 0 {
		t := e.tickers.Create(e.opts.IdleTimeout / 2)
		defer t.Stop()
		reap = t.Chan()
	}

	defer e.shutdown()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-reap:
			e.reap(now)
		case turn := <-e.queue:
			e.dispatch(turn)
		}
	}
}

func (e *Engine) dispatch(turn any) {
	switch t := turn.(type) {
	case inboundTurn:
		e.handle(t.connID, t.msg)
	case disconnectTurn:
		e.leave(t.connID)
	case tickTurn:
		e.tick(t.code, t.generation)
	}
}

func (e *Engine) shutdown() {
	for _, room := range e.registry.rooms {
		e.cancelTimer(room)
	}
}

// reap destroys rooms idle since before now minus the idle timeout.
func (e *Engine) reap(now time.Time) {
	cutoff := now.Add(-e.opts.IdleTimeout)

	for _, room := range e.registry.rooms {
		if room.lastActive.Before(cutoff) {
			e.destroy(room, "Room closed after inactivity.")
		}
	}
}

func (e *Engine) fail(connID string, err error) {
	e.log.Debug().Str("conn", connID).Err(err).Msg("rejected event")
	e.transport.Send(connID, EventErrorMsg, UserMessage(err))
}

func (e *Engine) broadcastState(room *Room) {
	e.transport.Broadcast(room.Code, EventUpdateState, room.snapshot())
}

func (e *Engine) roomOf(connID string) (*Room, bool) {
	code, ok := e.sessions[connID]
	if !ok {
		return nil, false
	}

	return e.registry.Lookup(code)
}
