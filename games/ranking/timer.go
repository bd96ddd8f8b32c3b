/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package ranking

import "time"

// timerGrace is how many ticks past zero a round stays open, so answers sent
// in the last second still count.
const timerGrace = 2

// Ticker is the part of *time.Ticker the engine uses.
type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}

// TickerFactory creates tickers. Tests swap in one they control.
type TickerFactory interface {
	Create(d time.Duration) Ticker
}

type systemTicker struct {
	*time.Ticker
}

func (t systemTicker) Chan() <-chan time.Time {
	return t.C
}

type systemTickers struct{}

func (systemTickers) Create(d time.Duration) Ticker {
	return systemTicker{time.NewTicker(d)}
}

// SystemTickers returns a TickerFactory backed by time.NewTicker.
func SystemTickers() TickerFactory {
	return systemTickers{}
}

type tickTurn struct {
	code       string
	generation uint64
}

// roundTimer is a room's countdown. A room holds at most one; the generation
// lets the loop discard ticks that were already queued when it was cancelled.
type roundTimer struct {
	generation uint64
	remaining  int
	ticker     Ticker
	stop       chan struct{}
}

func (t *roundTimer) forward(code string, queue chan<- any) {
	for {
		select {
		case <-t.stop:
			return
		case <-t.ticker.Chan():
			select {
			case queue <- tickTurn{code: code, generation: t.generation}:
			case <-t.stop:
				return
			}
		}
	}
}

func (t *roundTimer) cancel() {
	t.ticker.Stop()
	close(t.stop)
}

// armTimer replaces any live timer on room with a fresh countdown of seconds.
func (e *Engine) armTimer(room *Room, seconds int) {
	e.cancelTimer(room)

	e.timerSeq++
	t := &roundTimer{
		generation: e.timerSeq,
		remaining:  seconds,
		ticker:     e.tickers.Create(time.Second),
		stop:       make(chan struct{}),
	}
	room.timer = t

	go t.forward(room.Code, e.queue)
}

func (e *Engine) cancelTimer(room *Room) {
	if room.timer == nil {
		return
	}

	room.timer.cancel()
	room.timer = nil
}

// tick runs one countdown step for the timer with the given generation.
func (e *Engine) tick(code string, generation uint64) {
	room, ok := e.registry.Lookup(code)
	if !ok {
		return
	}

	t := room.timer
	if t == nil || t.generation != generation {
		e.log.Debug().Str("room", code).Uint64("generation", generation).Msg("dropping stale tick")
		return
	}

	t.remaining--
	if t.remaining > -timerGrace {
		return
	}

	e.cancelTimer(room)

	if room.phase != PhasePlaying {
		return
	}

	e.log.Debug().Str("room", code).Int("round", room.currentRound).Msg("countdown expired")
	e.scoreRound(room)
}
