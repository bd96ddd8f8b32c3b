/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package ranking

import (
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
)

// --- TickerFactory ---

type MockTickerFactory struct {
	mock.Mock
}

func (m *MockTickerFactory) Create(d time.Duration) Ticker {
	args := m.Called(d)
	return args.Get(0).(Ticker)
}

// fakeTicker only fires when the test sends on c.
type fakeTicker struct {
	c     chan time.Time
	mu    sync.Mutex
	stops int
}

func newFakeTicker() *fakeTicker {
	return &fakeTicker{c: make(chan time.Time)}
}

func (f *fakeTicker) Chan() <-chan time.Time {
	return f.c
}

func (f *fakeTicker) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
}

func (f *fakeTicker) stopCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stops
}

// --- Transport ---

type sent struct {
	to      string
	room    string
	event   string
	payload any
}

type recordingTransport struct {
	mu     sync.Mutex
	events []sent
	tags   map[string]string
}

func newRecordingTransport() *recordingTransport {
	return &recordingTransport{tags: make(map[string]string)}
}

func (r *recordingTransport) Send(connID, event string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, sent{to: connID, event: event, payload: payload})
}

func (r *recordingTransport) Broadcast(code, event string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, sent{room: code, event: event, payload: payload})
}

func (r *recordingTransport) Tag(connID, code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tags[connID] = code
}

func (r *recordingTransport) Untag(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tags, connID)
}

func (r *recordingTransport) all(event string) []sent {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []sent
	for _, s := range r.events {
		if s.event == event {
			out = append(out, s)
		}
	}
	return out
}

func (r *recordingTransport) count(event string) int {
	return len(r.all(event))
}

func (r *recordingTransport) last(event string) (sent, bool) {
	all := r.all(event)
	if len(all) == 0 {
		return sent{}, false
	}
	return all[len(all)-1], true
}

func (r *recordingTransport) tag(connID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	code, ok := r.tags[connID]
	return code, ok
}

func (r *recordingTransport) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
