/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package ranking

import (
	"strings"
	"time"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// After this many collisions in a row the code grows by one letter.
	codeAttempts = 16
)

// Registry maps room codes to rooms.
type Registry struct {
	rooms      map[string]*Room
	codeLength int
	shuffler   *Shuffler
}

func NewRegistry(codeLength int, shuffler *Shuffler) *Registry {
	return &Registry{
		rooms:      make(map[string]*Room),
		codeLength: codeLength,
		shuffler:   shuffler,
	}
}

// Create registers an empty lobby under a fresh code.
func (r *Registry) Create(settings Settings, now time.Time) *Room {
	room := newRoom(r.newCode(), settings, now)
	r.rooms[room.Code] = room

	return room
}

// Lookup is case-insensitive and ignores surrounding space.
func (r *Registry) Lookup(code string) (*Room, bool) {
	room, ok := r.rooms[NormalizeCode(code)]

	return room, ok
}

func (r *Registry) Delete(code string) {
	delete(r.rooms, NormalizeCode(code))
}

func (r *Registry) Len() int {
	return len(r.rooms)
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (r *Registry) newCode() string {
	for attempt := 0; ; attempt++ {
		length := r.codeLength + attempt/codeAttempts

		var b strings.Builder
		for range length {
			b.WriteByte(codeAlphabet[r.shuffler.IntN(len(codeAlphabet))])
		}

		if _, exists := r.rooms[b.String()]; !exists {
			return b.String()
		}
	}
}
