/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package ranking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_CreateAndLookup(t *testing.T) {
	reg := NewRegistry(4, NewShuffler(Seed(1)))

	room := reg.Create(Settings{RoundCount: 5, TimerSeconds: 60}, time.Now())
	require.Len(t, room.Code, 4)
	assert.Regexp(t, "^[A-Z]{4}$", room.Code)
	assert.Equal(t, PhaseLobby, room.phase)

	got, ok := reg.Lookup(" " + room.Code + " ")
	require.True(t, ok)
	assert.Same(t, room, got)

	lower := []byte(room.Code)
	for i := range lower {
		lower[i] += 'a' - 'A'
	}
	got, ok = reg.Lookup(string(lower))
	require.True(t, ok)
	assert.Same(t, room, got)

	reg.Delete(string(lower))
	_, ok = reg.Lookup(room.Code)
	assert.False(t, ok)
	assert.Equal(t, 0, reg.Len())
}

func TestRegistry_CodesStayUnique(t *testing.T) {
	reg := NewRegistry(1, NewShuffler(Seed(7)))

	seen := make(map[string]bool)
	longer := 0
	for range 27 {
		room := reg.Create(Settings{}, time.Now())
		require.False(t, seen[room.Code], "duplicate code %s", room.Code)
		seen[room.Code] = true

		if len(room.Code) > 1 {
			longer++
		}
	}

	assert.Equal(t, 27, reg.Len())
	assert.GreaterOrEqual(t, longer, 1)
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "ABCD", NormalizeCode("  abCd "))
}
