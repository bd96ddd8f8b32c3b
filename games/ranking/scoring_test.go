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

func TestScore(t *testing.T) {
	truth := []string{"A", "B", "C", "D", "E"}

	tests := []struct {
		name  string
		guess []string
		want  int
	}{
		{"exact", []string{"A", "B", "C", "D", "E"}, 50},
		{"first two swapped", []string{"B", "A", "C", "D", "E"}, 30},
		{"reversed", []string{"E", "D", "C", "B", "A"}, 10},
		{"nothing", nil, 0},
		{"short guess", []string{"A", "B"}, 20},
		{"long guess", []string{"A", "B", "C", "D", "E", "F"}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(truth, tt.guess))
		})
	}
}

func TestScore_ShortTruth(t *testing.T) {
	assert.Equal(t, 10, Score([]string{"A"}, []string{"A", "B", "C"}))
}

func statsRoom() *Room {
	r := newRoom("ABCD", Settings{RoundCount: 3, TimerSeconds: 30}, time.Now())
	r.hostID = "a"
	r.addPlayer("a", "Alice")
	r.addPlayer("b", "Bob")
	r.addPlayer("c", "Cara")

	return r
}

func TestMatchStats_NoneWhenNobodyScored(t *testing.T) {
	r := statsRoom()
	r.recordMatch("b", "a", 0)

	soulmates, strangers := r.matchStats()
	assert.Equal(t, nonePair, soulmates)
	assert.Equal(t, nonePair, strangers)
}

func TestMatchStats_BestAndWorst(t *testing.T) {
	r := statsRoom()
	r.recordMatch("b", "a", 30)
	r.recordMatch("b", "a", 20)
	r.recordMatch("c", "a", 10)
	r.recordMatch("a", "c", 40)
	r.recordMatch("a", "b", 0)

	soulmates, strangers := r.matchStats()

	assert.Equal(t, "Bob & Alice", soulmates.Names)
	assert.Equal(t, 50, soulmates.Score)
	assert.Equal(t, "b", soulmates.GuesserID)
	assert.Equal(t, "a", soulmates.SpotlightID)

	assert.Equal(t, "Cara & Alice", strangers.Names)
	assert.Equal(t, 10, strangers.Score)
}

func TestMatchStats_FirstPairWinsTies(t *testing.T) {
	r := statsRoom()
	r.recordMatch("a", "b", 20)
	r.recordMatch("c", "b", 20)

	soulmates, strangers := r.matchStats()
	assert.Equal(t, "Alice & Bob", soulmates.Names)
	assert.Equal(t, "Alice & Bob", strangers.Names)
}

func TestMatchStats_IgnoresDepartedPlayers(t *testing.T) {
	r := statsRoom()
	r.recordMatch("b", "a", 50)
	r.recordMatch("c", "b", 10)
	r.removePlayer("a")

	soulmates, strangers := r.matchStats()
	assert.Equal(t, "Cara & Bob", soulmates.Names)
	assert.Equal(t, "Cara & Bob", strangers.Names)
}

func TestLeaderboard_StableOnTies(t *testing.T) {
	r := statsRoom()
	r.players["a"].Score = 10
	r.players["b"].Score = 30
	r.players["c"].Score = 10

	board := r.leaderboard()
	require.Len(t, board, 3)
	assert.Equal(t, "b", board[0].ID)
	assert.Equal(t, "a", board[1].ID)
	assert.Equal(t, "c", board[2].ID)
}
