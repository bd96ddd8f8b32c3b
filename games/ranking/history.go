/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package ranking

import (
	"cmp"
	"slices"

	"github.com/samber/lo"
)

var nonePair = Pair{Names: "None", Score: 0}

// leaderboard sorts players by score, highest first; ties keep join order.
func (r *Room) leaderboard() []Player {
	board := lo.Map(r.orderedPlayers(), func(p *Player, _ int) Player { return *p })
	slices.SortStableFunc(board, func(a, b Player) int {
		return cmp.Compare(b.Score, a.Score)
	})

	return board
}

// matchStats finds the best and worst (guesser, spotlight) pairs over the
// game. Only pairs with points, between players still present, qualify.
func (r *Room) matchStats() (soulmates, strangers Pair) {
	soulmates, strangers = nonePair, nonePair
	found := false

	players := r.orderedPlayers()
	for _, guesser := range players {
		row := r.matchHistory[guesser.ID]

		for _, target := range players {
			points, ok := row[target.ID]
			if !ok || points <= 0 {
				continue
			}

			pair := Pair{
				Names:       guesser.Name + " & " + target.Name,
				Score:       points,
				GuesserID:   guesser.ID,
				SpotlightID: target.ID,
			}

			if !found || points > soulmates.Score {
				soulmates = pair
			}
			if !found || points < strangers.Score {
				strangers = pair
			}
			found = true
		}
	}

	return soulmates, strangers
}

func (e *Engine) endGame(room *Room) {
	e.cancelTimer(room)

	room.phase = PhaseGameOver
	room.spotlightID = ""
	room.currentQuestion = nil

	board := room.leaderboard()
	soulmates, strangers := room.matchStats()

	e.log.Info().Str("room", room.Code).Str("winner", board[0].Name).Int("score", board[0].Score).Msg("game over")

	e.transport.Broadcast(room.Code, EventGameOver, GameOverPayload{
		Winner:      board[0],
		Leaderboard: board,
		Soulmates:   soulmates,
		Strangers:   strangers,
	})
	e.broadcastState(room)
}
