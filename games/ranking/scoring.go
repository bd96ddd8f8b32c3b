/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package ranking

// PointsPerMatch is awarded for every position a guess gets right.
const PointsPerMatch = 10

// Score compares guess to truth position by position. Missing positions
// never match.
func Score(truth, guess []string) int {
	points := 0
	for i, item := range guess {
		if i < len(truth) && item == truth[i] {
			points += PointsPerMatch
		}
	}

	return points
}

// scoreRound settles the open round against the spotlight's ranking. Without
// one the round is thrown away and replayed with the next spotlight.
func (e *Engine) scoreRound(room *Room) {
	spotlight, live := room.spotlight()
	truth, answered := room.answers[room.spotlightID]

	if !live || !answered {
		e.log.Info().Str("room", room.Code).Str("spotlight", room.spotlightID).Int("round", room.currentRound).
			Err(ErrNoSpotlightAnswer).Msg("skipping round")

		room.currentRound--
		e.startRound(room)
		return
	}

	results := make([]RoundResult, 0, len(room.players)-1)

	for _, p := range room.orderedPlayers() {
		if p.ID == spotlight.ID {
			continue
		}

		guess := room.answers[p.ID]
		points := Score(truth, guess)

		p.Score += points
		room.recordMatch(p.ID, spotlight.ID, points)

		if guess == nil {
			guess = []string{}
		}

		results = append(results, RoundResult{
			ID:     p.ID,
			Name:   p.Name,
			Points: points,
			Rank:   guess,
		})
	}

	room.phase = PhaseResults

	e.log.Debug().Str("room", room.Code).Int("round", room.currentRound).Msg("round scored")

	e.transport.Broadcast(room.Code, EventRoundOver, RoundOverPayload{
		Results:       results,
		CorrectOrder:  truth,
		SpotlightName: spotlight.Name,
	})
}
