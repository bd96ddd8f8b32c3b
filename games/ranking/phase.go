/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package ranking

// Phase is the state of a room's round state machine.
type Phase string

const (
	PhaseLobby     Phase = "LOBBY"     // waiting for the host to start
	PhaseSelection Phase = "SELECTION" // spotlight is choosing a topic
	PhasePlaying   Phase = "PLAYING"   // countdown running, answers open
	PhaseResults   Phase = "RESULTS"   // round scored, waiting on the host
	PhaseGameOver  Phase = "GAMEOVER"  // final leaderboard shown
)

func (p Phase) String() string {
	return string(p)
}
