/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package ranking implements the rankmatch session engine.
//
// One player per round is the spotlight. They pick a topic (a prompt and a short
// list of options) and privately rank the options. Everyone else tries to guess
// that ranking before the countdown runs out, earning points for every position
// they get right. After the configured number of rounds the room sees a
// leaderboard, plus the pair of players who read each other best ("soulmates")
// and the pair who read each other worst ("strangers").
//
// How a game flows:
//   - A player creates a room and becomes its host; others join with the code
//   - The host picks a round count and a timer, then starts the game
//   - Each round pops a spotlight from a shuffled deck of players
//   - The spotlight submits a topic, which starts the countdown
//   - Scoring runs when everyone has answered or the countdown expires
//   - The host advances rounds until the game is over, then may play again
//
// All room state is owned by an Engine and mutated only from its Run loop, one
// event at a time. Timers feed ticks into the same loop.
package ranking
