/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package ranking

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Settings are chosen by the host when starting a game.
type Settings struct {
	RoundCount   int `json:"rounds"`
	TimerSeconds int `json:"timer"`
}

type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Avatar string `json:"avatar"`
	IsHost bool   `json:"isHost"`

	seq uint64
}

// Room is one game session. It is only touched from the engine loop.
type Room struct {
	Code string

	players  map[string]*Player
	phase    Phase
	hostID   string
	settings Settings

	currentRound    int
	spotlightDeck   []string
	spotlightID     string
	currentQuestion *Question
	answers         map[string][]string

	// guesser -> spotlight -> points
	matchHistory map[string]map[string]int

	timer *roundTimer

	joinSeq    uint64
	createdAt  time.Time
	lastActive time.Time
}

func newRoom(code string, settings Settings, now time.Time) *Room {
	return &Room{
		Code:         code,
		players:      make(map[string]*Player),
		phase:        PhaseLobby,
		settings:     settings,
		answers:      make(map[string][]string),
		matchHistory: make(map[string]map[string]int),
		createdAt:    now,
		lastActive:   now,
	}
}

var upper = cases.Upper(language.Und)

// cleanName trims and NFC-normalises a display name.
func cleanName(name string) string {
	return strings.TrimSpace(norm.NFC.String(name))
}

func avatarFor(name string) string {
	for _, r := range name {
		return upper.String(string(r))
	}

	return "?"
}

func (r *Room) addPlayer(id, name string) *Player {
	r.joinSeq++
	p := &Player{
		ID:     id,
		Name:   name,
		Avatar: avatarFor(name),
		IsHost: id == r.hostID,
		seq:    r.joinSeq,
	}
	r.players[id] = p

	if _, ok := r.matchHistory[id]; !ok {
		r.matchHistory[id] = make(map[string]int)
	}

	return p
}

// removePlayer drops the player and any pending answer, reporting whether
// they were the host.
func (r *Room) removePlayer(id string) bool {
	if _, ok := r.players[id]; !ok {
		return false
	}

	delete(r.players, id)
	delete(r.answers, id)

	return id == r.hostID
}

// migrateHost hands the host role to the longest-present player.
func (r *Room) migrateHost() *Player {
	ordered := r.orderedPlayers()
	if len(ordered) == 0 {
		return nil
	}

	for _, p := range ordered {
		p.IsHost = false
	}

	host := ordered[0]
	host.IsHost = true
	r.hostID = host.ID

	return host
}

// orderedPlayers lists players in join order.
func (r *Room) orderedPlayers() []*Player {
	players := lo.Values(r.players)
	slices.SortFunc(players, func(a, b *Player) int {
		return cmp.Compare(a.seq, b.seq)
	})

	return players
}

func (r *Room) playerIDs() []string {
	return lo.Map(r.orderedPlayers(), func(p *Player, _ int) string { return p.ID })
}

func (r *Room) spotlight() (*Player, bool) {
	p, ok := r.players[r.spotlightID]

	return p, ok
}

func (r *Room) recordMatch(guesser, spotlight string, points int) {
	row, ok := r.matchHistory[guesser]
	if !ok {
		row = make(map[string]int)
		r.matchHistory[guesser] = row
	}

	row[spotlight] += points
}

// resetGame puts the room back in the lobby with the same players.
func (r *Room) resetGame() {
	r.phase = PhaseLobby
	r.currentRound = 0
	r.spotlightDeck = nil
	r.spotlightID = ""
	r.currentQuestion = nil
	r.answers = make(map[string][]string)
	r.matchHistory = make(map[string]map[string]int, len(r.players))

	for id, p := range r.players {
		p.Score = 0
		r.matchHistory[id] = make(map[string]int)
	}
}

func (r *Room) snapshot() StatePayload {
	return StatePayload{
		RoomCode:    r.Code,
		Players:     lo.Map(r.orderedPlayers(), func(p *Player, _ int) Player { return *p }),
		HostID:      r.hostID,
		Phase:       r.phase,
		Round:       r.currentRound,
		RoundCount:  r.settings.RoundCount,
		SpotlightID: r.spotlightID,
	}
}
