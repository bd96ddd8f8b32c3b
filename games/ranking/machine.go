/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package ranking

import "fmt"

func (e *Engine) handle(connID string, msg Inbound) {
	switch m := msg.(type) {
	case CreateRoom:
		e.createRoom(connID, m)
		return
	case JoinRoom:
		e.joinRoom(connID, m)
		return
	}

	room, ok := e.roomOf(connID)
	if !ok {
		e.fail(connID, ErrNotInRoom)
		return
	}
	room.lastActive = e.now()

	switch m := msg.(type) {
	case StartGame:
		e.startGame(connID, room, m)
	case SubmitTopic:
		e.submitTopic(connID, room, m)
	case SubmitRank:
		e.submitRank(connID, room, m)
	case NextRound:
		e.nextRound(connID, room)
	case PlayAgain:
		e.playAgain(connID, room)
	case EndRoom:
		e.endRoom(connID, room)
	}
}

func (e *Engine) createRoom(connID string, m CreateRoom) {
	e.leave(connID)

	room := e.registry.Create(e.opts.Defaults, e.now())
	room.hostID = connID

	e.log.Info().Str("room", room.Code).Str("conn", connID).Msg("room created")

	e.join(connID, room, m.PlayerName)
}

func (e *Engine) joinRoom(connID string, m JoinRoom) {
	room, ok := e.registry.Lookup(m.RoomCode)
	if !ok {
		e.fail(connID, ErrRoomNotFound)
		return
	}

	if e.sessions[connID] == room.Code {
		return
	}

	if e.opts.LockStarted && room.phase != PhaseLobby {
		e.fail(connID, ErrGameInProgress)
		return
	}

	e.leave(connID)
	e.join(connID, room, m.PlayerName)
}

func (e *Engine) join(connID string, room *Room, name string) {
	room.addPlayer(connID, name)
	room.lastActive = e.now()

	e.sessions[connID] = room.Code
	e.transport.Tag(connID, room.Code)

	e.log.Debug().Str("room", room.Code).Str("conn", connID).Str("name", name).Msg("player joined")

	e.broadcastState(room)
}

// leave removes connID from its room, destroying the room when it empties
// and migrating the host role when needed.
func (e *Engine) leave(connID string) {
	code, ok := e.sessions[connID]
	if !ok {
		return
	}

	delete(e.sessions, connID)
	e.transport.Untag(connID)

	room, ok := e.registry.Lookup(code)
	if !ok {
		return
	}

	wasHost := room.removePlayer(connID)

	if len(room.players) == 0 {
		e.cancelTimer(room)
		e.registry.Delete(code)
		e.log.Info().Str("room", code).Msg("room emptied and removed")
		return
	}

	if wasHost {
		host := room.migrateHost()
		e.log.Info().Str("room", code).Str("host", host.ID).Msg("host migrated")
	}

	// A spotlight leaving before choosing a topic hands the round to the next one.
	if connID == room.spotlightID && room.phase == PhaseSelection {
		e.log.Info().Str("room", code).Str("spotlight", connID).Int("round", room.currentRound).
			Err(ErrStaleSpotlight).Msg("restarting round")

		room.currentRound--
		e.startRound(room)
		return
	}

	e.broadcastState(room)
}

func (e *Engine) startGame(connID string, room *Room, m StartGame) {
	if connID != room.hostID {
		e.fail(connID, ErrNotHost)
		return
	}

	if room.phase != PhaseLobby {
		e.fail(connID, ErrGameInProgress)
		return
	}

	if len(room.players) < e.opts.MinPlayers {
		e.fail(connID, MinPlayersError{Min: e.opts.MinPlayers})
		return
	}

	room.settings = Settings{RoundCount: m.Rounds, TimerSeconds: m.Timer}
	room.currentRound = 0
	room.spotlightDeck = e.freshDeck(room)

	e.log.Info().Str("room", room.Code).Int("rounds", m.Rounds).Int("timer", m.Timer).Int("players", len(room.players)).Msg("game started")

	e.startRound(room)
}

func (e *Engine) freshDeck(room *Room) []string {
	ids := room.playerIDs()
	e.shuffler.Shuffle(ids)

	return ids
}

// startRound enters SELECTION with the next live spotlight, or ends the game
// once every round has been played.
func (e *Engine) startRound(room *Room) {
	e.cancelTimer(room)

	for {
		if room.currentRound >= room.settings.RoundCount {
			e.endGame(room)
			return
		}

		room.currentRound++
		room.answers = make(map[string][]string)
		room.currentQuestion = nil

		if len(room.spotlightDeck) == 0 {
			room.spotlightDeck = e.freshDeck(room)
		}

		last := len(room.spotlightDeck) - 1
		id := room.spotlightDeck[last]
		room.spotlightDeck = room.spotlightDeck[:last]

		if _, ok := room.players[id]; !ok {
			room.currentRound--
			e.log.Debug().Str("room", room.Code).Str("spotlight", id).Err(ErrStaleSpotlight).Msg("skipping deck entry")
			continue
		}

		room.spotlightID = id
		break
	}

	room.phase = PhaseSelection
	spotlight, _ := room.spotlight()

	e.transport.Broadcast(room.Code, EventGoToSelection, SelectionPayload{
		SpotlightID:   spotlight.ID,
		SpotlightName: spotlight.Name,
		Topics:        e.catalog.Sample(e.opts.TopicChoices, e.shuffler),
		RoundInfo:     fmt.Sprintf("Round %d / %d", room.currentRound, room.settings.RoundCount),
	})
	e.broadcastState(room)
}

func (e *Engine) submitTopic(connID string, room *Room, m SubmitTopic) {
	if connID != room.spotlightID || room.phase != PhaseSelection {
		e.log.Debug().Str("room", room.Code).Str("conn", connID).Msg("ignoring submitTopic")
		return
	}

	var question Question
	if m.Premade() {
		topic, ok := e.catalog.Lookup(m.ID)
		if !ok {
			e.fail(connID, ErrTopicNotFound)
			return
		}
		question = topic.question()
	} else {
		question = Question{Prompt: m.Prompt, Options: m.Options}
	}

	spotlight, _ := room.spotlight()

	room.currentQuestion = &question
	room.phase = PhasePlaying
	room.answers = make(map[string][]string)

	e.transport.Broadcast(room.Code, EventRoundStart, RoundStartPayload{
		Question:      question,
		SpotlightName: spotlight.Name,
		Duration:      room.settings.TimerSeconds,
	})

	e.armTimer(room, room.settings.TimerSeconds)
}

// submitRank records the sender's ranking whatever the phase; only an open
// round can be completed by it.
func (e *Engine) submitRank(connID string, room *Room, m SubmitRank) {
	room.answers[connID] = m.Ranking

	if room.phase != PhasePlaying || len(room.answers) < len(room.players) {
		return
	}

	e.cancelTimer(room)
	e.scoreRound(room)
}

func (e *Engine) nextRound(connID string, room *Room) {
	if connID != room.hostID || room.phase != PhaseResults {
		e.log.Debug().Str("room", room.Code).Str("conn", connID).Msg("ignoring nextRound")
		return
	}

	e.startRound(room)
}

func (e *Engine) playAgain(connID string, room *Room) {
	if connID != room.hostID || room.phase != PhaseGameOver {
		e.log.Debug().Str("room", room.Code).Str("conn", connID).Msg("ignoring playAgain")
		return
	}

	e.cancelTimer(room)
	room.resetGame()

	e.log.Info().Str("room", room.Code).Msg("back to lobby")

	e.broadcastState(room)
}

func (e *Engine) endRoom(connID string, room *Room) {
	if connID != room.hostID {
		e.fail(connID, ErrNotHost)
		return
	}

	e.destroy(room, "The host ended the room.")
}

// destroy tears down a room that still has players.
func (e *Engine) destroy(room *Room, reason string) {
	e.cancelTimer(room)

	e.transport.Broadcast(room.Code, EventRoomDestroyed, DestroyedPayload{
		RoomCode: room.Code,
		Reason:   reason,
	})

	for id := range room.players {
		delete(e.sessions, id)
		e.transport.Untag(id)
	}

	e.registry.Delete(room.Code)

	e.log.Info().Str("room", room.Code).Str("reason", reason).Dur("age", e.now().Sub(room.createdAt)).Msg("room destroyed")
}
