/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package ranking

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Inbound event names.
const (
	EventCreateRoom  = "createRoom"
	EventJoinRoom    = "joinRoom"
	EventStartGame   = "startGame"
	EventSubmitTopic = "submitTopic"
	EventSubmitRank  = "submitRank"
	EventNextRound   = "nextRound"
	EventPlayAgain   = "playAgain"
	EventEndRoom     = "endRoom"
)

// Outbound event names.
const (
	EventUpdateState   = "updateState"
	EventGoToSelection = "goToSelection"
	EventRoundStart    = "roundStart"
	EventRoundOver     = "roundOver"
	EventGameOver      = "gameOver"
	EventRoomDestroyed = "roomDestroyed"
	EventErrorMsg      = "errorMsg"
)

// TopicPremade marks a submitTopic that refers to a catalog entry.
const TopicPremade = "PREMADE"

// Inbound is a validated client event.
type Inbound interface {
	Event() string
}

type CreateRoom struct {
	PlayerName string `json:"playerName" validate:"required,max=24"`
}

type JoinRoom struct {
	PlayerName string `json:"playerName" validate:"required,max=24"`
	RoomCode   string `json:"roomCode" validate:"required,alpha,max=12"`
}

type StartGame struct {
	Rounds int `json:"rounds" validate:"min=1,max=20"`
	Timer  int `json:"timer" validate:"min=1,max=600"`
}

// SubmitTopic is either {type: PREMADE, id} or {prompt, options}.
type SubmitTopic struct {
	Type    string   `json:"type"`
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

type premadeTopic struct {
	ID string `validate:"required,max=64"`
}

type customTopic struct {
	Prompt  string   `validate:"required,max=200"`
	Options []string `validate:"min=2,max=10,unique,dive,required,max=100"`
}

type SubmitRank struct {
	Ranking []string `json:"ranking" validate:"max=10,dive,max=100"`
}

type NextRound struct{}

type PlayAgain struct{}

type EndRoom struct{}

func (CreateRoom) Event() string  { return EventCreateRoom }
func (JoinRoom) Event() string    { return EventJoinRoom }
func (StartGame) Event() string   { return EventStartGame }
func (SubmitTopic) Event() string { return EventSubmitTopic }
func (SubmitRank) Event() string  { return EventSubmitRank }
func (NextRound) Event() string   { return EventNextRound }
func (PlayAgain) Event() string   { return EventPlayAgain }
func (EndRoom) Event() string     { return EventEndRoom }

// Premade reports whether the topic refers to a catalog entry.
func (s SubmitTopic) Premade() bool {
	return s.Type == TopicPremade
}

var (
	validate       = validator.New()
	errMissingData = errors.New("missing data")
)

// ParseInbound decodes and validates the payload of a named client event.
func ParseInbound(event string, data json.RawMessage) (Inbound, error) {
	switch event {
	case EventCreateRoom:
		var msg CreateRoom
		if isJSONString(data) {
			if err := json.Unmarshal(data, &msg.PlayerName); err != nil {
				return nil, invalid(event, err)
			}
		} else if err := decode(data, &msg); err != nil {
			return nil, invalid(event, err)
		}
		msg.PlayerName = cleanName(msg.PlayerName)

		return check(event, msg)

	case EventJoinRoom:
		var msg JoinRoom
		if err := decode(data, &msg); err != nil {
			return nil, invalid(event, err)
		}
		msg.PlayerName = cleanName(msg.PlayerName)
		msg.RoomCode = NormalizeCode(msg.RoomCode)

		return check(event, msg)

	case EventStartGame:
		var msg StartGame
		if err := decode(data, &msg); err != nil {
			return nil, invalid(event, err)
		}

		return check(event, msg)

	case EventSubmitTopic:
		var msg SubmitTopic
		if err := decode(data, &msg); err != nil {
			return nil, invalid(event, err)
		}

		var err error
		if msg.Premade() {
			err = validate.Struct(premadeTopic{ID: msg.ID})
		} else {
			err = validate.Struct(customTopic{Prompt: msg.Prompt, Options: msg.Options})
		}
		if err != nil {
			return nil, invalid(event, err)
		}

		return msg, nil

	case EventSubmitRank:
		var msg SubmitRank
		if err := decode(data, &msg.Ranking); err != nil {
			return nil, invalid(event, err)
		}

		return check(event, msg)

	case EventNextRound:
		return NextRound{}, nil

	case EventPlayAgain:
		return PlayAgain{}, nil

	case EventEndRoom:
		return EndRoom{}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, event)
}

func decode(data json.RawMessage, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return errMissingData
	}

	return json.Unmarshal(data, v)
}

func isJSONString(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)

	return len(trimmed) > 0 && trimmed[0] == '"'
}

func check(event string, msg Inbound) (Inbound, error) {
	if err := validate.Struct(msg); err != nil {
		return nil, invalid(event, err)
	}

	return msg, nil
}

func invalid(event string, err error) error {
	return fmt.Errorf("%w for %s: %v", ErrInvalidPayload, event, err)
}

// StatePayload is the public room snapshot sent as updateState.
type StatePayload struct {
	RoomCode    string   `json:"roomCode"`
	Players     []Player `json:"players"`
	HostID      string   `json:"hostId"`
	Phase       Phase    `json:"phase"`
	Round       int      `json:"round"`
	RoundCount  int      `json:"roundCount"`
	SpotlightID string   `json:"spotlightId,omitempty"`
}

type SelectionPayload struct {
	SpotlightID   string  `json:"spotlightId"`
	SpotlightName string  `json:"spotlightName"`
	Topics        []Topic `json:"topics"`
	RoundInfo     string  `json:"roundInfo"`
}

type RoundStartPayload struct {
	Question      Question `json:"question"`
	SpotlightName string   `json:"spotlightName"`
	Duration      int      `json:"duration"`
}

type RoundResult struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Points int      `json:"points"`
	Rank   []string `json:"rank"`
}

type RoundOverPayload struct {
	Results       []RoundResult `json:"results"`
	CorrectOrder  []string      `json:"correctOrder"`
	SpotlightName string        `json:"spotlightName"`
}

// Pair is a (guesser, spotlight) match-history statistic.
type Pair struct {
	Names       string `json:"names"`
	Score       int    `json:"score"`
	GuesserID   string `json:"guesserId,omitempty"`
	SpotlightID string `json:"spotlightId,omitempty"`
}

type GameOverPayload struct {
	Winner      Player   `json:"winner"`
	Leaderboard []Player `json:"leaderboard"`
	Soulmates   Pair     `json:"soulmates"`
	Strangers   Pair     `json:"strangers"`
}

type DestroyedPayload struct {
	RoomCode string `json:"roomCode"`
	Reason   string `json:"reason"`
}
