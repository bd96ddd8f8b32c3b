/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package ranking

import (
	"errors"
	"fmt"
)

// Rejections reported to the client that caused them.
var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrGameInProgress      = errors.New("game already started")
	ErrNotHost             = errors.New("only the host can do that")
	ErrInsufficientPlayers = errors.New("not enough players")
	ErrNotInRoom           = errors.New("not in a room")
	ErrTopicNotFound       = errors.New("topic does not exist")
	ErrInvalidPayload      = errors.New("invalid payload")
	ErrUnknownEvent        = errors.New("unknown event")
)

// Recovery conditions. These are logged and never reach a client.
var (
	ErrStaleSpotlight    = errors.New("spotlight left before their round")
	ErrNoSpotlightAnswer = errors.New("spotlight never submitted a ranking")
)

// MinPlayersError rejects a start with fewer than Min players.
type MinPlayersError struct {
	Min int
}

func (e MinPlayersError) Error() string {
	return fmt.Sprintf("%v: need at least %d", ErrInsufficientPlayers, e.Min)
}

func (e MinPlayersError) Unwrap() error {
	return ErrInsufficientPlayers
}

var userText = []struct {
	err  error
	text string
}{
	{ErrRoomNotFound, "Room not found!"},
	{ErrGameInProgress, "Game already started!"},
	{ErrNotHost, "Only the host can do that."},
	{ErrNotInRoom, "You are not in a room."},
	{ErrTopicNotFound, "That topic does not exist."},
}

// UserMessage is the errorMsg text shown for err. Errors without a
// friendlier wording are sent as-is.
func UserMessage(err error) string {
	var minPlayers MinPlayersError
	if errors.As(err, &minPlayers) {
		return fmt.Sprintf("Not enough players: need at least %d to start!", minPlayers.Min)
	}

	for _, m := range userText {
		if errors.Is(err, m.err) {
			return m.text
		}
	}

	return err.Error()
}
