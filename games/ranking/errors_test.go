/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package ranking

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "Room not found!", UserMessage(ErrRoomNotFound))
	assert.Equal(t, "Game already started!", UserMessage(fmt.Errorf("joining: %w", ErrGameInProgress)))
	assert.Equal(t, "You are not in a room.", UserMessage(ErrNotInRoom))
	assert.Equal(t, "Not enough players: need at least 4 to start!", UserMessage(MinPlayersError{Min: 4}))

	invalid := fmt.Errorf("%w for startGame: bad timer", ErrInvalidPayload)
	assert.Equal(t, invalid.Error(), UserMessage(invalid))
}

func TestMinPlayersError(t *testing.T) {
	err := error(MinPlayersError{Min: 3})

	assert.ErrorIs(t, err, ErrInsufficientPlayers)
	assert.Equal(t, "not enough players: need at least 3", err.Error())

	var target MinPlayersError
	assert.True(t, errors.As(fmt.Errorf("start: %w", err), &target))
	assert.Equal(t, 3, target.Min)
}
