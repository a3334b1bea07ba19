package service

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/navikt/vrooms/internal/models"
)

// codeAlphabet matches the uppercase-only room codes participants type
// into the join form.
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// randomCode returns a random room code of the given length.
func randomCode(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(b)
}

// claimCode stores a fresh room unless its code is already taken. The
// existence check and the save run under the code's mutex, so two
// concurrent creates that draw the same code cannot overwrite each
// other; the loser reports a collision and the caller draws again.
func (s *RoomService) claimCode(ctx context.Context, room *models.Room) (bool, error) {
	lock := s.roomLock(room.Code)
	lock.Lock()
	defer lock.Unlock()

	exists, err := s.repo.RoomExists(ctx, room.Code)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	if err := s.repo.SaveRoom(ctx, room); err != nil {
		return false, fmt.Errorf("failed to save room %s: %w", room.Code, err)
	}

	return true, nil
}
