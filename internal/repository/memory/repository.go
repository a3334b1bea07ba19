// Package memory provides an in-memory implementation of the repository interface
package memory

import (
	"context"
	"sync"

	"github.com/navikt/vrooms/internal/models"
	"github.com/navikt/vrooms/internal/repository"
)

// Repository implements the repository interface with in-memory storage
type Repository struct {
	rooms map[string]*models.Room
	mu    sync.RWMutex
}

// NewRepository creates a new in-memory repository
func NewRepository() *Repository {
	return &Repository{
		rooms: make(map[string]*models.Room),
	}
}

// SaveRoom stores a copy of the room record under its code
func (r *Repository) SaveRoom(ctx context.Context, room *models.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rooms[room.Code] = cloneRoom(room)
	return nil
}

// GetRoom retrieves a copy of a room by code
func (r *Repository) GetRoom(ctx context.Context, code string) (*models.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[code]
	if !ok {
		return nil, repository.ErrNotFound
	}

	return cloneRoom(room), nil
}

// RoomExists reports whether a room code is known to the store
func (r *Repository) RoomExists(ctx context.Context, code string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.rooms[code]
	return ok, nil
}

// ListRooms returns copies of all stored rooms
func (r *Repository) ListRooms(ctx context.Context) ([]*models.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rooms := make([]*models.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		rooms = append(rooms, cloneRoom(room))
	}

	return rooms, nil
}

// DeleteRoom removes a room by code
func (r *Repository) DeleteRoom(ctx context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[code]; !ok {
		return repository.ErrNotFound
	}

	delete(r.rooms, code)
	return nil
}

// cloneRoom deep-copies a room so callers never share mutable state with
// the store
func cloneRoom(room *models.Room) *models.Room {
	clone := *room

	clone.Messages = make([]models.Message, len(room.Messages))
	copy(clone.Messages, room.Messages)

	if room.CurrentTask != nil {
		task := *room.CurrentTask
		task.Votes = make([]models.Vote, len(room.CurrentTask.Votes))
		copy(task.Votes, room.CurrentTask.Votes)
		clone.CurrentTask = &task
	}

	return &clone
}
