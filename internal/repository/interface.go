// Package repository defines interfaces for room storage
package repository

import (
	"context"
	"errors"

	"github.com/navikt/vrooms/internal/models"
)

// ErrNotFound is returned when a requested room does not exist
var ErrNotFound = errors.New("room not found")

// Repository defines the interface for storing and retrieving room data.
// The store is the single source of truth for room state; callers own
// the load-mutate-save sequencing (see service.RoomService), the store
// only guarantees that an individual Save or Get is atomic.
type Repository interface {
	// SaveRoom persists the full room record under its code
	SaveRoom(ctx context.Context, room *models.Room) error

	// GetRoom retrieves a room by code, or ErrNotFound
	GetRoom(ctx context.Context, code string) (*models.Room, error)

	// RoomExists reports whether a room code is known to the store
	RoomExists(ctx context.Context, code string) (bool, error)

	// ListRooms returns all rooms currently known to the store
	ListRooms(ctx context.Context) ([]*models.Room, error)

	// DeleteRoom removes a room by code, or ErrNotFound
	DeleteRoom(ctx context.Context, code string) error
}
