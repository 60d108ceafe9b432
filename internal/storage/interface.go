package storage

import (
	"context"

	"github.com/mcoot/rpsmatch-go/internal/model"
)

// Storage defines the interface for the room registry.
//
// A room with zero players is never saved: callers delete it instead, so
// every stored room satisfies the one-or-two-player invariant.
type Storage interface {
	// SaveRoom creates or updates a room
	SaveRoom(ctx context.Context, room *model.Room) error

	// GetRoom retrieves a room by id, returning model.ErrRoomNotFound if absent
	GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error)

	// DeleteRoom removes a room from the registry
	DeleteRoom(ctx context.Context, id model.RoomID) error

	// FindWaitingPublicRoom returns the oldest public room in the waiting
	// state, or model.ErrNoWaitingRoom if there is none. Private rooms are
	// never returned.
	FindWaitingPublicRoom(ctx context.Context) (*model.Room, error)

	// ListRooms returns all rooms in creation order
	ListRooms(ctx context.Context) ([]*model.Room, error)
}
