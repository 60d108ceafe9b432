package memory

import (
	"context"
	"sync"

	"github.com/mcoot/rpsmatch-go/internal/model"
	"github.com/mcoot/rpsmatch-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
//
// Rooms are kept in a map for id lookup plus an insertion-order slice so
// the waiting-room scan is deterministic: the oldest waiting room wins.
type Storage struct {
	mu sync.RWMutex

	rooms map[model.RoomID]*model.Room
	order []model.RoomID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		rooms: make(map[model.RoomID]*model.Room),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveRoom(ctx context.Context, room *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[room.ID]; !ok {
		s.order = append(s.order, room.ID)
	}
	s.rooms[room.ID] = room
	return nil
}

func (s *Storage) GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return room, nil
}

func (s *Storage) DeleteRoom(ctx context.Context, id model.RoomID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[id]; !ok {
		return nil
	}
	delete(s.rooms, id)
	for i, rid := range s.order {
		if rid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Storage) FindWaitingPublicRoom(ctx context.Context) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.order {
		room := s.rooms[id]
		if room.State == model.RoomStateWaiting && !room.IsPrivate {
			return room, nil
		}
	}
	return nil, model.ErrNoWaitingRoom
}

func (s *Storage) ListRooms(ctx context.Context) ([]*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rooms := make([]*model.Room, 0, len(s.order))
	for _, id := range s.order {
		rooms = append(rooms, s.rooms[id])
	}
	return rooms, nil
}
