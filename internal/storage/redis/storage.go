package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/rpsmatch-go/internal/model"
	"github.com/mcoot/rpsmatch-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveRoom(ctx context.Context, room *model.Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return err
	}

	score := float64(room.CreatedAt.UnixNano())

	// Pipeline keeps the room value and its indexes in step
	pipe := s.client.Pipeline()
	pipe.Set(ctx, roomKey(room.ID), data, s.cfg.RoomTTL)
	pipe.ZAddNX(ctx, roomsIndexKey(), redis.Z{Score: score, Member: string(room.ID)})
	if room.State == model.RoomStateWaiting && !room.IsPrivate {
		pipe.ZAddNX(ctx, waitingIndexKey(), redis.Z{Score: score, Member: string(room.ID)})
	} else {
		pipe.ZRem(ctx, waitingIndexKey(), string(room.ID))
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	data, err := s.client.Get(ctx, roomKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRoomNotFound
		}
		return nil, err
	}

	var room model.Room
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *Storage) DeleteRoom(ctx context.Context, id model.RoomID) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, roomKey(id))
	pipe.ZRem(ctx, roomsIndexKey(), string(id))
	pipe.ZRem(ctx, waitingIndexKey(), string(id))
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) FindWaitingPublicRoom(ctx context.Context) (*model.Room, error) {
	ids, err := s.client.ZRange(ctx, waitingIndexKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		room, err := s.GetRoom(ctx, model.RoomID(id))
		if errors.Is(err, model.ErrRoomNotFound) {
			// Room key expired out from under the index
			_ = s.client.ZRem(ctx, waitingIndexKey(), id).Err()
			continue
		}
		if err != nil {
			return nil, err
		}
		if room.State == model.RoomStateWaiting && !room.IsPrivate {
			return room, nil
		}
	}
	return nil, model.ErrNoWaitingRoom
}

func (s *Storage) ListRooms(ctx context.Context) ([]*model.Room, error) {
	ids, err := s.client.ZRange(ctx, roomsIndexKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	rooms := make([]*model.Room, 0, len(ids))
	for _, id := range ids {
		room, err := s.GetRoom(ctx, model.RoomID(id))
		if errors.Is(err, model.ErrRoomNotFound) {
			_ = s.client.ZRem(ctx, roomsIndexKey(), id).Err()
			continue
		}
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}
