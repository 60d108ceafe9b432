package redis

import (
	"fmt"

	"github.com/mcoot/rpsmatch-go/internal/model"
)

// Key prefix for all registry data
const keyPrefix = "rpsmatch"

// roomKey returns the Redis key for a Room
func roomKey(id model.RoomID) string {
	return fmt.Sprintf("%s:room:%s", keyPrefix, id)
}

// roomsIndexKey returns the Redis key for the sorted set of all room ids,
// scored by creation time
func roomsIndexKey() string {
	return fmt.Sprintf("%s:idx:rooms", keyPrefix)
}

// waitingIndexKey returns the Redis key for the sorted set of public
// waiting room ids, scored by creation time
func waitingIndexKey() string {
	return fmt.Sprintf("%s:idx:waiting_public", keyPrefix)
}
