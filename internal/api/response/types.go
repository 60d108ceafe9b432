package response

import (
	"time"

	"github.com/mcoot/rpsmatch-go/internal/model"
)

// Player represents a player in API responses. Pending moves are never
// exposed here: the inspection surface must not leak an uncommitted move.
type Player struct {
	ID       string `json:"id"`
	Score    int    `json:"score"`
	HasMoved bool   `json:"has_moved"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:       string(p.ID),
		Score:    p.Score,
		HasMoved: p.HasMoved(),
	}
}

// Room represents a room in API responses
type Room struct {
	ID         string    `json:"id"`
	State      string    `json:"state"`
	IsPrivate  bool      `json:"is_private"`
	Players    []Player  `json:"players"`
	LastResult string    `json:"last_result,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// RoomFromModel converts a model.Room to a response Room
func RoomFromModel(r *model.Room) Room {
	players := make([]Player, 0, len(r.Players))
	for i := range r.Players {
		players = append(players, PlayerFromModel(&r.Players[i]))
	}
	return Room{
		ID:         string(r.ID),
		State:      string(r.State),
		IsPrivate:  r.IsPrivate,
		Players:    players,
		LastResult: string(r.LastResult),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// RoomList is the response for listing rooms
type RoomList struct {
	Rooms []Room `json:"rooms"`
}
