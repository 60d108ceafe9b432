package model

import "time"

// RoomID uniquely identifies a room. Private rooms are joined by sharing
// this id out of band.
type RoomID string

// RoomState represents the occupancy state of a room
type RoomState string

const (
	RoomStateWaiting RoomState = "waiting" // exactly one player, open for an opponent
	RoomStatePlaying RoomState = "playing" // exactly two players
)

// RoundResult is the outcome of a resolved round. Player1/Player2 refer to
// the slots the moves were resolved in, not to room join order.
type RoundResult string

const (
	ResultDraw    RoundResult = "draw"
	ResultPlayer1 RoundResult = "player1"
	ResultPlayer2 RoundResult = "player2"
)

// WinThreshold is the score at which a match ends
const WinThreshold = 3

// Room pairs up to two players and holds the transient state of their match
type Room struct {
	ID      RoomID
	State   RoomState
	Players []Player // join order; a room never holds more than two

	// IsPrivate rooms are never matched by the public scan and are only
	// discoverable by id. Fixed at creation.
	IsPrivate bool

	// LastResult is the outcome of the most recently resolved round, or
	// empty at the start of a game. Informational only.
	LastResult RoundResult

	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetPlayer returns the player with the given id, or nil if not present
func (r *Room) GetPlayer(id PlayerID) *Player {
	for i := range r.Players {
		if r.Players[i].ID == id {
			return &r.Players[i]
		}
	}
	return nil
}

// Opponent returns the other player in the room, or nil if id is the sole
// occupant or not present
func (r *Room) Opponent(id PlayerID) *Player {
	for i := range r.Players {
		if r.Players[i].ID != id {
			return &r.Players[i]
		}
	}
	return nil
}

// RemoveByConn removes every player holding the given connection and
// reports whether any was removed. A connection that joined twice occupies
// both slots, so removal must not stop at the first match.
func (r *Room) RemoveByConn(conn ConnID) bool {
	kept := r.Players[:0]
	for _, p := range r.Players {
		if p.Conn != conn {
			kept = append(kept, p)
		}
	}
	removed := len(kept) != len(r.Players)
	r.Players = kept
	return removed
}

// Clone returns a copy of the room that shares no state with the original
func (r *Room) Clone() *Room {
	out := *r
	out.Players = append([]Player(nil), r.Players...)
	return &out
}
