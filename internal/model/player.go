package model

// PlayerID uniquely identifies a player for the lifetime of its connection
type PlayerID string

// ConnID is a stable identifier for a transport connection. The core never
// owns the transport resource; it only addresses outbound messages by ConnID.
type ConnID string

// Move is one of the three simultaneous choices
type Move string

const (
	MoveRock     Move = "rock"
	MovePaper    Move = "paper"
	MoveScissors Move = "scissors"

	// MoveNone means no move has been submitted this round
	MoveNone Move = ""
)

// Valid reports whether m is a playable move
func (m Move) Valid() bool {
	switch m {
	case MoveRock, MovePaper, MoveScissors:
		return true
	}
	return false
}

// Player represents a participant inside a room
type Player struct {
	ID   PlayerID
	Conn ConnID

	// Score counts round wins in the current match. Reset to zero when a
	// player reaches the win threshold.
	Score int

	// PendingMove is the move submitted for the current round, or MoveNone.
	// Set once per round and cleared when the round resolves.
	PendingMove Move
}

// HasMoved reports whether the player has submitted a move this round
func (p *Player) HasMoved() bool {
	return p.PendingMove != MoveNone
}
