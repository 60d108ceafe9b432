package model

// Wire message types. The protocol is flat JSON: every message carries a
// "type" field alongside its data.

// Inbound message types
const (
	TypeStartNewGame     = "start-new-game"
	TypeStartPrivateGame = "start-private-game"
	TypeJoinPrivateGame  = "join-private-game"
	TypeMakeMove         = "make-move"
	TypeUserExit         = "user-exit"
)

// Outbound message types
const (
	TypeConnected        = "connected"
	TypeWaitingForPlayer = "waiting-for-player"
	TypeGameStarted      = "game-started"
	TypeMoveMade         = "move-made"
	TypeGameResult       = "game-result"
	TypeGameOver         = "game-over"
	TypeOpponentLeft     = "opponent-left"
	TypeError            = "error"
)

// ServerMessage is an outbound message addressed to a single connection
type ServerMessage interface {
	MessageType() string
}

// Connected greets a freshly accepted connection
type Connected struct {
	Type string `json:"type"`
}

func NewConnected() Connected {
	return Connected{Type: TypeConnected}
}

func (m Connected) MessageType() string { return m.Type }

// WaitingForPlayer tells a room's sole occupant it is waiting for an
// opponent. RoomID lets a private-room creator share the room.
type WaitingForPlayer struct {
	Type   string `json:"type"`
	RoomID RoomID `json:"roomId"`
}

func NewWaitingForPlayer(roomID RoomID) WaitingForPlayer {
	return WaitingForPlayer{Type: TypeWaitingForPlayer, RoomID: roomID}
}

func (m WaitingForPlayer) MessageType() string { return m.Type }

// GameStarted is sent to both players when a room fills. Labels are
// symmetric: each recipient sees itself as YourID.
type GameStarted struct {
	Type    string   `json:"type"`
	RoomID  RoomID   `json:"roomId"`
	YourID  PlayerID `json:"yourId"`
	OtherID PlayerID `json:"otherId"`
}

func NewGameStarted(roomID RoomID, yourID, otherID PlayerID) GameStarted {
	return GameStarted{Type: TypeGameStarted, RoomID: roomID, YourID: yourID, OtherID: otherID}
}

func (m GameStarted) MessageType() string { return m.Type }

// MoveMade acknowledges a submitted move while the opponent has yet to move
type MoveMade struct {
	Type  string `json:"type"`
	Move  Move   `json:"move"`
	Score int    `json:"score"`
}

func NewMoveMade(move Move, score int) MoveMade {
	return MoveMade{Type: TypeMoveMade, Move: move, Score: score}
}

func (m MoveMade) MessageType() string { return m.Type }

// GameResult reports a resolved round to both players
type GameResult struct {
	Type   string            `json:"type"`
	Result RoundResult       `json:"result"`
	Moves  map[PlayerID]Move `json:"moves"`
	Scores map[PlayerID]int  `json:"scores"`
}

func NewGameResult(result RoundResult, moves map[PlayerID]Move, scores map[PlayerID]int) GameResult {
	return GameResult{Type: TypeGameResult, Result: result, Moves: moves, Scores: scores}
}

func (m GameResult) MessageType() string { return m.Type }

// GameOver announces a match winner once a score reaches the win threshold
type GameOver struct {
	Type   string   `json:"type"`
	Winner PlayerID `json:"winner"`
}

func NewGameOver(winner PlayerID) GameOver {
	return GameOver{Type: TypeGameOver, Winner: winner}
}

func (m GameOver) MessageType() string { return m.Type }

// OpponentLeft notifies the surviving player of an explicit exit
type OpponentLeft struct {
	Type string `json:"type"`
}

func NewOpponentLeft() OpponentLeft {
	return OpponentLeft{Type: TypeOpponentLeft}
}

func (m OpponentLeft) MessageType() string { return m.Type }

// ErrorMessage reports a non-fatal request failure to the sender
type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewErrorMessage(message string) ErrorMessage {
	return ErrorMessage{Type: TypeError, Message: message}
}

func (m ErrorMessage) MessageType() string { return m.Type }
