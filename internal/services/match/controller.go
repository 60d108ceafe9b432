package match

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/mcoot/rpsmatch-go/internal/dependencies/clock"
	"github.com/mcoot/rpsmatch-go/internal/dependencies/identity"
	"github.com/mcoot/rpsmatch-go/internal/model"
	"github.com/mcoot/rpsmatch-go/internal/services/rules"
	"github.com/mcoot/rpsmatch-go/internal/storage"
)

// Controller owns the room lifecycle: matchmaking, move resolution and
// disconnect reconciliation.
//
// All operations run under a single mutex. Connections race to attach to
// the same waiting room and to submit moves for the same room, so the
// registry forms one mutual-exclusion domain; round resolution is atomic
// with respect to concurrent submissions.
type Controller struct {
	mu sync.Mutex

	storage  storage.Storage
	sender   Sender
	clock    clock.Clock
	identity identity.Generator
	logger   *slog.Logger
}

// NewController creates a new match Controller
func NewController(
	storage storage.Storage,
	sender Sender,
	clock clock.Clock,
	identity identity.Generator,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:  storage,
		sender:   sender,
		clock:    clock,
		identity: identity,
		logger:   logger,
	}
}

// JoinPublic handles a public matchmaking request: attach to the oldest
// public waiting room, or open a new one.
func (c *Controller) JoinPublic(ctx context.Context, conn model.ConnID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	player := c.newPlayer(conn)

	room, err := c.storage.FindWaitingPublicRoom(ctx)
	if errors.Is(err, model.ErrNoWaitingRoom) {
		_, err := c.openRoom(ctx, player, false)
		return err
	}
	if err != nil {
		return err
	}

	return c.attach(ctx, room, player)
}

// CreatePrivate opens a private waiting room for the creator. The room id
// is reported back so the creator can share it out of band.
func (c *Controller) CreatePrivate(ctx context.Context, conn model.ConnID) (*model.Room, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.openRoom(ctx, c.newPlayer(conn), true)
}

// JoinPrivate attaches to a room by explicit id
func (c *Controller) JoinPrivate(ctx context.Context, conn model.ConnID, roomID model.RoomID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return err
	}

	if room.State == model.RoomStatePlaying || len(room.Players) >= 2 {
		return model.ErrRoomFull
	}

	return c.attach(ctx, room, c.newPlayer(conn))
}

// SubmitMove records a move and resolves the round once both players have
// committed
func (c *Controller) SubmitMove(ctx context.Context, roomID model.RoomID, playerID model.PlayerID, move model.Move) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !move.Valid() {
		return model.ErrInvalidMove
	}

	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return err
	}

	player := room.GetPlayer(playerID)
	if player == nil {
		return model.ErrPlayerNotFound
	}

	player.PendingMove = move
	opponent := room.Opponent(playerID)

	if opponent == nil || !opponent.HasMoved() {
		// Round still open: acknowledge the move to the room
		for _, p := range room.Players {
			c.sender.Send(p.Conn, model.NewMoveMade(move, player.Score))
		}
		room.UpdatedAt = c.clock.Now()
		return c.storage.SaveRoom(ctx, room)
	}

	c.resolveRound(room, player, opponent)

	room.UpdatedAt = c.clock.Now()
	return c.storage.SaveRoom(ctx, room)
}

// resolveRound computes the round outcome, updates scores, detects match
// completion and resets per-round state. Caller holds the lock.
func (c *Controller) resolveRound(room *model.Room, player, opponent *model.Player) {
	result := rules.Winner(player.PendingMove, opponent.PendingMove)
	room.LastResult = result

	var winner *model.Player
	switch result {
	case model.ResultPlayer1:
		player.Score++
		winner = player
	case model.ResultPlayer2:
		opponent.Score++
		winner = opponent
	}

	moves := map[model.PlayerID]model.Move{
		player.ID:   player.PendingMove,
		opponent.ID: opponent.PendingMove,
	}
	scores := map[model.PlayerID]int{
		player.ID:   player.Score,
		opponent.ID: opponent.Score,
	}

	for _, p := range room.Players {
		c.sender.Send(p.Conn, model.NewGameResult(result, moves, scores))
	}

	if winner != nil && winner.Score >= model.WinThreshold {
		for _, p := range room.Players {
			c.sender.Send(p.Conn, model.NewGameOver(winner.ID))
		}
		for i := range room.Players {
			room.Players[i].Score = 0
		}
		c.logger.Info("match complete",
			slog.String("room_id", string(room.ID)),
			slog.String("winner", string(winner.ID)),
		)
	}

	for i := range room.Players {
		room.Players[i].PendingMove = model.MoveNone
	}
}

// HandleExit notifies the opponent that a player is leaving. The departing
// player stays in the room until its transport disconnect arrives; clients
// that send user-exit without closing leave the room half-occupied.
func (c *Controller) HandleExit(ctx context.Context, roomID model.RoomID, playerID model.PlayerID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return err
	}

	if opponent := room.Opponent(playerID); opponent != nil {
		c.sender.Send(opponent.Conn, model.NewOpponentLeft())
	}
	return nil
}

// HandleDisconnect reconciles a lost connection against the registry:
// removes the player and garbage-collects now-empty rooms
func (c *Controller) HandleDisconnect(ctx context.Context, conn model.ConnID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	rooms, err := c.storage.ListRooms(ctx)
	if err != nil {
		return err
	}

	for _, room := range rooms {
		if !room.RemoveByConn(conn) {
			continue
		}

		if len(room.Players) == 0 {
			if err := c.storage.DeleteRoom(ctx, room.ID); err != nil {
				return err
			}
			c.logger.Info("room removed",
				slog.String("room_id", string(room.ID)),
			)
			continue
		}

		room.UpdatedAt = c.clock.Now()
		if err := c.storage.SaveRoom(ctx, room); err != nil {
			return err
		}
		c.logger.Info("player disconnected from room",
			slog.String("room_id", string(room.ID)),
			slog.Int("players_left", len(room.Players)),
		)
	}
	return nil
}

// GetRoom retrieves a snapshot of a room by id. The memory backend hands
// out live pointers, so reads take the lock and copy before releasing it.
func (c *Controller) GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, err := c.storage.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	return room.Clone(), nil
}

// ListRooms returns snapshots of all live rooms
func (c *Controller) ListRooms(ctx context.Context) ([]*model.Room, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rooms, err := c.storage.ListRooms(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*model.Room, len(rooms))
	for i, room := range rooms {
		out[i] = room.Clone()
	}
	return out, nil
}

func (c *Controller) newPlayer(conn model.ConnID) model.Player {
	return model.Player{
		ID:   model.PlayerID(c.identity.NewID()),
		Conn: conn,
	}
}

// openRoom creates a fresh waiting room holding only player
func (c *Controller) openRoom(ctx context.Context, player model.Player, private bool) (*model.Room, error) {
	now := c.clock.Now()
	room := &model.Room{
		ID:        model.RoomID(c.identity.NewID()),
		State:     model.RoomStateWaiting,
		Players:   []model.Player{player},
		IsPrivate: private,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	c.sender.Send(player.Conn, model.NewWaitingForPlayer(room.ID))

	c.logger.Info("room created",
		slog.String("room_id", string(room.ID)),
		slog.Bool("private", private),
	)
	return room, nil
}

// attach adds player to a waiting room, transitions it to playing and
// announces the game to both players
func (c *Controller) attach(ctx context.Context, room *model.Room, player model.Player) error {
	room.Players = append(room.Players, player)
	room.State = model.RoomStatePlaying
	room.LastResult = ""
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return err
	}

	for _, p := range room.Players {
		opponent := room.Opponent(p.ID)
		c.sender.Send(p.Conn, model.NewGameStarted(room.ID, p.ID, opponent.ID))
	}

	c.logger.Info("game started",
		slog.String("room_id", string(room.ID)),
		slog.Bool("private", room.IsPrivate),
	)
	return nil
}
