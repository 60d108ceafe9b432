package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/mcoot/rpsmatch-go/internal/model"
	"github.com/mcoot/rpsmatch-go/internal/services/match"
)

// clientMessage is the inbound envelope: a type tag plus a type-specific
// payload object
type clientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type joinPrivatePayload struct {
	RoomID string `json:"roomId"`
}

type movePayload struct {
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
	Move     string `json:"move"`
}

type exitPayload struct {
	RoomID string `json:"roomId"`
	UserID string `json:"userId"`
}

// Dispatcher routes inbound messages to the match controller and reports
// failures back to the requesting connection as error messages. Malformed
// envelopes and unknown types are rejected rather than silently dropped.
type Dispatcher struct {
	controller *match.Controller
	sender     match.Sender
	logger     *slog.Logger
}

// Ensure Dispatcher satisfies the hub's inbound contract
var _ Handler = (*Dispatcher)(nil)

// NewDispatcher creates a new Dispatcher
func NewDispatcher(controller *match.Controller, sender match.Sender, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		controller: controller,
		sender:     sender,
		logger:     logger.With(slog.String("component", "dispatch")),
	}
}

// HandleMessage parses an inbound frame and executes the requested operation
func (d *Dispatcher) HandleMessage(ctx context.Context, conn model.ConnID, data []byte) {
	var msg clientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		d.sender.Send(conn, model.NewErrorMessage("Invalid message"))
		return
	}

	var err error
	switch msg.Type {
	case model.TypeStartNewGame:
		err = d.controller.JoinPublic(ctx, conn)

	case model.TypeStartPrivateGame:
		_, err = d.controller.CreatePrivate(ctx, conn)

	case model.TypeJoinPrivateGame:
		var p joinPrivatePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			d.sender.Send(conn, model.NewErrorMessage("Invalid payload"))
			return
		}
		err = d.controller.JoinPrivate(ctx, conn, model.RoomID(p.RoomID))

	case model.TypeMakeMove:
		var p movePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			d.sender.Send(conn, model.NewErrorMessage("Invalid payload"))
			return
		}
		err = d.controller.SubmitMove(ctx, model.RoomID(p.RoomID), model.PlayerID(p.PlayerID), model.Move(p.Move))

	case model.TypeUserExit:
		var p exitPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			d.sender.Send(conn, model.NewErrorMessage("Invalid payload"))
			return
		}
		err = d.controller.HandleExit(ctx, model.RoomID(p.RoomID), model.PlayerID(p.UserID))

	default:
		d.sender.Send(conn, model.NewErrorMessage("Unknown message type"))
		return
	}

	if err != nil {
		d.sender.Send(conn, model.NewErrorMessage(errorText(err)))
	}
}

// HandleDisconnect reconciles a dropped connection against the registry
func (d *Dispatcher) HandleDisconnect(ctx context.Context, conn model.ConnID) {
	if err := d.controller.HandleDisconnect(ctx, conn); err != nil {
		d.logger.Error("disconnect reconciliation failed",
			slog.String("conn_id", string(conn)),
			slog.String("error", err.Error()),
		)
	}
}

// errorText maps domain errors to the human-readable strings the protocol
// reports
func errorText(err error) string {
	switch {
	case errors.Is(err, model.ErrRoomNotFound):
		return "Room not found"
	case errors.Is(err, model.ErrPlayerNotFound):
		return "Player not found"
	case errors.Is(err, model.ErrRoomFull):
		return "Room is full"
	case errors.Is(err, model.ErrInvalidMove):
		return "Invalid move"
	default:
		return "Internal error"
	}
}
