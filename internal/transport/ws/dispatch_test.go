package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/rpsmatch-go/internal/dependencies/mocks"
	"github.com/mcoot/rpsmatch-go/internal/model"
	"github.com/mcoot/rpsmatch-go/internal/services/match"
	"github.com/mcoot/rpsmatch-go/internal/storage/memory"
	"github.com/mcoot/rpsmatch-go/internal/testutil"
)

// recordingSender captures outbound messages per connection
type recordingSender struct {
	sent map[model.ConnID][]model.ServerMessage
}

func newRecordingSender() *recordingSender {
	return &recordingSender{sent: make(map[model.ConnID][]model.ServerMessage)}
}

func (s *recordingSender) Send(conn model.ConnID, msg model.ServerMessage) {
	s.sent[conn] = append(s.sent[conn], msg)
}

func (s *recordingSender) last(conn model.ConnID) model.ServerMessage {
	msgs := s.sent[conn]
	if len(msgs) == 0 {
		return nil
	}
	return msgs[len(msgs)-1]
}

type DispatcherSuite struct {
	suite.Suite
	storage    *memory.Storage
	sender     *recordingSender
	dispatcher *Dispatcher
	ctx        context.Context
}

func TestDispatcherSuite(t *testing.T) {
	suite.Run(t, new(DispatcherSuite))
}

func (s *DispatcherSuite) SetupTest() {
	s.storage = memory.New()
	s.sender = newRecordingSender()
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	ids := mocks.NewMockGenerator()
	controller := match.NewController(s.storage, s.sender, clk, ids, testutil.NopLogger())
	s.dispatcher = NewDispatcher(controller, s.sender, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *DispatcherSuite) dispatch(conn model.ConnID, raw string) {
	s.dispatcher.HandleMessage(s.ctx, conn, []byte(raw))
}

// pairUp joins two connections into a room and returns it
func (s *DispatcherSuite) pairUp(connA, connB model.ConnID) *model.Room {
	s.dispatch(connA, `{"type":"start-new-game"}`)
	s.dispatch(connB, `{"type":"start-new-game"}`)

	rooms, err := s.storage.ListRooms(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(rooms, 1)
	return rooms[0]
}

func (s *DispatcherSuite) TestStartNewGame() {
	s.dispatch("conn-a", `{"type":"start-new-game"}`)

	s.IsType(model.WaitingForPlayer{}, s.sender.last("conn-a"))
}

func (s *DispatcherSuite) TestPairingOverDispatch() {
	s.pairUp("conn-a", "conn-b")

	startedA, ok := s.sender.last("conn-a").(model.GameStarted)
	s.Require().True(ok)
	startedB, ok := s.sender.last("conn-b").(model.GameStarted)
	s.Require().True(ok)

	s.Equal(startedA.RoomID, startedB.RoomID)
	s.Equal(startedA.YourID, startedB.OtherID)
	s.Equal(startedA.OtherID, startedB.YourID)
}

func (s *DispatcherSuite) TestPrivateGameFlow() {
	s.dispatch("conn-a", `{"type":"start-private-game"}`)

	waiting, ok := s.sender.last("conn-a").(model.WaitingForPlayer)
	s.Require().True(ok)
	s.NotEmpty(waiting.RoomID)

	s.dispatch("conn-b", fmt.Sprintf(`{"type":"join-private-game","payload":{"roomId":%q}}`, waiting.RoomID))

	s.IsType(model.GameStarted{}, s.sender.last("conn-a"))
	s.IsType(model.GameStarted{}, s.sender.last("conn-b"))
}

func (s *DispatcherSuite) TestFullRoundOverDispatch() {
	room := s.pairUp("conn-a", "conn-b")
	p1, p2 := room.Players[0].ID, room.Players[1].ID

	s.dispatch("conn-a", fmt.Sprintf(`{"type":"make-move","payload":{"roomId":%q,"playerId":%q,"move":"rock"}}`, room.ID, p1))
	s.IsType(model.MoveMade{}, s.sender.last("conn-b"))

	s.dispatch("conn-b", fmt.Sprintf(`{"type":"make-move","payload":{"roomId":%q,"playerId":%q,"move":"scissors"}}`, room.ID, p2))

	result, ok := s.sender.last("conn-a").(model.GameResult)
	s.Require().True(ok)
	s.Equal(model.MoveRock, result.Moves[p1])
	s.Equal(model.MoveScissors, result.Moves[p2])
	s.Equal(1, result.Scores[p1])
}

func (s *DispatcherSuite) TestUserExitOverDispatch() {
	room := s.pairUp("conn-a", "conn-b")
	p1 := room.Players[0].ID

	s.dispatch("conn-a", fmt.Sprintf(`{"type":"user-exit","payload":{"roomId":%q,"userId":%q}}`, room.ID, p1))

	s.IsType(model.OpponentLeft{}, s.sender.last("conn-b"))
}

func (s *DispatcherSuite) TestDisconnectRemovesWaitingRoom() {
	s.dispatch("conn-a", `{"type":"start-new-game"}`)

	s.dispatcher.HandleDisconnect(s.ctx, "conn-a")

	rooms, err := s.storage.ListRooms(s.ctx)
	s.Require().NoError(err)
	s.Empty(rooms)
}

func (s *DispatcherSuite) TestMoveForMissingRoom() {
	s.dispatch("conn-a", `{"type":"make-move","payload":{"roomId":"missing","playerId":"p1","move":"rock"}}`)

	errMsg, ok := s.sender.last("conn-a").(model.ErrorMessage)
	s.Require().True(ok)
	s.Equal("Room not found", errMsg.Message)
}

func (s *DispatcherSuite) TestJoinFullPrivateRoomRejected() {
	s.dispatch("conn-a", `{"type":"start-private-game"}`)
	waiting := s.sender.last("conn-a").(model.WaitingForPlayer)

	joinMsg := fmt.Sprintf(`{"type":"join-private-game","payload":{"roomId":%q}}`, waiting.RoomID)
	s.dispatch("conn-b", joinMsg)
	s.dispatch("conn-c", joinMsg)

	errMsg, ok := s.sender.last("conn-c").(model.ErrorMessage)
	s.Require().True(ok)
	s.Equal("Room is full", errMsg.Message)
}

func (s *DispatcherSuite) TestUnknownTypeRejected() {
	s.dispatch("conn-a", `{"type":"do-a-flip"}`)

	errMsg, ok := s.sender.last("conn-a").(model.ErrorMessage)
	s.Require().True(ok)
	s.Equal("Unknown message type", errMsg.Message)
}

func (s *DispatcherSuite) TestMalformedJSONRejected() {
	s.dispatch("conn-a", `{not json`)

	errMsg, ok := s.sender.last("conn-a").(model.ErrorMessage)
	s.Require().True(ok)
	s.Equal("Invalid message", errMsg.Message)
}

func (s *DispatcherSuite) TestMissingPayloadRejected() {
	s.dispatch("conn-a", `{"type":"make-move"}`)

	errMsg, ok := s.sender.last("conn-a").(model.ErrorMessage)
	s.Require().True(ok)
	s.Equal("Invalid payload", errMsg.Message)
}

func (s *DispatcherSuite) TestInvalidMoveRejected() {
	room := s.pairUp("conn-a", "conn-b")
	p1 := room.Players[0].ID

	s.dispatch("conn-a", fmt.Sprintf(`{"type":"make-move","payload":{"roomId":%q,"playerId":%q,"move":"lizard"}}`, room.ID, p1))

	errMsg, ok := s.sender.last("conn-a").(model.ErrorMessage)
	s.Require().True(ok)
	s.Equal("Invalid move", errMsg.Message)
}

// Outbound messages must serialize to the flat wire shape clients expect
func TestOutboundWireShape(t *testing.T) {
	started := model.NewGameStarted("room-1", "p1", "p2")

	data, err := json.Marshal(started)
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}

	if decoded["type"] != "game-started" || decoded["roomId"] != "room-1" ||
		decoded["yourId"] != "p1" || decoded["otherId"] != "p2" {
		t.Fatalf("unexpected wire shape: %s", data)
	}
}
