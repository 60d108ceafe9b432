package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/rpsmatch-go/internal/api/response"
	"github.com/mcoot/rpsmatch-go/internal/factory"
	"github.com/mcoot/rpsmatch-go/internal/model"
	"github.com/mcoot/rpsmatch-go/internal/testutil"
)

type APISuite struct {
	suite.Suite
	app    *factory.App
	router http.Handler
	ctx    context.Context
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	app, err := factory.New(factory.Config{Logger: testutil.NopLogger()})
	s.Require().NoError(err)

	s.app = app
	s.router = NewRouter(RouterConfig{
		Logger:     testutil.NopLogger(),
		Controller: app.Controller,
		Hub:        app.Hub,
	})
	s.ctx = context.Background()
}

func (s *APISuite) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *APISuite) TestHealth() {
	rec := s.get("/api/v1/health")
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"status":"ok"}`, rec.Body.String())
}

func (s *APISuite) TestListRoomsEmpty() {
	rec := s.get("/api/v1/rooms")
	s.Equal(http.StatusOK, rec.Code)

	var out response.RoomList
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &out))
	s.Empty(out.Rooms)
}

func (s *APISuite) TestListAndGetRooms() {
	room, err := s.app.Controller.CreatePrivate(s.ctx, "conn-a")
	s.Require().NoError(err)
	s.Require().NoError(s.app.Controller.JoinPublic(s.ctx, "conn-b"))

	rec := s.get("/api/v1/rooms")
	s.Equal(http.StatusOK, rec.Code)

	var out response.RoomList
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &out))
	s.Len(out.Rooms, 2)

	rec = s.get("/api/v1/rooms/" + string(room.ID))
	s.Equal(http.StatusOK, rec.Code)

	var got response.Room
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Equal(string(room.ID), got.ID)
	s.True(got.IsPrivate)
	s.Equal(string(model.RoomStateWaiting), got.State)
	s.Require().Len(got.Players, 1)
	s.False(got.Players[0].HasMoved)
}

func (s *APISuite) TestGetMissingRoom() {
	rec := s.get("/api/v1/rooms/missing")
	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "ROOM_NOT_FOUND")
}
