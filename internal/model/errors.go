package model

import "errors"

// Common errors used across the application
var (
	// Room errors
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomFull     = errors.New("room is full")

	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Move errors
	ErrInvalidMove = errors.New("invalid move")

	// Matchmaking errors
	ErrNoWaitingRoom = errors.New("no waiting room available")
)
