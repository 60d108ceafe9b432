package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/rpsmatch-go/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeRoomNotFound   = "ROOM_NOT_FOUND"
	CodePlayerNotFound = "PLAYER_NOT_FOUND"
	CodeInternalError  = "INTERNAL_ERROR"
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	status, apiError := toAPIError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: apiError})
}

// toAPIError maps a domain error to an HTTP status and API error body
func toAPIError(err error) (int, APIError) {
	switch {
	case errors.Is(err, model.ErrRoomNotFound):
		return http.StatusNotFound, APIError{CodeRoomNotFound, "Room not found"}
	case errors.Is(err, model.ErrPlayerNotFound):
		return http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}
	default:
		return http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}
	}
}
