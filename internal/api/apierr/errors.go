package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/model"
	"github.com/TheBlueMuzzy/Glyphtender-sub000/internal/services/auth"
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
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidLetter      = "INVALID_LETTER"
	CodeInvalidCell        = "INVALID_CELL"
	CodeInvalidGlyphling   = "INVALID_GLYPHLING"
	CodeInvalidSeat        = "INVALID_SEAT"
	CodeInvalidBoardSize   = "INVALID_BOARD_SIZE"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeGameNotFound       = "GAME_NOT_FOUND"
	CodeSummaryNotFound    = "SUMMARY_NOT_FOUND"
	CodeGameComplete       = "GAME_COMPLETE"
	CodeWrongPhase         = "WRONG_PHASE"
	CodeIllegalMove        = "ILLEGAL_MOVE"
	CodeIllegalCast        = "ILLEGAL_CAST"
	CodeLetterNotInHand    = "LETTER_NOT_IN_HAND"
	CodeGlyphlingTangled   = "GLYPHLING_TANGLED"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors. Invalid references are 400/404; illegal intents
	// against the current turn state are 409.
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrSummaryNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSummaryNotFound, "Game summary not found"}}
	case errors.Is(err, model.ErrInvalidBoardSize):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidBoardSize, "Board size must be small, medium or large"}}
	case errors.Is(err, model.ErrInvalidCell):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidCell, "Cell is not on the board"}}
	case errors.Is(err, model.ErrInvalidGlyphling):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidGlyphling, "No such glyphling"}}
	case errors.Is(err, model.ErrInvalidLetter):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidLetter, "Letter must be A-Z"}}
	case errors.Is(err, model.ErrInvalidSeat):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidSeat, "No such player seat"}}
	case errors.Is(err, model.ErrLetterNotInHand):
		return &httpError{http.StatusConflict, APIError{CodeLetterNotInHand, "Letter is not in hand"}}
	case errors.Is(err, model.ErrGameComplete):
		return &httpError{http.StatusConflict, APIError{CodeGameComplete, "Game is already complete"}}
	case errors.Is(err, model.ErrWrongPhase):
		return &httpError{http.StatusConflict, APIError{CodeWrongPhase, "Intent not valid in current turn phase"}}
	case errors.Is(err, model.ErrIllegalMove):
		return &httpError{http.StatusConflict, APIError{CodeIllegalMove, "Destination is not a legal slide"}}
	case errors.Is(err, model.ErrIllegalCast):
		return &httpError{http.StatusConflict, APIError{CodeIllegalCast, "Cell is not a legal cast target"}}
	case errors.Is(err, model.ErrGlyphlingTangled):
		return &httpError{http.StatusConflict, APIError{CodeGlyphlingTangled, "Glyphling has no legal moves"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
