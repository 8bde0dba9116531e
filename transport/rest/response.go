package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

const internalErrorJSON = `{"error":"internal server error"}`

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	payload, err := json.Marshal(body)
	if err != nil {
		writeInternalError(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

func writeInternalError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(internalErrorJSON))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrOutOfBounds), errors.Is(err, apperror.ErrInvalidMark):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrInvalidMove),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrGameFinished):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps domain errors to a status. Unknown errors are logged and hidden from the client.
func writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed", "error", err)
		writeInternalError(w)
		return
	}

	writeJSON(w, status, errorResponse{Error: rootCause(err).Error()})
}

// rootCause returns the first sentinel the client should see instead of the wrapped chain.
func rootCause(err error) error {
	for _, sentinel := range []error{
		apperror.ErrGameNotFound,
		apperror.ErrOutOfBounds,
		apperror.ErrInvalidMark,
		apperror.ErrInvalidMove,
		apperror.ErrNotYourTurn,
		apperror.ErrGameFinished,
	} {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}

	return err
}
