package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
)

type gameService interface {
	CreateGame(ctx context.Context, humanMark string) (*entity.Game, error)
	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
	MakeTurn(ctx context.Context, id string, cell int) (*entity.Game, error)
	ResetGame(ctx context.Context, id string) (*entity.Game, error)
	DeleteGame(ctx context.Context, id string) error
	Hint(ctx context.Context, id string) (*service.Hint, error)
}

type handlers struct {
	logger      *slog.Logger
	gameService gameService
}

type createGameRequest struct {
	HumanMark string `json:"human_mark"`
}

type makeTurnRequest struct {
	Cell *int `json:"cell"`
}

var errCellRequired = errors.New("cell is required")

func (that *handlers) CreateGame(w http.ResponseWriter, r *http.Request) {
	var request createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed json"})
		return
	}

	game, err := that.gameService.CreateGame(r.Context(), request.HumanMark)
	if err != nil {
		writeError(w, that.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, game)
}

func (that *handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameService.GetGameByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, that.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *handlers) MakeTurn(w http.ResponseWriter, r *http.Request) {
	var request makeTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed json"})
		return
	}

	if request.Cell == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: errCellRequired.Error()})
		return
	}

	game, err := that.gameService.MakeTurn(r.Context(), chi.URLParam(r, "id"), *request.Cell)
	if err != nil {
		writeError(w, that.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *handlers) ResetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameService.ResetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, that.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *handlers) Hint(w http.ResponseWriter, r *http.Request) {
	hint, err := that.gameService.Hint(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, that.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, hint)
}

func (that *handlers) DeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.gameService.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, that.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
