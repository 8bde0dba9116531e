package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gameService := service.NewGameService(
		logger,
		repository.NewMemoryGameRepository(),
		service.NewBotService(logger, 0, false),
		"X",
	)

	srv := httptest.NewServer(New(logger, gameService).Handler())
	t.Cleanup(srv.Close)

	return srv
}

func do(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), method, url, strings.NewReader(body))
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, payload
}

func decodeGame(t *testing.T, payload []byte) entity.Game {
	t.Helper()

	var game entity.Game
	require.NoError(t, json.Unmarshal(payload, &game))

	return game
}

func createGame(t *testing.T, srv *httptest.Server, body string) entity.Game {
	t.Helper()

	resp, payload := do(t, http.MethodPost, srv.URL+"/games", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(payload))

	return decodeGame(t, payload)
}

func TestServer_Ping(t *testing.T) {
	srv := newTestServer(t)

	resp, payload := do(t, http.MethodGet, srv.URL+"/ping", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", string(payload))
}

func TestServer_CreateGame(t *testing.T) {
	srv := newTestServer(t)

	t.Run("Without a body the human plays the default mark", func(t *testing.T) {
		game := createGame(t, srv, "")

		assert.NotEmpty(t, game.ID)
		assert.Equal(t, entity.PlayerX, game.HumanMark)
		assert.Equal(t, entity.PlayerX, game.Turn)
		assert.Equal(t, entity.StatusOngoing, game.Status)
	})

	t.Run("Bot opens for a human playing O", func(t *testing.T) {
		game := createGame(t, srv, `{"human_mark":"O"}`)

		assert.Equal(t, entity.PlayerX, game.Board[0])
		assert.Equal(t, entity.PlayerO, game.Turn)
	})

	t.Run("Unknown mark", func(t *testing.T) {
		resp, payload := do(t, http.MethodPost, srv.URL+"/games", `{"human_mark":"Z"}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.JSONEq(t, `{"error":"invalid player mark"}`, string(payload))
	})

	t.Run("Malformed json", func(t *testing.T) {
		resp, _ := do(t, http.MethodPost, srv.URL+"/games", `{`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestServer_MakeTurn(t *testing.T) {
	srv := newTestServer(t)

	t.Run("Human move and bot answer", func(t *testing.T) {
		// Given: a new game
		game := createGame(t, srv, "")

		// When: the human takes a corner
		resp, payload := do(t, http.MethodPost, srv.URL+"/games/"+game.ID+"/turns", `{"cell":0}`)

		// Then: the bot took the center
		require.Equal(t, http.StatusOK, resp.StatusCode, string(payload))
		game = decodeGame(t, payload)
		assert.Equal(t, entity.PlayerX, game.Board[0])
		assert.Equal(t, entity.PlayerO, game.Board[4])
		assert.Equal(t, entity.PlayerX, game.Turn)

		// And: GET returns the same state
		resp, payload = do(t, http.MethodGet, srv.URL+"/games/"+game.ID, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, game.Board, decodeGame(t, payload).Board)
	})

	t.Run("Status codes for rejected moves", func(t *testing.T) {
		game := createGame(t, srv, "")
		url := srv.URL + "/games/" + game.ID + "/turns"

		resp, _ := do(t, http.MethodPost, url, `{"cell":0}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp, payload := do(t, http.MethodPost, url, `{"cell":4}`)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.JSONEq(t, `{"error":"cell is already occupied"}`, string(payload))

		resp, _ = do(t, http.MethodPost, url, `{"cell":9}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		resp, _ = do(t, http.MethodPost, url, `{}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		resp, _ = do(t, http.MethodPost, srv.URL+"/games/missing/turns", `{"cell":0}`)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Play to the end, then play again", func(t *testing.T) {
		game := createGame(t, srv, "")
		url := srv.URL + "/games/" + game.ID

		for game.Status != entity.StatusFinished {
			resp, payload := do(t, http.MethodPost, url+"/turns", `{"cell":`+strconv.Itoa(game.Board.EmptyCells()[0])+`}`)
			require.Equal(t, http.StatusOK, resp.StatusCode, string(payload))
			game = decodeGame(t, payload)
		}

		assert.NotEqual(t, entity.PlayerX, game.Winner)
		if game.Winner == entity.PlayerO {
			require.NotNil(t, game.WinningLine)
		}

		resp, _ := do(t, http.MethodPost, url+"/turns", `{"cell":0}`)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		resp, _ = do(t, http.MethodGet, url+"/hint", "")
		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		resp, payload := do(t, http.MethodPost, url+"/reset", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		game = decodeGame(t, payload)
		assert.Equal(t, entity.NewBoard(), game.Board)
		assert.Equal(t, entity.StatusOngoing, game.Status)
	})
}

func TestServer_Hint(t *testing.T) {
	srv := newTestServer(t)
	game := createGame(t, srv, "")

	resp, payload := do(t, http.MethodGet, srv.URL+"/games/"+game.ID+"/hint", "")

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var hint service.Hint
	require.NoError(t, json.Unmarshal(payload, &hint))
	assert.Equal(t, 0, hint.BestCell)
	assert.Len(t, hint.Scores, 9)
}

func TestServer_DeleteGame(t *testing.T) {
	srv := newTestServer(t)
	game := createGame(t, srv, "")

	resp, _ := do(t, http.MethodDelete, srv.URL+"/games/"+game.ID, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, http.MethodGet, srv.URL+"/games/"+game.ID, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, http.MethodDelete, srv.URL+"/games/"+game.ID, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
