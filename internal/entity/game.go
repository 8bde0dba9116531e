package entity

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	// PlayerTie is stored as the winner of a drawn game.
	PlayerTie Mark = "-"
)

// Game is the state a caller owns between engine calls. The engine itself keeps nothing.
type Game struct {
	ID          string    `json:"id"`
	Board       Board     `json:"board"`
	Turn        Mark      `json:"player_turn"`
	Status      string    `json:"status"`
	Winner      Mark      `json:"winner"`
	WinningLine *Line     `json:"winning_line,omitempty"`
	HumanMark   Mark      `json:"human_mark"`
	BotMark     Mark      `json:"bot_mark"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewGame(id string, humanMark Mark) *Game {
	now := time.Now().UTC()

	return &Game{
		ID:        id,
		Board:     NewBoard(),
		Turn:      PlayerX,
		Status:    StatusOngoing,
		HumanMark: humanMark,
		BotMark:   humanMark.Opponent(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Outcome is recomputed from the board on every call.
func (that *Game) Outcome() Outcome {
	return that.Board.Evaluate()
}

func (that *Game) UpdateGameState() {
	that.UpdatedAt = time.Now().UTC()

	switch outcome := that.Outcome(); outcome.Result {
	// one player wins
	case ResultWon:
		line, _ := that.Board.WinningLineFor(outcome.Winner)
		that.Winner = outcome.Winner
		that.WinningLine = &line
		that.Status = StatusFinished
		that.Turn = EmptyCell
	// tie
	case ResultDraw:
		that.Winner = PlayerTie
		that.WinningLine = nil
		that.Status = StatusFinished
		that.Turn = EmptyCell
	// game continue
	default:
		that.Winner = EmptyCell
		that.WinningLine = nil
		that.Status = StatusOngoing
	}
}

// MakeTurn places playerMark at cell. On error the game is left untouched.
func (that *Game) MakeTurn(playerMark Mark, cell int) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if that.Turn != playerMark {
		return fmt.Errorf("%w: %s to move", apperror.ErrNotYourTurn, that.Turn)
	}

	board, err := that.Board.ApplyMove(cell, playerMark)
	if err != nil {
		return err
	}

	that.Board = board
	that.Turn = playerMark.Opponent()

	that.UpdateGameState()

	return nil
}

// Reset starts the next round with the same marks.
func (that *Game) Reset() {
	that.Board = NewBoard()
	that.Turn = PlayerX
	that.UpdateGameState()
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsBotTurn() bool {
	return that.IsOngoing() && that.Turn == that.BotMark
}

// GetRandomMarks returns the human mark first and the bot mark second.
func GetRandomMarks() (Mark, Mark) {
	if rand.Intn(2) == 0 { //nolint: gosec // it's ok
		return PlayerX, PlayerO
	}
	return PlayerO, PlayerX
}
