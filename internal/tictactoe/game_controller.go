package tictactoe

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

// SearchFunc picks a cell for mark on board.
type SearchFunc func(ctx context.Context, board entity.Board, mark entity.Mark) (int, error)

// Sequential adapts BestMove to SearchFunc.
func Sequential(_ context.Context, board entity.Board, mark entity.Mark) (int, error) {
	return BestMove(board, mark)
}

// PlayBotTurn lets the engine move for the game's bot mark.
func PlayBotTurn(ctx context.Context, game *entity.Game, search SearchFunc) (int, error) {
	if game.IsFinished() {
		return -1, fmt.Errorf("%w: %w", apperror.ErrInvalidState, apperror.ErrGameFinished)
	}

	if game.Turn != game.BotMark {
		return -1, fmt.Errorf("%w: %w", apperror.ErrInvalidState, apperror.ErrNotYourTurn)
	}

	cell, err := search(ctx, game.Board, game.BotMark)
	if err != nil {
		return -1, fmt.Errorf("search failed: %w", err)
	}

	if err = game.MakeTurn(game.BotMark, cell); err != nil {
		return -1, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return cell, nil
}
