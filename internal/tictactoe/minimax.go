package tictactoe

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const winScore = 10

// MoveScore - minimax value of placing a mark on Cell.
type MoveScore struct {
	Cell  int `json:"cell"`
	Score int `json:"score"`
}

// Score runs a full-depth minimax from board. The machine mark is the maximizing side.
// Wins found earlier score higher and losses found later score higher.
func Score(board entity.Board, depth int, maximizing bool, machine entity.Mark) int {
	switch outcome := board.Evaluate(); outcome.Result {
	case entity.ResultWon:
		if outcome.Winner == machine {
			return winScore - depth
		}
		return depth - winScore
	case entity.ResultDraw:
		return 0
	}

	mark := machine
	best := math.MinInt
	if !maximizing {
		mark = machine.Opponent()
		best = math.MaxInt
	}

	for cell, owner := range board {
		if owner != entity.EmptyCell {
			continue
		}

		next := board
		next[cell] = mark

		score := Score(next, depth+1, !maximizing, machine)
		if maximizing {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}

	return best
}

func validateSearch(board entity.Board, mark entity.Mark) error {
	if !mark.IsValid() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}

	if outcome := board.Evaluate(); outcome.IsOver() {
		return fmt.Errorf("%w: game is %s", apperror.ErrInvalidState, outcome.Result)
	}

	return nil
}

func scoreMove(board entity.Board, cell int, mark entity.Mark) (int, error) {
	next, err := board.ApplyMove(cell, mark)
	if err != nil {
		return 0, err
	}

	return Score(next, 0, false, mark), nil
}

// ScoreMoves scores every empty cell for mark, in ascending cell order.
func ScoreMoves(board entity.Board, mark entity.Mark) ([]MoveScore, error) {
	if err := validateSearch(board, mark); err != nil {
		return nil, err
	}

	cells := board.EmptyCells()
	scores := make([]MoveScore, 0, len(cells))
	for _, cell := range cells {
		score, err := scoreMove(board, cell, mark)
		if err != nil {
			return nil, err
		}

		scores = append(scores, MoveScore{Cell: cell, Score: score})
	}

	return scores, nil
}

// BestOf keeps the first strict improvement, so ties go to the lowest cell.
// It returns -1 for no scores.
func BestOf(scores []MoveScore) int {
	bestCell, bestScore := -1, math.MinInt
	for _, move := range scores {
		if move.Score > bestScore {
			bestCell, bestScore = move.Cell, move.Score
		}
	}

	return bestCell
}

// BestMove returns the optimal cell for mark. Boards that are already won or
// drawn fail with apperror.ErrInvalidState.
func BestMove(board entity.Board, mark entity.Mark) (int, error) {
	scores, err := ScoreMoves(board, mark)
	if err != nil {
		return -1, err
	}

	return BestOf(scores), nil
}

// BestMoveParallel is BestMove with the top-level candidates scored concurrently.
func BestMoveParallel(ctx context.Context, board entity.Board, mark entity.Mark) (int, error) {
	if err := validateSearch(board, mark); err != nil {
		return -1, err
	}

	cells := board.EmptyCells()
	scores := make([]MoveScore, len(cells))

	group, ctx := errgroup.WithContext(ctx)
	for i, cell := range cells {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			score, err := scoreMove(board, cell, mark)
			if err != nil {
				return err
			}

			scores[i] = MoveScore{Cell: cell, Score: score}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return -1, fmt.Errorf("parallel search failed: %w", err)
	}

	return BestOf(scores), nil
}
