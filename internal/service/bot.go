package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

type BotService interface {
	MakeTurn(ctx context.Context, game *entity.Game) error
}

type botService struct {
	logger *slog.Logger
	delay  time.Duration
	search tictactoe.SearchFunc
}

// NewBotService plays the minimax move after delay. The delay only simulates
// thinking time, the search itself is synchronous.
func NewBotService(logger *slog.Logger, delay time.Duration, parallel bool) BotService {
	search := tictactoe.SearchFunc(tictactoe.Sequential)
	if parallel {
		search = tictactoe.BestMoveParallel
	}

	return &botService{
		logger: logger.With("component", "bot"),
		delay:  delay,
		search: search,
	}
}

func (that *botService) MakeTurn(ctx context.Context, game *entity.Game) error {
	if err := that.think(ctx); err != nil {
		return err
	}

	started := time.Now()

	cell, err := tictactoe.PlayBotTurn(ctx, game, that.search)
	if err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	that.logger.Debug("bot moved",
		"gameID", game.ID,
		"mark", game.BotMark,
		"cell", cell,
		"board", game.Board.String(),
		"searchTime", time.Since(started),
	)

	return nil
}

func (that *botService) think(ctx context.Context) error {
	if that.delay <= 0 {
		return nil
	}

	timer := time.NewTimer(that.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("bot interrupted: %w", ctx.Err())
	}
}
