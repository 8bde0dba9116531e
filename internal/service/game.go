package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/config"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

var ErrUnknownMark = errors.New("unknown mark")

type GameService interface {
	CreateGame(ctx context.Context, humanMark string) (*entity.Game, error)
	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
	MakeTurn(ctx context.Context, id string, cell int) (*entity.Game, error)
	ResetGame(ctx context.Context, id string) (*entity.Game, error)
	DeleteGame(ctx context.Context, id string) error

	Hint(ctx context.Context, id string) (*Hint, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// Hint - engine scores for the human's next move.
type Hint struct {
	BestCell int                   `json:"best_cell"`
	Scores   []tictactoe.MoveScore `json:"scores"`
}

type gameService struct {
	logger *slog.Logger

	gameRepo   gameRepo
	botService BotService
	locks      *gameLocks

	defaultMark string
}

func NewGameService(logger *slog.Logger, gameRepo gameRepo, botService BotService, defaultMark string) GameService {
	return &gameService{
		logger:      logger.With("component", "game"),
		gameRepo:    gameRepo,
		botService:  botService,
		locks:       newGameLocks(),
		defaultMark: defaultMark,
	}
}

func (that *gameService) resolveMark(requested string) (entity.Mark, error) {
	if requested == "" {
		requested = that.defaultMark
	}

	switch requested {
	case string(entity.PlayerX), string(entity.PlayerO):
		return entity.Mark(requested), nil
	case config.RandomMark:
		human, _ := entity.GetRandomMarks()
		return human, nil
	default:
		return entity.EmptyCell, fmt.Errorf("%w: %w %q", apperror.ErrInvalidMark, ErrUnknownMark, requested)
	}
}

// CreateGame starts a game for the human. When the bot holds X it opens right away.
func (that *gameService) CreateGame(ctx context.Context, humanMark string) (*entity.Game, error) {
	mark, err := that.resolveMark(humanMark)
	if err != nil {
		return nil, err
	}

	game := entity.NewGame(uuid.NewString(), mark)

	if err = that.botOpens(ctx, game); err != nil {
		return nil, err
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game from storage: %w", err)
	}

	that.logger.Info("game created", "gameID", game.ID, "humanMark", game.HumanMark)

	return game, nil
}

func (that *gameService) GetGameByID(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve game from storage: %w", err)
	}

	return game, nil
}

// MakeTurn plays the human move and, while the game goes on, the bot answer.
// Turns on the same game run one at a time from load to store.
func (that *gameService) MakeTurn(ctx context.Context, id string, cell int) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", id)

	unlock := that.locks.lock(id)
	defer unlock()

	game, err := that.GetGameByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = game.MakeTurn(game.HumanMark, cell); err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	if game.IsBotTurn() {
		if err = that.botService.MakeTurn(ctx, game); err != nil {
			return nil, fmt.Errorf("bot failed to make turn: %w", err)
		}
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	if game.IsFinished() {
		log.Info("game finished", "winner", game.Winner)
	}

	return game, nil
}

// ResetGame is "Play Again": a fresh board with the same marks.
func (that *gameService) ResetGame(ctx context.Context, id string) (*entity.Game, error) {
	unlock := that.locks.lock(id)
	defer unlock()

	game, err := that.GetGameByID(ctx, id)
	if err != nil {
		return nil, err
	}

	game.Reset()

	if err = that.botOpens(ctx, game); err != nil {
		return nil, err
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

func (that *gameService) DeleteGame(ctx context.Context, id string) error {
	unlock := that.locks.lock(id)
	defer unlock()

	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}

func (that *gameService) Hint(ctx context.Context, id string) (*Hint, error) {
	game, err := that.GetGameByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if game.IsFinished() {
		return nil, apperror.ErrGameFinished
	}

	scores, err := tictactoe.ScoreMoves(game.Board, game.HumanMark)
	if err != nil {
		return nil, fmt.Errorf("failed to score moves: %w", err)
	}

	return &Hint{BestCell: tictactoe.BestOf(scores), Scores: scores}, nil
}

func (that *gameService) botOpens(ctx context.Context, game *entity.Game) error {
	if !game.IsBotTurn() {
		return nil
	}

	if err := that.botService.MakeTurn(ctx, game); err != nil {
		return fmt.Errorf("bot failed to make first turn: %w", err)
	}

	return nil
}

func (that *gameService) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}
