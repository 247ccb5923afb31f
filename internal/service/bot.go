package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
	"github.com/rocketscienceinc/tictactoe-cli/internal/repository"
	"github.com/rocketscienceinc/tictactoe-cli/internal/tictactoe"
)

type BotService interface {
	MakeTurn(ctx context.Context, game *entity.Game) (int, error)
}

type botService struct {
	logger *slog.Logger

	engines map[entity.Mark]*tictactoe.Engine
	cache   repository.MoveCache
}

// NewBotService - cache may be nil, then every optimal move is searched.
func NewBotService(logger *slog.Logger, rnd *rand.Rand, cache repository.MoveCache) BotService {
	return &botService{
		logger: logger.With("component", "bot"),
		engines: map[entity.Mark]*tictactoe.Engine{
			entity.PlayerX: tictactoe.NewEngine(entity.PlayerX, rnd),
			entity.PlayerO: tictactoe.NewEngine(entity.PlayerO, rnd),
		},
		cache: cache,
	}
}

func (that *botService) MakeTurn(ctx context.Context, game *entity.Game) (int, error) {
	if game.IsFinished() {
		return tictactoe.NoMove, apperror.ErrGameFinished
	}

	engine, ok := that.engines[game.AIMark]
	if !ok {
		return tictactoe.NoMove, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, game.AIMark)
	}

	if game.Turn != game.AIMark {
		return tictactoe.NoMove, apperror.ErrNotYourTurn
	}

	if entity.IsFull(game.Board) {
		return tictactoe.NoMove, apperror.ErrNoAvailableMoves
	}

	strategy := engine.Strategy(game.Difficulty)

	var cell int
	if strategy == tictactoe.StrategyOptimal {
		cell = that.bestMove(ctx, engine, game.Board)
	} else {
		cell = engine.RandomMove(game.Board)
	}

	if err := game.MakeTurn(game.AIMark, cell); err != nil {
		return tictactoe.NoMove, fmt.Errorf("bot failed to make turn: %w", err)
	}

	that.logger.Debug("bot made turn",
		"game_id", game.ID,
		"difficulty", game.Difficulty.String(),
		"strategy", strategy.String(),
		"cell", cell,
	)

	return cell, nil
}

// bestMove - cache failures never block the game; the move is searched instead.
func (that *botService) bestMove(ctx context.Context, engine *tictactoe.Engine, board entity.Board) int {
	if that.cache == nil {
		return engine.BestMove(board)
	}

	key := repository.MoveKey(engine.AIMark(), board)

	cell, err := that.cache.Get(ctx, key)
	if err == nil && cell >= 0 && cell < entity.BoardSize && board[cell] == entity.EmptyCell {
		return cell
	}

	if err != nil && !errors.Is(err, apperror.ErrMoveNotCached) {
		that.logger.Warn("could not read move cache", "key", key, "error", err)
	}

	cell = engine.BestMove(board)

	if err = that.cache.Set(ctx, key, cell); err != nil {
		that.logger.Warn("could not write move cache", "key", key, "error", err)
	}

	return cell
}
