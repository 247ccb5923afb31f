package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
)

type GamePlayService interface {
	NewGame(humanMark entity.Mark, difficulty entity.Difficulty) (*entity.Game, error)
	MakeHumanTurn(game *entity.Game, cell int) error
	MakeBotTurn(ctx context.Context, game *entity.Game) (int, error)
}

type gamePlayService struct {
	logger *slog.Logger

	botService BotService
}

func NewGamePlayService(logger *slog.Logger, botService BotService) GamePlayService {
	return &gamePlayService{
		logger:     logger.With("component", "gameplay"),
		botService: botService,
	}
}

func (that *gamePlayService) NewGame(humanMark entity.Mark, difficulty entity.Difficulty) (*entity.Game, error) {
	if humanMark != entity.PlayerX && humanMark != entity.PlayerO {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, humanMark)
	}

	game := entity.NewGame(uuid.NewString(), humanMark, difficulty)

	that.logger.Info("game created",
		"game_id", game.ID,
		"human_mark", string(game.HumanMark),
		"difficulty", difficulty.String(),
	)

	return game, nil
}

func (that *gamePlayService) MakeHumanTurn(game *entity.Game, cell int) error {
	if err := game.MakeTurn(game.HumanMark, cell); err != nil {
		return fmt.Errorf("failed to make turn: %w", err)
	}

	that.logFinished(game)

	return nil
}

func (that *gamePlayService) MakeBotTurn(ctx context.Context, game *entity.Game) (int, error) {
	cell, err := that.botService.MakeTurn(ctx, game)
	if err != nil {
		return cell, fmt.Errorf("failed to make bot turn: %w", err)
	}

	that.logFinished(game)

	return cell, nil
}

func (that *gamePlayService) logFinished(game *entity.Game) {
	if game.IsFinished() {
		that.logger.Info("game finished", "game_id", game.ID, "winner", string(game.Winner))
	}
}
