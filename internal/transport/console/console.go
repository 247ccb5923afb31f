package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
	"github.com/rocketscienceinc/tictactoe-cli/internal/service"
)

var ErrInputClosed = errors.New("input closed")

// Settings - preset answers; empty fields are asked interactively.
type Settings struct {
	Difficulty string
	HumanMark  string
}

// Console - plays one game over a line-oriented reader and writer.
type Console struct {
	logger *slog.Logger

	gamePlayService service.GamePlayService

	in  *bufio.Scanner
	out io.Writer
}

func New(logger *slog.Logger, gamePlayService service.GamePlayService, in io.Reader, out io.Writer) *Console {
	return &Console{
		logger:          logger.With("component", "console"),
		gamePlayService: gamePlayService,
		in:              bufio.NewScanner(in),
		out:             out,
	}
}

// Run - plays a game to the end and returns the finished game.
func (that *Console) Run(ctx context.Context, settings Settings) (*entity.Game, error) {
	that.printf("Welcome to Advanced Tic Tac Toe!\n")

	difficulty, err := that.askDifficulty(settings.Difficulty)
	if err != nil {
		return nil, err
	}

	humanMark, err := that.askMark(settings.HumanMark)
	if err != nil {
		return nil, err
	}

	game, err := that.gamePlayService.NewGame(humanMark, difficulty)
	if err != nil {
		return nil, fmt.Errorf("could not create game: %w", err)
	}

	for !game.IsFinished() {
		if err = ctx.Err(); err != nil {
			return game, fmt.Errorf("game interrupted: %w", err)
		}

		that.printf("%s", game.Board)

		if game.IsHumanTurn() {
			if err = that.humanTurn(game); err != nil {
				return game, err
			}
			continue
		}

		that.printf("AI is thinking...\n")
		if _, err = that.gamePlayService.MakeBotTurn(ctx, game); err != nil {
			return game, fmt.Errorf("AI could not move: %w", err)
		}
	}

	that.printf("%s%s\n", game.Board, resultMessage(game))

	return game, nil
}

func (that *Console) humanTurn(game *entity.Game) error {
	that.printf("Your turn. Enter your move (1-9): ")

	line, err := that.readLine()
	if err != nil {
		return err
	}

	move, err := strconv.Atoi(line)
	if err != nil {
		that.printf("Invalid move. Try again.\n")
		return nil
	}

	// cells are numbered from 1 for the player
	if err = that.gamePlayService.MakeHumanTurn(game, move-1); err != nil {
		that.logger.Debug("rejected move", "game_id", game.ID, "input", line, "error", err)
		that.printf("Invalid move. Try again.\n")
	}

	return nil
}

func (that *Console) askDifficulty(preset string) (entity.Difficulty, error) {
	answer := preset
	if answer == "" {
		that.printf("Choose difficulty (0: Easy, 1: Medium, 2: Hard): ")

		line, err := that.readLine()
		if err != nil {
			return entity.Easy, err
		}
		answer = line
	}

	difficulty, err := entity.ParseDifficulty(answer)
	if err != nil {
		that.logger.Warn("unknown difficulty, falling back to easy", "input", answer)
		that.printf("Unknown difficulty, playing Easy.\n")
	}

	return difficulty, nil
}

func (that *Console) askMark(preset string) (entity.Mark, error) {
	if preset != "" {
		mark, err := entity.ParseMark(preset)
		if err == nil {
			return mark, nil
		}
		that.logger.Warn("ignoring configured mark", "input", preset, "error", err)
	}

	for {
		that.printf("Do you want to play as X or O? ")

		line, err := that.readLine()
		if err != nil {
			return entity.EmptyCell, err
		}

		mark, err := entity.ParseMark(line)
		if err == nil {
			return mark, nil
		}

		that.printf("Please enter X or O.\n")
	}
}

func (that *Console) readLine() (string, error) {
	if !that.in.Scan() {
		if err := that.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", ErrInputClosed
	}

	return strings.TrimSpace(that.in.Text()), nil
}

func (that *Console) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(that.out, format, args...); err != nil {
		that.logger.Error("could not write output", "error", err)
	}
}

func resultMessage(game *entity.Game) string {
	switch {
	case game.IsDraw():
		return "It's a draw!"
	case game.Winner == game.HumanMark:
		return "You win!"
	default:
		return "AI wins!"
	}
}
