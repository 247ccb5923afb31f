package console

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
	"github.com/rocketscienceinc/tictactoe-cli/internal/repository"
	"github.com/rocketscienceinc/tictactoe-cli/internal/service"
	"github.com/rocketscienceinc/tictactoe-cli/internal/tictactoe"
)

func newTestConsole(input string) (*Console, *bytes.Buffer) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	bot := service.NewBotService(logger, tictactoe.NewRandWithSeed(1), repository.NewMemoryMoveCache())
	out := &bytes.Buffer{}

	return New(logger, service.NewGamePlayService(logger, bot), strings.NewReader(input), out), out
}

func TestConsole_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("Perfect play against Hard is a draw", func(t *testing.T) {
		// Given: a human playing X with a drawing line against the hard AI
		c, out := newTestConsole("2\nx\n1\n9\n8\n3\n4\n")

		// When: the game is played
		game, err := c.Run(ctx, Settings{})

		// Then: the game ends in a draw
		require.NoError(t, err)
		assert.True(t, game.IsDraw())
		assert.True(t, entity.IsFull(game.Board))
		assert.Contains(t, out.String(), "It's a draw!")
		assert.NotContains(t, out.String(), "Invalid move")
	})

	t.Run("AI opens when the human plays O and wins", func(t *testing.T) {
		// Given: a human playing O who always tries the lowest cell numbers
		input := "2\no\n" + strings.Repeat("1\n2\n3\n4\n5\n6\n7\n8\n9\n", 5)
		c, out := newTestConsole(input)

		// When: the game is played
		game, err := c.Run(ctx, Settings{})

		// Then: the AI moved first and won
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, game.AIMark)
		assert.Equal(t, entity.PlayerX, game.Winner)
		assert.Contains(t, out.String(), "AI is thinking...")
		assert.Contains(t, out.String(), "Invalid move. Try again.")
		assert.Contains(t, out.String(), "AI wins!")
	})

	t.Run("Invalid moves are rejected without changing the board", func(t *testing.T) {
		// Given: out of range and non-numeric input before the input ends
		c, out := newTestConsole("0\nx\n0\n10\nabc\n")

		// When: the game is played
		game, err := c.Run(ctx, Settings{})

		// Then: every move was rejected and the board is still empty
		require.ErrorIs(t, err, ErrInputClosed)
		assert.Equal(t, 3, strings.Count(out.String(), "Invalid move. Try again."))
		assert.Equal(t, entity.Board{}, game.Board)
		assert.True(t, game.IsHumanTurn())
	})

	t.Run("Occupied cell is rejected", func(t *testing.T) {
		// Given: the human plays cell 1 twice
		c, out := newTestConsole("2\nx\n1\n1\n")

		// When: the game is played until the input ends
		game, err := c.Run(ctx, Settings{})

		// Then: the second move was rejected
		require.ErrorIs(t, err, ErrInputClosed)
		assert.Equal(t, 1, strings.Count(out.String(), "Invalid move. Try again."))
		assert.Len(t, game.Board.EmptyCells(), 7)
	})

	t.Run("Invalid mark is asked again", func(t *testing.T) {
		c, out := newTestConsole("1\nz\nO\n")

		game, err := c.Run(ctx, Settings{})

		require.ErrorIs(t, err, ErrInputClosed)
		assert.Contains(t, out.String(), "Please enter X or O.")
		assert.Equal(t, entity.PlayerO, game.HumanMark)
	})

	t.Run("Unknown difficulty falls back to Easy", func(t *testing.T) {
		c, out := newTestConsole("9\nx\n")

		game, err := c.Run(ctx, Settings{})

		require.ErrorIs(t, err, ErrInputClosed)
		assert.Contains(t, out.String(), "Unknown difficulty, playing Easy.")
		assert.Equal(t, entity.Easy, game.Difficulty)
	})

	t.Run("Preset settings skip the questions", func(t *testing.T) {
		c, out := newTestConsole("")

		game, err := c.Run(ctx, Settings{Difficulty: "hard", HumanMark: "x"})

		require.ErrorIs(t, err, ErrInputClosed)
		assert.NotContains(t, out.String(), "Choose difficulty")
		assert.NotContains(t, out.String(), "Do you want to play as X or O?")
		assert.Equal(t, entity.Hard, game.Difficulty)
		assert.Equal(t, entity.PlayerX, game.HumanMark)
	})

	t.Run("Cancelled context stops the game", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		c, _ := newTestConsole("")

		_, err := c.Run(cancelled, Settings{Difficulty: "0", HumanMark: "o"})

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Closed input while asking", func(t *testing.T) {
		c, _ := newTestConsole("")

		game, err := c.Run(ctx, Settings{})

		require.ErrorIs(t, err, ErrInputClosed)
		assert.Nil(t, game)
	})
}
