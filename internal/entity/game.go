package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

// Game - one human vs AI session. The board is owned by the session; the engine only borrows it.
type Game struct {
	ID         string     `json:"id"`
	Board      Board      `json:"board"`
	Winner     Mark       `json:"winner"`
	Status     string     `json:"status"`
	Turn       Mark       `json:"player_turn"`
	HumanMark  Mark       `json:"human_mark"`
	AIMark     Mark       `json:"ai_mark"`
	Difficulty Difficulty `json:"difficulty"`
}

// NewGame - X always moves first.
func NewGame(id string, humanMark Mark, difficulty Difficulty) *Game {
	return &Game{
		ID:         id,
		Turn:       PlayerX,
		Status:     StatusOngoing,
		HumanMark:  humanMark,
		AIMark:     humanMark.Opponent(),
		Difficulty: difficulty,
	}
}

// DetermineGameResult - returns the winning mark, PlayerTie on a full board, or EmptyCell while the game goes on.
func (that *Game) DetermineGameResult() Mark {
	for _, mark := range []Mark{PlayerX, PlayerO} {
		if HasWon(that.Board, mark) {
			return mark
		}
	}

	if IsFull(that.Board) {
		return PlayerTie
	}

	return EmptyCell
}

func (that *Game) UpdateGameState(lastMark Mark) {
	switch winner := that.DetermineGameResult(); winner {
	// one player wins
	case PlayerX, PlayerO:
		that.Winner = winner
		that.Status = StatusFinished
		that.Turn = EmptyCell
	// tie
	case PlayerTie:
		that.Winner = PlayerTie
		that.Status = StatusFinished
		that.Turn = EmptyCell
	// game continue
	default:
		that.Status = StatusOngoing
		that.Turn = lastMark.Opponent()
	}
}

// MakeTurn - places mark on cell. A rejected turn leaves the game untouched.
func (that *Game) MakeTurn(mark Mark, cell int) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if cell < 0 || cell >= len(that.Board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if that.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if that.Board[cell] != EmptyCell {
		return apperror.ErrCellOccupied
	}

	that.Board[cell] = mark
	that.UpdateGameState(mark)

	return nil
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsHumanTurn() bool {
	return that.Turn == that.HumanMark
}

func (that *Game) IsDraw() bool {
	return that.IsFinished() && that.Winner == PlayerTie
}
