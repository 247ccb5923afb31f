package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
)

type Mark string

const (
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
	PlayerTie Mark = "-"

	EmptyCell Mark = ""
)

const BoardSize = 9

// WinCombos - the 3 rows, 3 columns and 2 diagonals of the board.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board - 9 cells in row-major order, row = index/3, column = index%3.
type Board [BoardSize]Mark

// ParseMark - accepts "x" or "o" in any case.
func ParseMark(s string) (Mark, error) {
	switch Mark(strings.ToUpper(strings.TrimSpace(s))) {
	case PlayerX:
		return PlayerX, nil
	case PlayerO:
		return PlayerO, nil
	default:
		return EmptyCell, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, s)
	}
}

func (that Mark) Opponent() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// HasWon - reports whether mark owns all three cells of any winning combo.
// The mark must not be EmptyCell.
func HasWon(board Board, mark Mark) bool {
	for _, combo := range WinCombos {
		if board[combo[0]] == mark && board[combo[1]] == mark && board[combo[2]] == mark {
			return true
		}
	}
	return false
}

// IsFull - reports whether no empty cell is left.
func IsFull(board Board) bool {
	for _, cell := range board {
		if cell == EmptyCell {
			return false
		}
	}
	return true
}

// EmptyCells - indices of the empty cells in ascending order.
func (that Board) EmptyCells() []int {
	cells := make([]int, 0, len(that))
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}
	return cells
}

// Key - compact board encoding, "." for empty cells.
func (that Board) Key() string {
	var sb strings.Builder
	for _, cell := range that {
		if cell == EmptyCell {
			sb.WriteByte('.')
			continue
		}
		sb.WriteString(string(cell))
	}
	return sb.String()
}

func (that Board) String() string {
	var sb strings.Builder

	sb.WriteString("\n")
	for i := 0; i < len(that); i += 3 {
		fmt.Fprintf(&sb, " %s | %s | %s\n", that.cellString(i), that.cellString(i+1), that.cellString(i+2))
		if i < 6 {
			sb.WriteString("---+---+---\n")
		}
	}
	sb.WriteString("\n")

	return sb.String()
}

func (that Board) cellString(i int) string {
	if that[i] == EmptyCell {
		return " "
	}
	return string(that[i])
}
