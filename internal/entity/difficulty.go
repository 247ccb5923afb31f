package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
)

type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// ParseDifficulty - accepts "0", "1", "2" or the level names.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "0", "easy":
		return Easy, nil
	case "1", "medium":
		return Medium, nil
	case "2", "hard":
		return Hard, nil
	default:
		return Easy, fmt.Errorf("%w: %q", apperror.ErrUnknownDifficulty, s)
	}
}

func (that Difficulty) String() string {
	switch that {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return fmt.Sprintf("difficulty(%d)", int(that))
	}
}
