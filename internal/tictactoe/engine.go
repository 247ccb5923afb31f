package tictactoe

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
)

// NoMove - returned when the board has no empty cell left.
const NoMove = -1

const winScore = 10

type Strategy int

const (
	StrategyRandom Strategy = iota
	StrategyOptimal
)

func (that Strategy) String() string {
	if that == StrategyOptimal {
		return "optimal"
	}
	return "random"
}

// Engine - picks moves for the AI side with exhaustive minimax search.
type Engine struct {
	aiMark    entity.Mark
	humanMark entity.Mark

	rnd *rand.Rand
}

// NewEngine - rnd is the only source of randomness; share one from NewRand between engines.
func NewEngine(aiMark entity.Mark, rnd *rand.Rand) *Engine {
	return &Engine{
		aiMark:    aiMark,
		humanMark: aiMark.Opponent(),
		rnd:       rnd,
	}
}

func (that *Engine) AIMark() entity.Mark {
	return that.aiMark
}

// Evaluate - minimax value of board from the AI's point of view.
// Wins score 10-depth and losses depth-10, so faster wins and slower losses are preferred.
func (that *Engine) Evaluate(board entity.Board, depth int, maximizing bool) int {
	return that.minimax(&board, depth, maximizing)
}

func (that *Engine) minimax(board *entity.Board, depth int, maximizing bool) int {
	// AI first: both can only hold on boards unreachable by legal play
	if entity.HasWon(*board, that.aiMark) {
		return winScore - depth
	}
	if entity.HasWon(*board, that.humanMark) {
		return depth - winScore
	}
	if entity.IsFull(*board) {
		return 0
	}

	bestScore, mark := math.MaxInt, that.humanMark
	if maximizing {
		bestScore, mark = math.MinInt, that.aiMark
	}

	for i, cell := range board {
		if cell != entity.EmptyCell {
			continue
		}

		board[i] = mark
		score := that.minimax(board, depth+1, !maximizing)
		board[i] = entity.EmptyCell

		if maximizing {
			bestScore = max(bestScore, score)
		} else {
			bestScore = min(bestScore, score)
		}
	}

	return bestScore
}

// BestMove - cell with the strictly greatest minimax score; the lowest index wins ties.
func (that *Engine) BestMove(board entity.Board) int {
	bestScore, bestMove := math.MinInt, NoMove

	for i, cell := range board {
		if cell != entity.EmptyCell {
			continue
		}

		board[i] = that.aiMark
		score := that.minimax(&board, 0, false)
		board[i] = entity.EmptyCell

		if score > bestScore {
			bestScore = score
			bestMove = i
		}
	}

	return bestMove
}

// RandomMove - uniformly random empty cell.
func (that *Engine) RandomMove(board entity.Board) int {
	cells := board.EmptyCells()
	if len(cells) == 0 {
		return NoMove
	}

	return cells[that.rnd.IntN(len(cells))]
}

// Strategy - resolves difficulty into the strategy for a single move.
// Medium flips a fair coin on every call; unknown levels behave like Easy.
func (that *Engine) Strategy(difficulty entity.Difficulty) Strategy {
	switch difficulty {
	case entity.Hard:
		return StrategyOptimal
	case entity.Medium:
		if that.rnd.IntN(2) == 0 {
			return StrategyOptimal
		}
		return StrategyRandom
	default:
		return StrategyRandom
	}
}

// ChooseMove - the AI's move for board at the given difficulty. Returns NoMove on a full board.
func (that *Engine) ChooseMove(board entity.Board, difficulty entity.Difficulty) int {
	if that.Strategy(difficulty) == StrategyOptimal {
		return that.BestMove(board)
	}
	return that.RandomMove(board)
}

type lockedSource struct {
	mu  sync.Mutex
	src rand.Source
}

func (that *lockedSource) Uint64() uint64 {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.src.Uint64()
}

// NewRand - process-wide random source, seeded once from the wall clock. Safe for concurrent use.
func NewRand() *rand.Rand {
	seed := uint64(time.Now().UnixNano()) //nolint: gosec // it's ok
	return NewRandWithSeed(seed)
}

func NewRandWithSeed(seed uint64) *rand.Rand {
	return rand.New(&lockedSource{src: rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)})
}
