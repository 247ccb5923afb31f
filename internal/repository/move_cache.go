package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
)

// MoveCache - remembers optimal moves. An optimal move depends only on the board and the AI mark.
type MoveCache interface {
	Get(ctx context.Context, key string) (int, error)
	Set(ctx context.Context, key string, cell int) error
}

// MoveKey - cache key for the optimal move of aiMark on board.
func MoveKey(aiMark entity.Mark, board entity.Board) string {
	return fmt.Sprintf("move:%s:%s", aiMark, board.Key())
}

type redisMoveCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisMoveCache - ttl of zero keeps entries forever.
func NewRedisMoveCache(client *redis.Client, ttl time.Duration) MoveCache {
	return &redisMoveCache{
		client: client,
		ttl:    ttl,
	}
}

func (that *redisMoveCache) Get(ctx context.Context, key string) (int, error) {
	response, err := that.client.Get(ctx, key).Result()

	if errors.Is(err, redis.Nil) {
		return 0, apperror.ErrMoveNotCached
	}

	if err != nil {
		return 0, fmt.Errorf("failed to get move: %w", err)
	}

	cell, err := strconv.Atoi(response)
	if err != nil {
		return 0, fmt.Errorf("could not parse cached move %q: %w", response, err)
	}

	if cell < 0 || cell >= entity.BoardSize {
		return 0, fmt.Errorf("%w: cached cell %d", apperror.ErrInvalidCell, cell)
	}

	return cell, nil
}

func (that *redisMoveCache) Set(ctx context.Context, key string, cell int) error {
	if err := that.client.Set(ctx, key, cell, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set move: %w", err)
	}

	return nil
}

type memoryMoveCache struct {
	mu    sync.RWMutex
	moves map[string]int
}

func NewMemoryMoveCache() MoveCache {
	return &memoryMoveCache{
		moves: make(map[string]int),
	}
}

func (that *memoryMoveCache) Get(_ context.Context, key string) (int, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	cell, ok := that.moves[key]
	if !ok {
		return 0, apperror.ErrMoveNotCached
	}

	return cell, nil
}

func (that *memoryMoveCache) Set(_ context.Context, key string, cell int) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.moves[key] = cell

	return nil
}
