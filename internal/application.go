package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-cli/internal/config"
	"github.com/rocketscienceinc/tictactoe-cli/internal/repository"
	"github.com/rocketscienceinc/tictactoe-cli/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-cli/internal/service"
	"github.com/rocketscienceinc/tictactoe-cli/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-cli/internal/transport/console"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs one game on stdin/stdout until it ends or a signal arrives.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return Play(ctx, logger, conf, os.Stdin, os.Stdout)
}

// Play - wires the game and plays it on in/out.
func Play(ctx context.Context, logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	cache, closeCache, err := newMoveCache(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeCache()

	rnd := tictactoe.NewRand()
	botService := service.NewBotService(logger, rnd, cache)
	gamePlayService := service.NewGamePlayService(logger, botService)
	gameConsole := console.New(logger, gamePlayService, in, out)

	settings := console.Settings{
		Difficulty: conf.Difficulty,
		HumanMark:  conf.HumanMark,
	}

	// run the game
	gameErrCh := make(chan error, 1)
	go func() {
		_, gameErr := gameConsole.Run(ctx, settings)
		gameErrCh <- gameErr
	}()

	select {
	case err = <-gameErrCh:
		if err != nil {
			return fmt.Errorf("game error: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// newMoveCache - redis when enabled, otherwise an in-process cache.
func newMoveCache(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.MoveCache, func(), error) {
	if !conf.MoveCache.Enabled {
		return repository.NewMemoryMoveCache(), func() {}, nil
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if conf.Redis.Host == "" || conf.Redis.Port == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeFn := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewRedisMoveCache(redisStorage.Connection, conf.MoveCache.TTL), closeFn, nil
}
