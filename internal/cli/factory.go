package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/switchboard"
	"github.com/aretw0/switchboard/pkg/adapters/redis"
	"github.com/aretw0/switchboard/pkg/domain"
	"github.com/aretw0/switchboard/pkg/observability"
)

// CreateBoard initializes a Board for the selected source and loads it once.
// metrics may be nil.
func CreateBoard(ctx context.Context, opts Options, logger *slog.Logger, metrics *observability.Metrics) (*switchboard.Board, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	boardOpts := []switchboard.Option{
		switchboard.WithLogger(logger),
		switchboard.WithMetrics(metrics),
	}

	path := opts.File
	if opts.Dir != "" {
		path = opts.Dir
	}
	if opts.RedisAddr != "" {
		path = ""
		boardOpts = append(boardOpts, switchboard.WithSource(NewRedisSource(opts)))
	}

	board, err := switchboard.New(path, boardOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing board: %w", err)
	}

	if err := board.Reload(ctx); err != nil {
		return nil, err
	}
	return board, nil
}

// ReadRecords returns the raw records of the selected source without linking them.
func ReadRecords(ctx context.Context, opts Options) ([]domain.Record, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	if opts.RedisAddr != "" {
		source := NewRedisSource(opts)
		defer source.Close()
		return source.Records(ctx)
	}

	path := opts.File
	if opts.Dir != "" {
		path = opts.Dir
	}
	board, err := switchboard.New(path)
	if err != nil {
		return nil, err
	}
	return board.Source().Records(ctx)
}

// NewRedisSource connects to the redis server named by the flags.
func NewRedisSource(opts Options) *redis.Source {
	var redisOpts []redis.Option
	if opts.RedisKey != "" {
		redisOpts = append(redisOpts, redis.WithKey(opts.RedisKey))
	}
	return redis.New(opts.RedisAddr, "", 0, redisOpts...)
}
