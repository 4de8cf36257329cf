package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/switchboard/internal/logging"
)

// ErrConflictingSources is returned when more than one record source is selected.
var ErrConflictingSources = errors.New("choose only one of --file, --dir or --redis")

// Options holds the source and logging flags shared by every command.
type Options struct {
	File      string
	Dir       string
	RedisAddr string
	RedisKey  string
	LogLevel  string
}

// Validate rejects flag combinations that select several sources.
func (o Options) Validate() error {
	n := 0
	for _, v := range []string{o.File, o.Dir, o.RedisAddr} {
		if v != "" {
			n++
		}
	}
	if n > 1 {
		return ErrConflictingSources
	}
	return nil
}

// Describe names the selected source for log and terminal output.
func (o Options) Describe() string {
	switch {
	case o.RedisAddr != "":
		return fmt.Sprintf("redis://%s", o.RedisAddr)
	case o.Dir != "":
		return o.Dir
	case o.File != "":
		return o.File
	}
	return "(none)"
}

// Logger builds the application logger for the configured level.
func (o Options) Logger() (*slog.Logger, error) {
	level, err := logging.ParseLevel(o.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.New(level), nil
}
