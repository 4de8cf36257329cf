package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/switchboard/internal/validator"
)

// ErrEmptyBatch is returned by Push when the definitions are empty and
// emptying the stored list was not explicitly allowed.
var ErrEmptyBatch = errors.New("no toggles to publish; pass --allow-empty to clear the stored list")

// Push validates the definitions selected by opts and publishes them to the
// redis server at addr. It returns the number of published toggles.
//
// Unlike loading, a missing file or directory is an error here: publishing an
// absent source would wipe the stored list.
func Push(ctx context.Context, opts Options, addr string, allowEmpty bool) (int, error) {
	if opts.RedisAddr != "" {
		return 0, errors.New("push reads from --file or --dir; pass the target address as argument")
	}

	path := opts.File
	if opts.Dir != "" {
		path = opts.Dir
	}
	if path == "" {
		return 0, errors.New("no --file or --dir to publish")
	}
	if _, err := os.Stat(path); err != nil {
		return 0, fmt.Errorf("cannot read toggle definitions: %w", err)
	}

	records, err := ReadRecords(ctx, opts)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 && !allowEmpty {
		return 0, ErrEmptyBatch
	}
	if err := validator.ValidateRecords(records); err != nil {
		return 0, fmt.Errorf("validation failed:\n%w", err)
	}

	target := opts
	target.File, target.Dir, target.RedisAddr = "", "", addr
	source := NewRedisSource(target)
	defer source.Close()

	if err := source.Publish(ctx, records); err != nil {
		return 0, err
	}
	return len(records), nil
}
