package switchboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/switchboard/internal/runtime"
	"github.com/aretw0/switchboard/pkg/adapters/file"
	loamAdapter "github.com/aretw0/switchboard/pkg/adapters/loam"
	"github.com/aretw0/switchboard/pkg/adapters/memory"
	"github.com/aretw0/switchboard/pkg/domain"
	"github.com/aretw0/switchboard/pkg/observability"
	"github.com/aretw0/switchboard/pkg/ports"
)

// ErrWatchUnsupported is returned by Watch when the record source cannot be watched.
var ErrWatchUnsupported = errors.New("record source does not support watching")

// Board is the high-level entry point for the Switchboard library.
// It owns a record source and the toggle graph most recently loaded from it.
type Board struct {
	source  ports.RecordSource
	logger  *slog.Logger
	clock   domain.Clock
	metrics *observability.Metrics
	Name    string

	mu      sync.RWMutex
	toggles []*domain.Toggle
	index   map[string]*domain.Toggle
}

// Option defines a functional option for configuring the Board.
type Option func(*Board)

// WithSource injects a custom RecordSource, bypassing path based detection.
func WithSource(s ports.RecordSource) Option {
	return func(b *Board) {
		b.source = s
	}
}

// WithLogger sets a custom structured logger for the board.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Board) {
		b.logger = logger
	}
}

// WithClock sets the time source used by date range toggles.
func WithClock(clock domain.Clock) Option {
	return func(b *Board) {
		b.clock = clock
	}
}

// WithMetrics records every load on the given metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(b *Board) {
		b.metrics = m
	}
}

// Load materializes records into linked toggles.
// Only WithClock is meaningful here; other options are ignored.
func Load(records []domain.Record, opts ...Option) ([]*domain.Toggle, error) {
	b := &Board{}
	for _, opt := range opts {
		opt(b)
	}
	return runtime.Load(records, runtime.WithClock(b.clock))
}

// New initializes a Board.
// A directory path is opened as a Loam repository of toggle documents, any
// other path as a single JSON or YAML file. An empty path without WithSource
// gives a board with no toggles.
//
// New does not read the source; call Reload to load the first snapshot.
func New(path string, opts ...Option) (*Board, error) {
	b := &Board{index: map[string]*domain.Toggle{}}

	for _, opt := range opts {
		opt(b)
	}

	if b.source == nil {
		source, err := sourceForPath(path)
		if err != nil {
			return nil, err
		}
		b.source = source
	}

	if path != "" {
		b.Name = filepath.Base(path)
	}

	if b.logger == nil {
		b.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if b.Name != "" {
		b.logger = b.logger.With("board", b.Name)
	}

	return b, nil
}

func sourceForPath(path string) (ports.RecordSource, error) {
	if path == "" {
		return memory.NewSource(), nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err == nil && info.IsDir() {
		loader, err := loamAdapter.Open(absPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open toggle directory: %w", err)
		}
		return loader, nil
	}

	// Missing files are fine: the file source reports them as empty.
	return file.New(absPath), nil
}

// Reload reads the source and swaps in a freshly linked toggle graph.
// On failure the previous snapshot stays in place.
func (b *Board) Reload(ctx context.Context) error {
	start := time.Now()

	toggles, err := b.load(ctx)
	b.metrics.ObserveLoad(toggles, time.Since(start), err)
	if err != nil {
		b.logger.Error("toggle load failed", "err", err)
		return err
	}

	index := make(map[string]*domain.Toggle, len(toggles))
	for _, t := range toggles {
		index[t.Name()] = t
	}

	b.mu.Lock()
	previous := b.toggles
	b.toggles = toggles
	b.index = index
	b.mu.Unlock()

	b.logger.Info("toggles loaded", "toggles", len(toggles), "duration", time.Since(start))
	if diff := domain.Diff(domain.Statuses(previous), domain.Statuses(toggles)); diff != nil {
		b.logger.Debug("toggles changed",
			"added", diff.Added,
			"removed", diff.Removed,
			"flipped", diff.FlippedNames(),
		)
	}
	return nil
}

func (b *Board) load(ctx context.Context) ([]*domain.Toggle, error) {
	records, err := b.source.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	b.logger.Debug("records read", "records", len(records))

	return runtime.Load(records, runtime.WithClock(b.clock))
}

// Toggles returns the current snapshot in definition order.
func (b *Board) Toggles() []*domain.Toggle {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]*domain.Toggle, len(b.toggles))
	copy(out, b.toggles)
	return out
}

// Lookup returns the toggle with the given name from the current snapshot.
func (b *Board) Lookup(name string) (*domain.Toggle, error) {
	b.mu.RLock()
	t, ok := b.index[name]
	b.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrToggleNotFound, name)
	}
	return t, nil
}

// IsEnabled reports whether the named toggle is enabled right now.
// Unknown toggles are disabled.
func (b *Board) IsEnabled(name string) bool {
	t, err := b.Lookup(name)
	if err != nil {
		return false
	}
	return t.IsEnabled()
}

// Source returns the RecordSource used by the board.
func (b *Board) Source() ports.RecordSource {
	return b.source
}

// Watch returns a channel that signals when the underlying records change.
func (b *Board) Watch(ctx context.Context) (<-chan string, error) {
	if w, ok := b.source.(ports.Watchable); ok {
		return w.Watch(ctx)
	}
	return nil, ErrWatchUnsupported
}

// AutoReload reloads the board on every change signal until ctx is done.
// Failed reloads are logged and keep the previous snapshot.
func (b *Board) AutoReload(ctx context.Context) error {
	events, err := b.Watch(ctx)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-events:
			if !ok {
				return nil
			}
			b.logger.Debug("change detected", "event", evt)
			_ = b.Reload(ctx)
		}
	}
}
