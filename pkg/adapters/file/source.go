package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/switchboard/internal/compiler"
	"github.com/aretw0/switchboard/pkg/domain"
	"github.com/fsnotify/fsnotify"
)

// Source implements ports.RecordSource by reading a single JSON or YAML file.
type Source struct {
	Path   string
	parser *compiler.Parser
}

// New creates a file source. The format follows the file extension.
func New(path string) *Source {
	return &Source{Path: path, parser: compiler.NewParser()}
}

// Records reads and decodes the file on every call.
// An empty path, a missing file or an empty file all yield no records:
// missing configuration must not stop the host from starting.
func (s *Source) Records(ctx context.Context) ([]domain.Record, error) {
	if s.Path == "" {
		return []domain.Record{}, nil
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Record{}, nil
		}
		return nil, fmt.Errorf("failed to read toggles file: %w", err)
	}

	records, err := s.parser.Parse(data, compiler.FormatFromPath(s.Path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(s.Path), err)
	}
	return records, nil
}

// Watch implements ports.Watchable.
// The parent directory is watched rather than the file itself, so editors that
// save by rename and files created after startup are both picked up.
func (s *Source) Watch(ctx context.Context) (<-chan string, error) {
	if s.Path == "" {
		return nil, fmt.Errorf("no file to watch")
	}

	abs, err := filepath.Abs(s.Path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != abs || evt.Op == fsnotify.Chmod {
					continue
				}
				select {
				case ch <- filepath.Base(abs):
				default:
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return ch, nil
}
