package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/aretw0/switchboard/internal/compiler"
	"github.com/aretw0/switchboard/pkg/domain"
)

// Source implements ports.RecordSource and ports.Watchable over records held in memory.
type Source struct {
	mu       sync.RWMutex
	records  []domain.Record
	watchers []chan string
}

// NewSource creates a source serving a copy of the given records.
func NewSource(records ...domain.Record) *Source {
	return &Source{records: cloneRecords(records)}
}

// NewFromDocument creates a source from a raw JSON or YAML document.
// This improves DX for tests and examples.
func NewFromDocument(format compiler.Format, document string) (*Source, error) {
	records, err := compiler.NewParser().Parse([]byte(document), format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return NewSource(records...), nil
}

// Records returns the current batch.
func (s *Source) Records(ctx context.Context) ([]domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRecords(s.records), nil
}

// Replace swaps the batch and notifies watchers.
func (s *Source) Replace(records ...domain.Record) {
	s.mu.Lock()
	s.records = cloneRecords(records)
	s.mu.Unlock()

	// Watchers are closed under the write lock, so sending under the read
	// lock never hits a closed channel.
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.watchers {
		select {
		case ch <- "memory":
		default:
			// A reload is already pending for this watcher.
		}
	}
}

// Watch implements ports.Watchable. The channel closes when ctx is done.
func (s *Source) Watch(ctx context.Context) (<-chan string, error) {
	ch := make(chan string, 1)

	s.mu.Lock()
	s.watchers = append(s.watchers, ch)
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		defer s.mu.Unlock()
		s.watchers = slices.DeleteFunc(s.watchers, func(c chan string) bool { return c == ch })
		close(ch)
	}()

	return ch, nil
}

func cloneRecords(records []domain.Record) []domain.Record {
	out := make([]domain.Record, len(records))
	for i, rec := range records {
		out[i] = rec.Clone()
	}
	return out
}
