package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/switchboard/internal/compiler"
	"github.com/aretw0/switchboard/pkg/domain"
)

// Loader adapts the Loam library to the Switchboard RecordSource interface.
// Every document in the repository defines one toggle.
type Loader struct {
	Repo   *loam.TypedRepository[ToggleMetadata]
	parser *compiler.Parser
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[ToggleMetadata]) *Loader {
	return &Loader{
		Repo:   repo,
		parser: compiler.NewParser(),
	}
}

// Open initializes a read-only Loam repository at path and wraps it.
func Open(path string) (*Loader, error) {
	repo, err := loam.Init(path,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[ToggleMetadata](repo)), nil
}

// Records lists every document, ordered by document ID.
// A toggle without an explicit name takes the document ID without extension.
func (l *Loader) Records(ctx context.Context) ([]domain.Record, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	sort.SliceStable(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })

	seen := make(map[string]string, len(docs))
	records := make([]domain.Record, 0, len(docs))

	for _, doc := range docs {
		name := strings.TrimSpace(doc.Data.Name)
		if name == "" {
			name = trimExtension(doc.ID)
		}

		// Collision Detection
		if existingPath, ok := seen[name]; ok {
			return nil, fmt.Errorf("collision detected: toggle '%s' is defined in both '%s' and '%s': %w",
				name, existingPath, doc.ID, domain.ErrDuplicateToggle)
		}
		seen[name] = doc.ID

		rec, err := l.parser.Decode(doc.Data.fields(name))
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", doc.ID, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

// Watch implements ports.Watchable.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- trimExtension(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
