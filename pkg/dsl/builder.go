package dsl

import (
	"fmt"

	"github.com/aretw0/switchboard/pkg/adapters/memory"
	"github.com/aretw0/switchboard/pkg/domain"
)

// Builder manages the construction of a toggle batch.
type Builder struct {
	order   []string
	toggles map[string]*ToggleBuilder
}

// New creates a new batch builder.
func New() *Builder {
	return &Builder{
		toggles: make(map[string]*ToggleBuilder),
	}
}

// Add creates a new toggle in the batch.
// If the toggle already exists, it returns the existing builder.
func (b *Builder) Add(name string) *ToggleBuilder {
	if tb, ok := b.toggles[name]; ok {
		return tb
	}
	tb := &ToggleBuilder{
		record:  domain.Record{Name: name},
		builder: b,
	}
	b.toggles[name] = tb
	b.order = append(b.order, name)
	return tb
}

// Records returns the definitions in the order they were added.
func (b *Builder) Records() []domain.Record {
	records := make([]domain.Record, 0, len(b.order))
	for _, name := range b.order {
		records = append(records, b.toggles[name].Build())
	}
	return records
}

// Build compiles the batch into a memory source.
func (b *Builder) Build() (*memory.Source, error) {
	for _, name := range b.order {
		if name == "" {
			return nil, fmt.Errorf("failed to build memory source: %w", domain.ErrMissingName)
		}
	}
	return memory.NewSource(b.Records()...), nil
}
