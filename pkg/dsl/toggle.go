package dsl

import (
	"time"

	"github.com/aretw0/switchboard/pkg/domain"
)

// ToggleBuilder provides a fluent API for configuring a toggle.
type ToggleBuilder struct {
	record  domain.Record
	builder *Builder
}

// Enabled sets the base flag.
func (t *ToggleBuilder) Enabled() *ToggleBuilder {
	t.record.Enabled = true
	return t
}

// Disabled clears the base flag.
func (t *ToggleBuilder) Disabled() *ToggleBuilder {
	t.record.Enabled = false
	return t
}

// Established marks the toggle as permanently released.
func (t *ToggleBuilder) Established() *ToggleBuilder {
	t.record.Established = true
	return t
}

// From opens the date window at the given time (inclusive).
func (t *ToggleBuilder) From(from time.Time) *ToggleBuilder {
	t.record.From = &from
	return t
}

// Until closes the date window at the given time (inclusive).
func (t *ToggleBuilder) Until(until time.Time) *ToggleBuilder {
	t.record.Until = &until
	return t
}

// Between sets both bounds of the date window.
func (t *ToggleBuilder) Between(from, until time.Time) *ToggleBuilder {
	return t.From(from).Until(until)
}

// DependsOn appends dependency names.
func (t *ToggleBuilder) DependsOn(names ...string) *ToggleBuilder {
	t.record.Dependencies = append(t.record.Dependencies, names...)
	return t
}

// Add starts the next toggle on the same batch.
func (t *ToggleBuilder) Add(name string) *ToggleBuilder {
	return t.builder.Add(name)
}

// Build returns the underlying record.
// This is primarily used by the Builder, but exposed for advanced usage.
func (t *ToggleBuilder) Build() domain.Record {
	return t.record.Clone()
}
