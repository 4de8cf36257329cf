package domain

import (
	"slices"
	"time"
)

// Record is the raw definition of a single toggle as produced by a source.
// It carries no behaviour; the runtime classifies it into a Toggle.
type Record struct {
	Name        string `json:"name" yaml:"name" mapstructure:"name"`
	Enabled     bool   `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	Established bool   `json:"established,omitempty" yaml:"established,omitempty" mapstructure:"established"`

	// From and Until bound the window of a date-range toggle. Either may be nil.
	From  *time.Time `json:"from,omitempty" yaml:"from,omitempty" mapstructure:"from"`
	Until *time.Time `json:"until,omitempty" yaml:"until,omitempty" mapstructure:"until"`

	// Dependencies lists toggle names resolved within the same batch.
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty" mapstructure:"dependencies"`
}

// HasDates reports whether either bound of the date window is set.
func (r Record) HasDates() bool {
	return r.From != nil || r.Until != nil
}

// HasDependencies reports whether the record names at least one dependency.
func (r Record) HasDependencies() bool {
	return len(r.Dependencies) > 0
}

// Clone returns a deep copy: the dependency list and date bounds are not
// shared with r.
func (r Record) Clone() Record {
	out := r
	out.Dependencies = slices.Clone(r.Dependencies)
	if r.From != nil {
		from := *r.From
		out.From = &from
	}
	if r.Until != nil {
		until := *r.Until
		out.Until = &until
	}
	return out
}
