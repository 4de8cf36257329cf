package domain

import "time"

// Status is a serializable snapshot of a toggle, evaluated at a point in time.
// It is what adapters (HTTP, MCP, CLI) expose to the outside.
type Status struct {
	Name         string     `json:"name" yaml:"name"`
	Kind         Kind       `json:"kind" yaml:"kind"`
	Enabled      bool       `json:"enabled" yaml:"enabled"`
	BaseEnabled  bool       `json:"base_enabled" yaml:"base_enabled"`
	From         *time.Time `json:"from,omitempty" yaml:"from,omitempty"`
	Until        *time.Time `json:"until,omitempty" yaml:"until,omitempty"`
	Dependencies []string   `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
}

// Status evaluates the toggle and captures its shape.
func (t *Toggle) Status() Status {
	s := Status{
		Name:        t.name,
		Kind:        t.kind,
		Enabled:     t.IsEnabled(),
		BaseEnabled: t.enabled,
		From:        t.from,
		Until:       t.until,
	}
	for _, dep := range t.dependencies {
		s.Dependencies = append(s.Dependencies, dep.name)
	}
	return s
}

// Statuses evaluates every toggle in order.
func Statuses(toggles []*Toggle) []Status {
	out := make([]Status, 0, len(toggles))
	for _, t := range toggles {
		out = append(out, t.Status())
	}
	return out
}
