package runtime

import (
	"strings"

	"github.com/aretw0/switchboard/pkg/domain"
)

// Entry pairs a record with the toggle classified from it.
type Entry struct {
	Record domain.Record
	Toggle *domain.Toggle
}

// Link resolves the dependency names of every dependent toggle against the
// entries themselves and attaches the matching toggles, in declaration order.
//
// Names are trimmed and matched exactly. The first unresolved name aborts the
// whole link with a *domain.MissingDependencyError. Self references and cycles
// are attached like any other dependency.
func Link(entries []Entry) error {
	index := make(map[string]*domain.Toggle, len(entries))
	for _, e := range entries {
		if _, ok := index[e.Record.Name]; !ok {
			index[e.Record.Name] = e.Toggle
		}
	}

	for _, e := range entries {
		if !e.Toggle.IsDependent() {
			continue
		}
		for _, raw := range e.Record.Dependencies {
			name := strings.TrimSpace(raw)
			dep, ok := index[name]
			if !ok {
				return &domain.MissingDependencyError{Toggle: e.Record.Name, Dependency: name}
			}
			e.Toggle.AddDependency(dep)
		}
	}

	return nil
}
