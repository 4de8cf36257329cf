package validator

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/switchboard/pkg/domain"
)

// ValidateRecords checks a batch without building it and reports every problem
// found: unnamed and duplicate toggles, unresolved dependencies and dependency
// cycles (including self references). It returns nil for a valid batch.
//
// Loading only fails on the first missing dependency and accepts cycles; this
// is the stricter check meant for CI and the CLI.
func ValidateRecords(records []domain.Record) error {
	var errs []error

	names := make(map[string]struct{}, len(records))
	order := make([]string, 0, len(records))
	for i, rec := range records {
		if strings.TrimSpace(rec.Name) == "" {
			errs = append(errs, fmt.Errorf("toggle #%d: %w", i, domain.ErrMissingName))
			continue
		}
		if _, dup := names[rec.Name]; dup {
			errs = append(errs, &domain.DuplicateToggleError{Name: rec.Name})
			continue
		}
		names[rec.Name] = struct{}{}
		order = append(order, rec.Name)
	}

	graph := make(map[string][]string, len(records))
	for _, rec := range records {
		for _, raw := range rec.Dependencies {
			dep := strings.TrimSpace(raw)
			if _, ok := names[dep]; !ok {
				errs = append(errs, &domain.MissingDependencyError{Toggle: rec.Name, Dependency: dep})
				continue
			}
			graph[rec.Name] = append(graph[rec.Name], dep)
		}
	}

	errs = append(errs, findCycles(order, graph)...)

	return errors.Join(errs...)
}

func findCycles(order []string, graph map[string][]string) []error {
	const (
		unvisited = iota
		inProgress
		done
	)

	state := make(map[string]int, len(order))
	var stack []string
	var errs []error

	var visit func(name string)
	visit = func(name string) {
		state[name] = inProgress
		stack = append(stack, name)

		for _, next := range graph[name] {
			switch state[next] {
			case inProgress:
				start := slices.Index(stack, next)
				path := append(slices.Clone(stack[start:]), next)
				errs = append(errs, &domain.CycleError{Path: path})
			case unvisited:
				visit(next)
			}
		}

		stack = stack[:len(stack)-1]
		state[name] = done
	}

	for _, name := range order {
		if state[name] == unvisited {
			visit(name)
		}
	}

	return errs
}
