package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingDependency is returned when a dependency name does not match any toggle in the batch.
var ErrMissingDependency = errors.New("missing dependency")

// ErrDuplicateToggle is returned when two records in one batch share a name.
var ErrDuplicateToggle = errors.New("duplicate toggle")

// ErrMissingName is returned when a record has no name.
var ErrMissingName = errors.New("toggle missing name")

// ErrToggleNotFound is returned when a lookup by name finds nothing.
var ErrToggleNotFound = errors.New("toggle not found")

// ErrDependencyCycle is reported by validation when dependencies form a cycle.
var ErrDependencyCycle = errors.New("dependency cycle")

// MissingDependencyError identifies the unresolved name and the toggle that declared it.
type MissingDependencyError struct {
	Toggle     string
	Dependency string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("could not find dependency with name %q (required by %q)", e.Dependency, e.Toggle)
}

func (e *MissingDependencyError) Unwrap() error { return ErrMissingDependency }

// DuplicateToggleError identifies a name defined more than once in a batch.
type DuplicateToggleError struct {
	Name string
}

func (e *DuplicateToggleError) Error() string {
	return fmt.Sprintf("toggle %q is defined more than once", e.Name)
}

func (e *DuplicateToggleError) Unwrap() error { return ErrDuplicateToggle }

// CycleError lists the toggle names forming a dependency cycle, in traversal order.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return "dependency cycle: " + strings.Join(e.Path, " -> ")
}

func (e *CycleError) Unwrap() error { return ErrDependencyCycle }
