package domain

import "time"

// Kind identifies the base variant of a toggle.
type Kind string

const (
	// KindBoolean is enabled iff its base flag is set.
	KindBoolean Kind = "boolean"
	// KindDateRange is enabled iff its base flag is set and now falls inside the window.
	KindDateRange Kind = "date_range"
	// KindEstablished is permanently enabled.
	KindEstablished Kind = "established"
)

// Clock returns the current evaluation time.
type Clock func() time.Time

// Toggle is a named feature switch.
//
// A toggle has exactly one base Kind. Independently of its kind it may be
// dependent, in which case it is only enabled when every attached dependency
// is enabled as well. Dependencies are shared pointers into the same batch,
// so a toggle appearing in several dependency lists is evaluated consistently.
type Toggle struct {
	name    string
	kind    Kind
	enabled bool
	from    *time.Time
	until   *time.Time
	clock   Clock

	dependent    bool
	dependencies []*Toggle
}

// NewBoolean creates a toggle that follows its base flag.
func NewBoolean(name string, enabled bool) *Toggle {
	return &Toggle{name: name, kind: KindBoolean, enabled: enabled}
}

// NewEstablished creates a toggle that is always enabled.
func NewEstablished(name string) *Toggle {
	return &Toggle{name: name, kind: KindEstablished, enabled: true}
}

// NewDateRange creates a toggle bounded by an inclusive window.
// A nil bound leaves that side open. A nil clock falls back to time.Now.
func NewDateRange(name string, enabled bool, from, until *time.Time, clock Clock) *Toggle {
	return &Toggle{
		name:    name,
		kind:    KindDateRange,
		enabled: enabled,
		from:    from,
		until:   until,
		clock:   clock,
	}
}

// Wrap returns a dependent copy of inner with no dependencies attached yet.
func Wrap(inner *Toggle) *Toggle {
	t := *inner
	t.dependent = true
	t.dependencies = nil
	return &t
}

// AddDependency attaches dep. A second dependency with the same name is ignored.
// It is a no-op on toggles that are not dependent.
func (t *Toggle) AddDependency(dep *Toggle) {
	if !t.dependent || dep == nil {
		return
	}
	for _, existing := range t.dependencies {
		if existing.name == dep.name {
			return
		}
	}
	t.dependencies = append(t.dependencies, dep)
}

func (t *Toggle) Name() string { return t.name }
func (t *Toggle) Kind() Kind   { return t.kind }

// Enabled returns the base flag as declared, before dates and dependencies apply.
func (t *Toggle) Enabled() bool { return t.enabled }

func (t *Toggle) From() *time.Time  { return t.from }
func (t *Toggle) Until() *time.Time { return t.until }

// IsDependent reports whether the toggle carries the dependency capability.
func (t *Toggle) IsDependent() bool { return t.dependent }

// Dependencies returns the attached dependencies in declaration order.
func (t *Toggle) Dependencies() []*Toggle {
	out := make([]*Toggle, len(t.dependencies))
	copy(out, t.dependencies)
	return out
}

// IsEnabled evaluates the toggle at the current time. The result is never cached.
// Toggles that depend on themselves, directly or through a cycle, evaluate to false.
func (t *Toggle) IsEnabled() bool {
	return t.evaluate(nil)
}

func (t *Toggle) evaluate(visiting map[*Toggle]struct{}) bool {
	if !t.baseEnabled() {
		return false
	}
	if !t.dependent {
		return true
	}

	if _, ok := visiting[t]; ok {
		return false
	}
	if visiting == nil {
		visiting = make(map[*Toggle]struct{})
	}
	visiting[t] = struct{}{}
	defer delete(visiting, t)

	for _, dep := range t.dependencies {
		if !dep.evaluate(visiting) {
			return false
		}
	}
	return true
}

func (t *Toggle) baseEnabled() bool {
	switch t.kind {
	case KindEstablished:
		return true
	case KindDateRange:
		return t.enabled && t.inWindow(t.now())
	default:
		return t.enabled
	}
}

func (t *Toggle) inWindow(now time.Time) bool {
	if t.from != nil && now.Before(*t.from) {
		return false
	}
	if t.until != nil && now.After(*t.until) {
		return false
	}
	return true
}

func (t *Toggle) now() time.Time {
	if t.clock == nil {
		return time.Now()
	}
	return t.clock()
}
