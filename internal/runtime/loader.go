package runtime

import "github.com/aretw0/switchboard/pkg/domain"

// LoaderOption configures a Load call.
type LoaderOption func(*loaderConfig)

type loaderConfig struct {
	clock domain.Clock
}

// WithClock sets the evaluation clock handed to date-range toggles.
func WithClock(clock domain.Clock) LoaderOption {
	return func(c *loaderConfig) {
		c.clock = clock
	}
}

// Load materializes records into a fully linked toggle graph.
//
// Every record is classified before any linking happens, so forward references
// resolve. The result preserves input order. On error no toggles are returned.
// Each call builds an independent graph.
func Load(records []domain.Record, opts ...LoaderOption) ([]*domain.Toggle, error) {
	cfg := &loaderConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if len(records) == 0 {
		return []*domain.Toggle{}, nil
	}

	entries := make([]Entry, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		if _, dup := seen[rec.Name]; dup {
			return nil, &domain.DuplicateToggleError{Name: rec.Name}
		}
		seen[rec.Name] = struct{}{}
		entries = append(entries, Entry{Record: rec, Toggle: Classify(rec, cfg.clock)})
	}

	if err := Link(entries); err != nil {
		return nil, err
	}

	toggles := make([]*domain.Toggle, len(entries))
	for i, e := range entries {
		toggles[i] = e.Toggle
	}
	return toggles, nil
}
