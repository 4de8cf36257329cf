package domain

import "slices"

// SnapshotDiff represents the changes between two evaluated snapshots.
// It is designed to be serialized to JSON for logs and clients.
type SnapshotDiff struct {
	Added   []string `json:"added,omitempty"`
	Removed []string `json:"removed,omitempty"`

	// Flipped maps each surviving toggle whose evaluation changed to its new value.
	Flipped map[string]bool `json:"flipped,omitempty"`
}

// Diff calculates the difference between two status lists.
// If old is nil, every toggle in new counts as added (initial load).
// It returns nil when nothing changed.
func Diff(old, new []Status) *SnapshotDiff {
	before := make(map[string]Status, len(old))
	for _, s := range old {
		before[s.Name] = s
	}

	diff := &SnapshotDiff{}
	seen := make(map[string]bool, len(new))

	for _, s := range new {
		seen[s.Name] = true

		prev, exists := before[s.Name]
		if !exists {
			diff.Added = append(diff.Added, s.Name)
			continue
		}
		if prev.Enabled != s.Enabled {
			if diff.Flipped == nil {
				diff.Flipped = make(map[string]bool)
			}
			diff.Flipped[s.Name] = s.Enabled
		}
	}

	for _, s := range old {
		if !seen[s.Name] {
			diff.Removed = append(diff.Removed, s.Name)
		}
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// IsEmpty checks if the diff contains any change.
func (d *SnapshotDiff) IsEmpty() bool {
	return d == nil || (len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Flipped) == 0)
}

// FlippedNames returns the flipped toggle names in sorted order.
func (d *SnapshotDiff) FlippedNames() []string {
	if d == nil {
		return nil
	}
	names := make([]string, 0, len(d.Flipped))
	for name := range d.Flipped {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
