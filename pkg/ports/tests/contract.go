package tests

import (
	"context"
	"testing"

	"github.com/aretw0/switchboard/pkg/domain"
	"github.com/aretw0/switchboard/pkg/ports"
)

// RecordSourceContractTest is a reusable test suite that verifies if an adapter complies with ports.RecordSource.
// want holds the records the source was seeded with, in the order the source must return them.
func RecordSourceContractTest(t *testing.T, source ports.RecordSource, want []domain.Record) {
	t.Helper()

	t.Run("Records_Order", func(t *testing.T) {
		got, err := source.Records(context.Background())
		if err != nil {
			t.Fatalf("unexpected error reading records: %v", err)
		}
		if len(got) != len(want) {
			t.Fatalf("expected %d records, got %d", len(want), len(got))
		}
		for i := range want {
			if got[i].Name != want[i].Name {
				t.Errorf("record %d: got name %q, want %q", i, got[i].Name, want[i].Name)
			}
		}
	})

	t.Run("Records_Fields", func(t *testing.T) {
		got, err := source.Records(context.Background())
		if err != nil {
			t.Fatalf("unexpected error reading records: %v", err)
		}
		for i := range want {
			if i >= len(got) {
				return
			}
			w, g := want[i], got[i]
			if g.Enabled != w.Enabled || g.Established != w.Established {
				t.Errorf("%s: flags mismatch. got enabled=%v established=%v", w.Name, g.Enabled, g.Established)
			}
			if (g.From == nil) != (w.From == nil) || (g.From != nil && !g.From.Equal(*w.From)) {
				t.Errorf("%s: from mismatch. got %v, want %v", w.Name, g.From, w.From)
			}
			if (g.Until == nil) != (w.Until == nil) || (g.Until != nil && !g.Until.Equal(*w.Until)) {
				t.Errorf("%s: until mismatch. got %v, want %v", w.Name, g.Until, w.Until)
			}
			if len(g.Dependencies) != len(w.Dependencies) {
				t.Errorf("%s: expected %d dependencies, got %d", w.Name, len(w.Dependencies), len(g.Dependencies))
			}
		}
	})

	t.Run("Records_Repeatable", func(t *testing.T) {
		first, err := source.Records(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := source.Records(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(first) != len(second) {
			t.Errorf("source returned %d then %d records", len(first), len(second))
		}
	})
}
