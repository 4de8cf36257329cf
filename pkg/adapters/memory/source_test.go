package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/switchboard/internal/compiler"
	"github.com/aretw0/switchboard/pkg/adapters/memory"
	"github.com/aretw0/switchboard/pkg/domain"
	contract "github.com/aretw0/switchboard/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_Contract(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []domain.Record{
		{Name: "a", Enabled: true},
		{Name: "b", From: &from},
		{Name: "c", Established: true, Dependencies: []string{"a", "b"}},
	}

	contract.RecordSourceContractTest(t, memory.NewSource(records...), records)
}

func TestSource_IsolatedFromCaller(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	records := []domain.Record{{Name: "a", From: &from, Until: &until, Dependencies: []string{"b"}}}
	src := memory.NewSource(records...)

	records[0].Name = "mutated"
	records[0].Dependencies[0] = "mutated"
	*records[0].From = from.AddDate(1, 0, 0)
	*records[0].Until = until.AddDate(1, 0, 0)

	got, err := src.Records(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a", got[0].Name)
	assert.Equal(t, []string{"b"}, got[0].Dependencies)
	assert.Equal(t, 2024, got[0].From.Year())
	assert.Equal(t, 2024, got[0].Until.Year())

	got[0].Name = "mutated again"
	got[0].Dependencies[0] = "mutated again"
	*got[0].From = from.AddDate(2, 0, 0)
	again, _ := src.Records(context.Background())
	assert.Equal(t, "a", again[0].Name)
	assert.Equal(t, []string{"b"}, again[0].Dependencies)
	assert.Equal(t, 2024, again[0].From.Year())
}

func TestSource_ReplaceIsolatedFromCaller(t *testing.T) {
	src := memory.NewSource()
	rec := domain.Record{Name: "a", Dependencies: []string{"b"}}
	src.Replace(rec)
	rec.Dependencies[0] = "mutated"

	got, _ := src.Records(context.Background())
	assert.Equal(t, []string{"b"}, got[0].Dependencies)
}

func TestSource_ReplaceWhileWatchersCancel(t *testing.T) {
	src := memory.NewSource()
	stop := make(chan struct{})
	var wg sync.WaitGroup

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					src.Replace(domain.Record{Name: "a"})
				}
			}
		}()
	}

	for i := 0; i < 2000; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		events, err := src.Watch(ctx)
		require.NoError(t, err)
		cancel()
		for range events {
		}
	}

	close(stop)
	wg.Wait()
}

func TestNewFromDocument(t *testing.T) {
	src, err := memory.NewFromDocument(compiler.FormatJSON, `[{"name":"x","enabled":true}]`)
	require.NoError(t, err)

	got, err := src.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Enabled)

	_, err = memory.NewFromDocument(compiler.FormatJSON, `not json`)
	assert.Error(t, err)
}

func TestSource_Watch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := memory.NewSource()

	events, err := src.Watch(ctx)
	require.NoError(t, err)

	src.Replace(domain.Record{Name: "new"})

	select {
	case <-events:
	case <-time.After(time.Second):
		t.Fatal("expected a change notification")
	}

	got, _ := src.Records(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].Name)

	cancel()
	select {
	case _, ok := <-events:
		assert.False(t, ok, "channel must close once the context is done")
	case <-time.After(time.Second):
		t.Fatal("watch channel was not closed")
	}
}
