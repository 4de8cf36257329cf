package switchboard_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/switchboard"
	"github.com/aretw0/switchboard/internal/logging"
	"github.com/aretw0/switchboard/pkg/adapters/memory"
	"github.com/aretw0/switchboard/pkg/domain"
	"github.com/aretw0/switchboard/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_UsesClock(t *testing.T) {
	until := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []domain.Record{{Name: "promo", Enabled: true, Until: &until}}

	before := func() time.Time { return until.Add(-time.Hour) }
	after := func() time.Time { return until.Add(time.Hour) }

	toggles, err := switchboard.Load(records, switchboard.WithClock(before))
	require.NoError(t, err)
	assert.True(t, toggles[0].IsEnabled())

	toggles, err = switchboard.Load(records, switchboard.WithClock(after))
	require.NoError(t, err)
	assert.False(t, toggles[0].IsEnabled())
}

func TestBoard_FileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "toggles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- name: A
  enabled: true
- name: B
  enabled: true
  dependencies: A
`), 0644))

	board, err := switchboard.New(path)
	require.NoError(t, err)
	assert.Equal(t, "toggles.yaml", board.Name)
	assert.Empty(t, board.Toggles(), "nothing is loaded before Reload")

	require.NoError(t, board.Reload(context.Background()))
	require.Len(t, board.Toggles(), 2)
	assert.True(t, board.IsEnabled("B"))

	b, err := board.Lookup("B")
	require.NoError(t, err)
	require.Len(t, b.Dependencies(), 1)
	assert.Equal(t, "A", b.Dependencies()[0].Name())
}

func TestBoard_MissingFileIsEmpty(t *testing.T) {
	board, err := switchboard.New(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)

	require.NoError(t, board.Reload(context.Background()))
	assert.Empty(t, board.Toggles())
}

func TestBoard_EmptyPath(t *testing.T) {
	board, err := switchboard.New("")
	require.NoError(t, err)

	require.NoError(t, board.Reload(context.Background()))
	assert.Empty(t, board.Toggles())
	assert.False(t, board.IsEnabled("anything"))
}

func TestBoard_Lookup_NotFound(t *testing.T) {
	board, err := switchboard.New("", switchboard.WithSource(memory.NewSource()))
	require.NoError(t, err)

	_, err = board.Lookup("ghost")
	assert.ErrorIs(t, err, domain.ErrToggleNotFound)
}

func TestBoard_FailedReloadKeepsSnapshot(t *testing.T) {
	source := memory.NewSource(domain.Record{Name: "A", Enabled: true})
	board, err := switchboard.New("", switchboard.WithSource(source))
	require.NoError(t, err)
	require.NoError(t, board.Reload(context.Background()))

	source.Replace(domain.Record{Name: "A", Dependencies: []string{"missing"}})
	err = board.Reload(context.Background())
	assert.ErrorIs(t, err, domain.ErrMissingDependency)

	require.Len(t, board.Toggles(), 1)
	assert.True(t, board.IsEnabled("A"))
}

func TestBoard_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	source := memory.NewSource(domain.Record{Name: "A", Enabled: true})
	board, err := switchboard.New("", switchboard.WithSource(source), switchboard.WithMetrics(metrics))
	require.NoError(t, err)
	require.NoError(t, board.Reload(context.Background()))

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, mf := range families {
		if mf.GetName() == "switchboard_toggles" {
			found = true
			assert.Equal(t, 1.0, mf.GetMetric()[0].GetGauge().GetValue())
		}
	}
	assert.True(t, found)
}

type staticSource struct{}

func (staticSource) Records(ctx context.Context) ([]domain.Record, error) {
	return nil, nil
}

func TestBoard_WatchUnsupported(t *testing.T) {
	board, err := switchboard.New("", switchboard.WithSource(staticSource{}))
	require.NoError(t, err)

	_, err = board.Watch(context.Background())
	assert.ErrorIs(t, err, switchboard.ErrWatchUnsupported)

	assert.ErrorIs(t, board.AutoReload(context.Background()), switchboard.ErrWatchUnsupported)
}

func TestBoard_AutoReload(t *testing.T) {
	source := memory.NewSource(domain.Record{Name: "A"})
	board, err := switchboard.New("", switchboard.WithSource(source))
	require.NoError(t, err)
	require.NoError(t, board.Reload(context.Background()))
	require.False(t, board.IsEnabled("A"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- board.AutoReload(ctx) }()

	// Replace until the watcher is registered and the reload lands.
	require.Eventually(t, func() bool {
		source.Replace(domain.Record{Name: "A", Enabled: true})
		return board.IsEnabled("A")
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("AutoReload did not stop after cancel")
	}
}

func TestBoard_LogsChanges(t *testing.T) {
	var buf bytes.Buffer
	source := memory.NewSource(domain.Record{Name: "A"}, domain.Record{Name: "B"})
	board, err := switchboard.New("", switchboard.WithSource(source),
		switchboard.WithLogger(logging.NewWithWriter(&buf, slog.LevelDebug)))
	require.NoError(t, err)
	require.NoError(t, board.Reload(context.Background()))

	buf.Reset()
	source.Replace(domain.Record{Name: "A", Enabled: true}, domain.Record{Name: "C"})
	require.NoError(t, board.Reload(context.Background()))

	out := buf.String()
	assert.Contains(t, out, "toggles changed")
	assert.Contains(t, out, "added=[C]")
	assert.Contains(t, out, "removed=[B]")
	assert.Contains(t, out, "flipped=[A]")
}
