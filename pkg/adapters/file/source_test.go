package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/switchboard/pkg/adapters/file"
	"github.com/aretw0/switchboard/pkg/domain"
	contract "github.com/aretw0/switchboard/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestSource_Contract_JSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "features.json", `[
  {"name": "a", "enabled": true},
  {"name": "b", "established": true},
  {"name": "c", "dependencies": ["a", "b"]}
]`)

	contract.RecordSourceContractTest(t, file.New(path), []domain.Record{
		{Name: "a", Enabled: true},
		{Name: "b", Established: true},
		{Name: "c", Dependencies: []string{"a", "b"}},
	})
}

func TestSource_Contract_YAML(t *testing.T) {
	until := time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)
	path := writeFile(t, t.TempDir(), "features.yaml", `
- name: launch
  enabled: true
  until: 2030-06-01T00:00:00Z
`)

	contract.RecordSourceContractTest(t, file.New(path), []domain.Record{
		{Name: "launch", Enabled: true, Until: &until},
	})
}

func TestSource_AbsentInputIsEmpty(t *testing.T) {
	dir := t.TempDir()

	cases := map[string]*file.Source{
		"no path":      file.New(""),
		"missing file": file.New(filepath.Join(dir, "missing.json")),
		"empty file":   file.New(writeFile(t, dir, "empty.json", "")),
	}

	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			records, err := src.Records(context.Background())
			require.NoError(t, err)
			assert.NotNil(t, records)
			assert.Empty(t, records)
		})
	}
}

func TestSource_MalformedFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "broken.json", `[{"name": `)

	_, err := file.New(path).Records(context.Background())
	assert.ErrorContains(t, err, "broken.json")
}

func TestSource_Watch(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "features.json", `[]`)
	writeFile(t, dir, "other.json", `[]`)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := file.New(path).Watch(ctx)
	require.NoError(t, err)

	writeFile(t, dir, "features.json", `[{"name": "a"}]`)

	select {
	case id := <-events:
		assert.Equal(t, "features.json", id)
	case <-time.After(5 * time.Second):
		t.Fatal("expected a change notification")
	}
}
