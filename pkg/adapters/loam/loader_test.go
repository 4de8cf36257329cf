package loam

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/switchboard/internal/testutils"
	"github.com/aretw0/switchboard/pkg/domain"
	"github.com/aretw0/switchboard/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, files map[string]string) *Loader {
	t.Helper()

	dir, repo := testutils.SetupTestRepo(t, loam.WithVersioning(false))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}

	return New(loam.NewTypedRepository[ToggleMetadata](repo))
}

func TestLoader_Contract(t *testing.T) {
	loader := seed(t, map[string]string{
		"a-checkout.md": `---
name: checkout
enabled: true
description: New checkout flow
---
Rolled out to everyone in Q3.`,
		"b-beta.yaml": `name: beta
enabled: true
dependencies:
  - checkout
`,
		"c-legacy.json": `{"name": "legacy", "established": true}`,
	})

	tests.RecordSourceContractTest(t, loader, []domain.Record{
		{Name: "checkout", Enabled: true},
		{Name: "beta", Enabled: true, Dependencies: []string{"checkout"}},
		{Name: "legacy", Established: true},
	})
}

func TestLoader_NameFallsBackToDocumentID(t *testing.T) {
	loader := seed(t, map[string]string{
		"implicit.md": `---
enabled: true
---
Name is implied from the filename`,
	})

	records, err := loader.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "implicit", records[0].Name)
	assert.True(t, records[0].Enabled)
}

func TestLoader_DateFields(t *testing.T) {
	loader := seed(t, map[string]string{
		"launch.md": `---
enabled: true
from: "2012-11-01"
until: "2012-11-02"
---
`,
	})

	records, err := loader.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].From)
	require.NotNil(t, records[0].Until)
	assert.Equal(t, 1, records[0].From.Day())
	assert.Equal(t, 2, records[0].Until.Day())
}

func TestLoader_Collision(t *testing.T) {
	loader := seed(t, map[string]string{
		"one.md":   "---\nname: same\n---\n",
		"two.json": `{"name": "same"}`,
	})

	_, err := loader.Records(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicateToggle))
	assert.Contains(t, err.Error(), "collision detected")
}

func TestTrimExtension(t *testing.T) {
	assert.Equal(t, "start", trimExtension("start.md"))
	assert.Equal(t, "nested/flag", trimExtension("nested/flag.yaml"))
	assert.Equal(t, "plain", trimExtension("plain"))
}
