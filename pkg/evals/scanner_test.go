package evals

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanModelsMissingRootIsEmpty(t *testing.T) {
	entries, err := ScanModels(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NotNil(t, entries)
}

func TestScanModelsListsOnlyDirectories(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "gpt-4o"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "llava 13b"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "stray.json"), []byte("{}"), 0644))

	entries, err := ScanModels(root)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byName := map[string]string{}
	for _, e := range entries {
		byName[e.Name] = e.ID
		assert.Equal(t, e.Name, e.ModelName)
	}
	assert.Equal(t, "gpt-4o", byName["gpt-4o"])
	// the id must be safe to embed in a path segment
	assert.Equal(t, "llava%2013b", byName["llava 13b"])
}

func TestScanModelsIDsAreStable(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "model-x"), 0755))

	first, err := ScanModels(root)
	require.NoError(t, err)
	second, err := ScanModels(root)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
