package evals

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCacheModel(t *testing.T, cacheRoot, model string, files []string) {
	t.Helper()
	dir := filepath.Join(cacheRoot, model)
	require.NoError(t, os.MkdirAll(dir, 0755))
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("{}"), 0644))
	}
}

func TestSweepDeletesExactlyLegacyFiles(t *testing.T) {
	cacheRoot := t.TempDir()
	writeCacheModel(t, cacheRoot, "gpt-4o", []string{
		"detail.json",
		"metrics_20240110.json",                 // canonical
		"mmlu_responses_20240110.json",          // canonical
		"gpt-4o_1_20231001.json",                // legacy metrics
		"gpt-4o_2_responses_20231001.json",      // legacy responses
		"other-model_1_20231001.json",           // wrong model, untouched
	})

	deleted, err := SweepLegacyArtifacts(cacheRoot)
	require.NoError(t, err)
	require.Len(t, deleted, 2)

	remaining, err := os.ReadDir(filepath.Join(cacheRoot, "gpt-4o"))
	require.NoError(t, err)
	names := []string{}
	for _, d := range remaining {
		names = append(names, d.Name())
	}
	assert.ElementsMatch(t, []string{
		"detail.json",
		"metrics_20240110.json",
		"mmlu_responses_20240110.json",
		"other-model_1_20231001.json",
	}, names)
}

func TestSweepIsIdempotent(t *testing.T) {
	cacheRoot := t.TempDir()
	writeCacheModel(t, cacheRoot, "m", []string{
		"m_1_20231001.json",
		"detail.json",
	})

	first, err := SweepLegacyArtifacts(cacheRoot)
	require.NoError(t, err)
	assert.Len(t, first, 1)

	second, err := SweepLegacyArtifacts(cacheRoot)
	require.NoError(t, err)
	assert.Empty(t, second)
}

func TestSweepHandlesUnderscoreAndDigitIDs(t *testing.T) {
	// a model id full of underscores and digit runs must not cause the
	// canonical shapes to match the legacy patterns
	cacheRoot := t.TempDir()
	writeCacheModel(t, cacheRoot, "llama_2_70b", []string{
		"metrics_20240110.json",
		"task_7_responses_20240110.json",     // canonical responses for benchmark task_7
		"llama_2_70b_3_20231001.json",        // legacy
		"llama_2_70b_3_responses_20231001.json", // legacy
	})

	deleted, err := SweepLegacyArtifacts(cacheRoot)
	require.NoError(t, err)
	require.Len(t, deleted, 2)
	for _, p := range deleted {
		assert.Contains(t, filepath.Base(p), "llama_2_70b_3")
	}
}

func TestSweepMissingCacheRoot(t *testing.T) {
	deleted, err := SweepLegacyArtifacts(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, deleted)
}

func TestSweepNeverTouchesRawNamespace(t *testing.T) {
	cacheRoot := t.TempDir()
	rawRoot := t.TempDir()
	writeRawModel(t, rawRoot, "m", map[string]string{
		"m_1_20231001.json": "{}",
	})
	writeCacheModel(t, cacheRoot, "m", []string{"m_1_20231001.json"})

	deleted, err := SweepLegacyArtifacts(cacheRoot)
	require.NoError(t, err)
	require.Len(t, deleted, 1)

	// the identically named raw file is untouched
	_, err = os.Stat(filepath.Join(rawRoot, "m", "m_1_20231001.json"))
	require.NoError(t, err)
}
