package handlers

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/evalboard/console/pkg/evals"
	"github.com/evalboard/console/pkg/store"
)

type testEnv struct {
	App      *fiber.App
	RawRoot  string
	CacheDir string
	Service  *evals.Service
}

// setupTestEnv creates a fresh Fiber app wired to an eval service over
// temporary raw/cache directories.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	rawRoot := t.TempDir()
	cacheDir := t.TempDir()

	svc := evals.NewService(rawRoot, store.NewFileCache(cacheDir), cacheDir)
	app := fiber.New()

	h := NewEvalHandlers(svc)
	app.Get("/api/evals/scan", h.ScanModels)
	app.Get("/api/evals/models", h.ListModels)
	app.Get("/api/evals/models/:id", h.GetModel)
	app.Get("/api/evals/models/:id/benchmarks/:benchmark/samples", h.GetSamples)
	app.Post("/api/evals/maintenance/legacy-cleanup", h.CleanupLegacy)

	return &testEnv{
		App:      app,
		RawRoot:  rawRoot,
		CacheDir: cacheDir,
		Service:  svc,
	}
}

// seedModel writes a raw model directory with one benchmark of n samples
// plus a matching metrics file.
func (env *testEnv) seedModel(t *testing.T, name, benchmark string, n int) {
	t.Helper()
	dir := filepath.Join(env.RawRoot, name)
	require.NoError(t, os.MkdirAll(dir, 0755))

	samples := "["
	for i := 0; i < n; i++ {
		if i > 0 {
			samples += ","
		}
		samples += fmt.Sprintf(`{"sample_key":"s%d","output":"p%d","label":"l%d"}`, i, i, i)
	}
	samples += "]"

	require.NoError(t, os.WriteFile(
		filepath.Join(dir, benchmark+"_responses_20240110.json"), []byte(samples), 0644))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "metrics_20240110.json"),
		[]byte(fmt.Sprintf(`{"%s": {"accuracy": 0.5}}`, benchmark)), 0644))
}
