package evals

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
)

// legacyPatterns builds the two retired filename shapes for one model:
//
//	{model}_{n}_{YYYYMMDD}.json            (metrics)
//	{model}_{n}_responses_{YYYYMMDD}.json  (responses)
//
// Both were superseded by metrics_{date}.json and
// {benchmark_id}_responses_{date}.json. The model name is quoted before
// embedding and the patterns are anchored, so a model id containing
// underscores or digit runs cannot cause a collateral match against the
// canonical shapes.
func legacyPatterns(model string) []*regexp.Regexp {
	esc := regexp.QuoteMeta(model)
	return []*regexp.Regexp{
		regexp.MustCompile(`^` + esc + `_\d+_\d{8}\.json$`),
		regexp.MustCompile(`^` + esc + `_\d+_responses_\d{8}\.json$`),
	}
}

// SweepLegacyArtifacts walks every model directory in the cache namespace
// and deletes files matching the retired naming patterns. The raw results
// root is never touched. Individual deletion failures are logged and
// skipped so one locked file cannot abort the sweep. Returns the paths
// actually deleted; a second run with no new legacy files returns none.
func SweepLegacyArtifacts(cacheRoot string) ([]string, error) {
	dirents, err := os.ReadDir(cacheRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read cache root: %w", err)
	}

	deleted := []string{}
	for _, d := range dirents {
		if !d.IsDir() {
			continue
		}
		modelDir := filepath.Join(cacheRoot, d.Name())
		patterns := legacyPatterns(NormalizeID(d.Name()))

		files, err := os.ReadDir(modelDir)
		if err != nil {
			log.Printf("[sweeper] skipping %s: %v", modelDir, err)
			continue
		}
		for _, f := range files {
			if f.IsDir() || !matchesAny(patterns, f.Name()) {
				continue
			}
			path := filepath.Join(modelDir, f.Name())
			if err := os.Remove(path); err != nil {
				log.Printf("[sweeper] failed to delete %s: %v", path, err)
				continue
			}
			deleted = append(deleted, path)
		}
	}
	return deleted, nil
}

func matchesAny(patterns []*regexp.Regexp, name string) bool {
	for _, re := range patterns {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}
