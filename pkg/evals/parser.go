package evals

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/evalboard/console/pkg/models"
)

// Canonical raw file shapes. The date group keeps files from distinct runs
// apart; lexical order on YYYYMMDD is chronological order, so a plain
// directory listing already visits runs oldest-first.
var (
	metricsFileRe   = regexp.MustCompile(`^metrics_(\d{8})\.json$`)
	responsesFileRe = regexp.MustCompile(`^(.+)_responses_(\d{8})\.json$`)
)

// Parser converts one model's raw result files into a ModelDetail.
type Parser struct {
	rawRoot string
}

// NewParser creates a parser rooted at the raw results directory.
func NewParser(rawRoot string) *Parser {
	return &Parser{rawRoot: rawRoot}
}

// ModelDir resolves the raw directory for an identifier. The identifier is
// normalized first because it may arrive multiply percent-encoded.
func (p *Parser) ModelDir(id string) string {
	return filepath.Join(p.rawRoot, NormalizeID(id))
}

// Parse reads a model's raw directory and builds its canonical detail.
// A missing directory or a directory with no recognizable benchmark files
// yields (nil, nil): the model has no data, which is not a failure. Read or
// decode errors on present files do propagate, so a broken file never turns
// into a silently empty result.
func (p *Parser) Parse(id string) (*models.ModelDetail, error) {
	dir := p.ModelDir(id)
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat model dir: %w", err)
	}

	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read model dir: %w", err)
	}

	var order []string
	counts := map[string]int{}
	merged := map[string]map[string]float64{}
	seen := map[string]bool{}

	record := func(benchID string) {
		if !seen[benchID] {
			seen[benchID] = true
			order = append(order, benchID)
		}
	}

	for _, d := range dirents {
		if d.IsDir() {
			continue
		}
		name := d.Name()
		path := filepath.Join(dir, name)

		if m := responsesFileRe.FindStringSubmatch(name); m != nil {
			records, err := decodeSampleRecords(path)
			if err != nil {
				return nil, fmt.Errorf("responses file %s: %w", name, err)
			}
			record(m[1])
			// later-dated runs overwrite earlier counts
			counts[m[1]] = len(records)
			continue
		}

		if metricsFileRe.MatchString(name) {
			doc, err := decodeMetricsDoc(path)
			if err != nil {
				return nil, fmt.Errorf("metrics file %s: %w", name, err)
			}
			// map iteration is unordered; sort so benchmarks that only
			// exist in a metrics file still land in a stable position
			keys := make([]string, 0, len(doc))
			for k := range doc {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, benchID := range keys {
				record(benchID)
				if merged[benchID] == nil {
					merged[benchID] = map[string]float64{}
				}
				for metric, v := range doc[benchID] {
					merged[benchID][metric] = v
				}
			}
			continue
		}
		// anything else is noise from the producing pipeline
	}

	if len(order) == 0 {
		return nil, nil
	}

	benchmarks := make([]models.BenchmarkSummary, 0, len(order))
	for _, benchID := range order {
		metrics := merged[benchID]
		if metrics == nil {
			metrics = map[string]float64{}
		}
		benchmarks = append(benchmarks, models.BenchmarkSummary{
			BenchmarkID:  benchID,
			Metrics:      metrics,
			TotalSamples: counts[benchID],
		})
	}

	return &models.ModelDetail{
		ID:         url.PathEscape(NormalizeID(id)),
		CreatedAt:  info.ModTime().UTC(),
		Benchmarks: benchmarks,
	}, nil
}

// decodeSampleRecords reads a responses file. Producing pipelines emit either
// a bare JSON array of sample objects or an object wrapping the array under
// "samples" or "responses".
func decodeSampleRecords(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var arr []map[string]any
	if err := json.Unmarshal(data, &arr); err == nil {
		return arr, nil
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unrecognized responses layout: %w", err)
	}
	for _, key := range []string{"samples", "responses"} {
		raw, ok := doc[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &arr); err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		return arr, nil
	}
	return []map[string]any{}, nil
}

// decodeMetricsDoc reads a metrics file: benchmark id -> metric name -> value.
// Only finite numbers survive; anything else (strings, nulls, nested blobs,
// NaN) is dropped so the cached artifact never carries non-finite values.
func decodeMetricsDoc(path string) (map[string]map[string]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	out := make(map[string]map[string]float64, len(doc))
	for benchID, rawEntry := range doc {
		var entry map[string]any
		if err := json.Unmarshal(rawEntry, &entry); err != nil {
			// top-level keys that are not metric objects are noise
			continue
		}
		metrics := map[string]float64{}
		for k, v := range entry {
			n, ok := v.(float64)
			if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
				continue
			}
			metrics[k] = n
		}
		out[benchID] = metrics
	}
	return out, nil
}
