package evals

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/evalboard/console/pkg/models"
)

// ErrNotFound marks a missing model directory or benchmark responses file.
var ErrNotFound = errors.New("not found")

const (
	// DefaultSampleLimit applies when a caller passes limit <= 0.
	DefaultSampleLimit = 50
	// MaxSampleLimit caps a single page so one request cannot materialize
	// an arbitrarily large slice of a big responses file.
	MaxSampleLimit = 500
)

// Field fallback tables. Raw response files come from several pipeline
// generations that disagree on key names; candidates are tried in priority
// order and the first non-empty value wins.
var (
	sampleKeyFields  = []string{"sample_key", "sample_id", "id", "key"}
	inputFields      = []string{"input", "prompt", "question"}
	predictionFields = []string{"output", "prediction", "answer", "response"}
	labelFields      = []string{"label", "target", "reference", "ground_truth"}

	// containers that may hold a nested per-sample metrics object
	metricsContainers = []string{"metrics", "sample_metrics", "eval"}
	// containers that may hold asset fields
	assetContainers = []string{"input_fields"}
)

// ReadSamples returns the [offset, offset+limit) slice of sample records for
// one benchmark of one model, straight from the newest raw responses file.
// Samples are deliberately never cached: they can be large and are accessed
// at arbitrary offsets. An offset past the end yields an empty page with the
// real total, not an error.
func (p *Parser) ReadSamples(modelID, benchmarkID string, limit, offset int) (*models.SamplePage, error) {
	if limit <= 0 {
		limit = DefaultSampleLimit
	}
	if limit > MaxSampleLimit {
		limit = MaxSampleLimit
	}
	if offset < 0 {
		offset = 0
	}

	dir := p.ModelDir(modelID)
	path, err := findResponsesFile(dir, NormalizeID(benchmarkID))
	if err != nil {
		return nil, err
	}

	records, err := decodeSampleRecords(path)
	if err != nil {
		return nil, fmt.Errorf("responses file %s: %w", filepath.Base(path), err)
	}

	total := len(records)
	page := &models.SamplePage{
		Samples: []models.Sample{},
		Limit:   limit,
		Offset:  offset,
		Total:   total,
	}
	if offset >= total {
		return page, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	for i := offset; i < end; i++ {
		page.Samples = append(page.Samples, normalizeSample(records[i], i))
	}
	return page, nil
}

// findResponsesFile locates {benchmarkID}_responses_{date}.json in the model
// directory, preferring the newest date when several runs exist.
func findResponsesFile(dir, benchmarkID string) (string, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("model directory: %w", ErrNotFound)
		}
		return "", fmt.Errorf("read model dir: %w", err)
	}

	re := regexp.MustCompile(`^` + regexp.QuoteMeta(benchmarkID) + `_responses_(\d{8})\.json$`)
	best := ""
	for _, d := range dirents {
		if d.IsDir() || !re.MatchString(d.Name()) {
			continue
		}
		// lexical comparison is chronological for YYYYMMDD names
		if d.Name() > best {
			best = d.Name()
		}
	}
	if best == "" {
		return "", fmt.Errorf("benchmark %q: %w", benchmarkID, ErrNotFound)
	}
	return filepath.Join(dir, best), nil
}

// normalizeSample flattens one raw record into the canonical Sample shape.
// idx is the record's absolute position, used to synthesize a key when the
// record carries none.
func normalizeSample(rec map[string]any, idx int) models.Sample {
	s := models.Sample{
		SampleKey:  firstString(rec, sampleKeyFields),
		Input:      firstString(rec, inputFields),
		Prediction: firstString(rec, predictionFields),
		Label:      firstString(rec, labelFields),
		ErrorType:  stringValue(rec["error_type"]),
	}
	if s.SampleKey == "" {
		s.SampleKey = fmt.Sprintf("sample_%d", idx)
	}

	if v, ok := boolField(rec, "is_correct", "correct"); ok {
		s.IsCorrect = &v
	}
	if v, ok := numberField(rec, "score"); ok {
		s.Score = &v
	}

	refs := models.AssetRefs{
		ImagePath: assetPath(rec, "image"),
		AudioPath: assetPath(rec, "audio"),
		VideoPath: assetPath(rec, "video"),
		Text:      assetText(rec),
	}
	if refs != (models.AssetRefs{}) {
		s.AssetRefs = &refs
	}

	s.Modality = inferModality(rec, refs)
	return s
}

func inferModality(rec map[string]any, refs models.AssetRefs) models.Modality {
	switch models.Modality(stringValue(rec["modality"])) {
	case models.ModalityText:
		return models.ModalityText
	case models.ModalityImage:
		return models.ModalityImage
	case models.ModalityAudio:
		return models.ModalityAudio
	case models.ModalityVideo:
		return models.ModalityVideo
	}
	switch {
	case refs.ImagePath != "":
		return models.ModalityImage
	case refs.AudioPath != "":
		return models.ModalityAudio
	case refs.VideoPath != "":
		return models.ModalityVideo
	}
	return models.ModalityText
}

// firstString walks the candidate keys in priority order and returns the
// first non-empty string-convertible value.
func firstString(rec map[string]any, keys []string) string {
	for _, k := range keys {
		if v := stringValue(rec[k]); v != "" {
			return v
		}
	}
	return ""
}

func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == math.Trunc(t) && !math.IsInf(t, 0) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	case bool:
		return fmt.Sprintf("%t", t)
	}
	return ""
}

// boolField checks the record itself, then the nested metrics containers.
func boolField(rec map[string]any, keys ...string) (bool, bool) {
	for _, k := range keys {
		if b, ok := rec[k].(bool); ok {
			return b, true
		}
	}
	for _, container := range metricsContainers {
		nested, ok := rec[container].(map[string]any)
		if !ok {
			continue
		}
		for _, k := range keys {
			if b, ok := nested[k].(bool); ok {
				return b, true
			}
		}
	}
	return false, false
}

// numberField checks the record itself, then the nested metrics containers.
func numberField(rec map[string]any, key string) (float64, bool) {
	if n, ok := finiteNumber(rec[key]); ok {
		return n, true
	}
	for _, container := range metricsContainers {
		if nested, ok := rec[container].(map[string]any); ok {
			if n, ok := finiteNumber(nested[key]); ok {
				return n, true
			}
		}
	}
	return 0, false
}

func finiteNumber(v any) (float64, bool) {
	n, ok := v.(float64)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// assetPath resolves the path for one asset kind (image/audio/video) from
// the layouts the pipelines emit: a flat "{kind}_path" string, a "{kind}"
// value that is either a string or an object carrying path/filepath/url,
// and the same shapes nested under an input_fields container.
func assetPath(rec map[string]any, kind string) string {
	if p := assetPathIn(rec, kind); p != "" {
		return p
	}
	for _, container := range assetContainers {
		if nested, ok := rec[container].(map[string]any); ok {
			if p := assetPathIn(nested, kind); p != "" {
				return p
			}
		}
	}
	return ""
}

func assetPathIn(rec map[string]any, kind string) string {
	if p, ok := rec[kind+"_path"].(string); ok && p != "" {
		return p
	}
	switch v := rec[kind].(type) {
	case string:
		return v
	case map[string]any:
		for _, k := range []string{"path", "filepath", "url"} {
			if p, ok := v[k].(string); ok && p != "" {
				return p
			}
		}
	}
	return ""
}

func assetText(rec map[string]any) string {
	for _, container := range assetContainers {
		if nested, ok := rec[container].(map[string]any); ok {
			if t, ok := nested["text"].(string); ok && t != "" {
				return t
			}
		}
	}
	if t, ok := rec["text"].(string); ok {
		return t
	}
	return ""
}
