package models

import "time"

// Modality describes the dominant asset type of a sample.
type Modality string

const (
	ModalityText  Modality = "text"
	ModalityImage Modality = "image"
	ModalityAudio Modality = "audio"
	ModalityVideo Modality = "video"
)

// ModelEntry is one discovered model directory under the raw results root.
// The ID is derived from the directory name and is stable for that directory;
// entries are recomputed on every scan and never persisted.
type ModelEntry struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ModelName string `json:"model_name"`
}

// BenchmarkSummary is the processed view of a single benchmark within a
// model's result set. Metrics hold only finite numeric values.
type BenchmarkSummary struct {
	BenchmarkID  string             `json:"benchmark_id"`
	Metrics      map[string]float64 `json:"metrics"`
	TotalSamples int                `json:"total_samples"`
}

// ModelDetail is the canonical cached artifact for one model. Benchmarks are
// kept in first-seen parse order, not sorted.
type ModelDetail struct {
	ID         string             `json:"id"`
	CreatedAt  time.Time          `json:"created_at"`
	Benchmarks []BenchmarkSummary `json:"benchmarks"`
}

// AssetRefs points at the media belonging to a sample, merged from the
// several raw layouts the producing pipelines emit.
type AssetRefs struct {
	ImagePath string `json:"image_path,omitempty"`
	AudioPath string `json:"audio_path,omitempty"`
	VideoPath string `json:"video_path,omitempty"`
	Text      string `json:"text,omitempty"`
}

// Sample is one evaluated instance within a benchmark. All fields except
// SampleKey are best-effort: raw response files disagree on key names, so
// values are resolved through ordered fallback lists (see pkg/evals).
type Sample struct {
	SampleKey  string     `json:"sample_key"`
	Input      string     `json:"input,omitempty"`
	Prediction string     `json:"prediction,omitempty"`
	Label      string     `json:"label,omitempty"`
	IsCorrect  *bool      `json:"is_correct,omitempty"`
	Score      *float64   `json:"score,omitempty"`
	ErrorType  string     `json:"error_type,omitempty"`
	Modality   Modality   `json:"modality,omitempty"`
	AssetRefs  *AssetRefs `json:"asset_refs,omitempty"`
}

// SamplePage is one page of samples plus the pagination cursor state.
type SamplePage struct {
	Samples []Sample `json:"samples"`
	Limit   int      `json:"limit"`
	Offset  int      `json:"offset"`
	Total   int      `json:"total"`
}

// HasMore reports whether another page exists past this one.
func (p *SamplePage) HasMore() bool {
	return p.Offset+len(p.Samples) < p.Total
}

// ModelSummary is the dashboard-facing projection of a processed model.
type ModelSummary struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	ModelName      string             `json:"model_name"`
	CreatedAt      time.Time          `json:"created_at"`
	BenchmarkIDs   []string           `json:"benchmark_ids"`
	BenchmarkCount int                `json:"benchmark_count"`
	TotalSamples   int                `json:"total_samples"`
	SummaryMetrics map[string]float64 `json:"summary_metrics"`
}
