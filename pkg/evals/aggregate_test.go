package evals

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/evalboard/console/pkg/models"
)

func TestSummarizePerKeyMean(t *testing.T) {
	entry := models.ModelEntry{ID: "m", Name: "m", ModelName: "m"}
	detail := &models.ModelDetail{
		ID:        "m",
		CreatedAt: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Benchmarks: []models.BenchmarkSummary{
			{BenchmarkID: "b1", Metrics: map[string]float64{"a": 1, "b": 2}, TotalSamples: 10},
			{BenchmarkID: "b2", Metrics: map[string]float64{"a": 3}, TotalSamples: 5},
		},
	}

	sum := Summarize(entry, detail)
	assert.Equal(t, map[string]float64{"a": 2, "b": 2}, sum.SummaryMetrics)
	assert.Equal(t, 2, sum.BenchmarkCount)
	assert.Equal(t, 15, sum.TotalSamples)
	assert.Equal(t, []string{"b1", "b2"}, sum.BenchmarkIDs)
	assert.Equal(t, detail.CreatedAt, sum.CreatedAt)
}

func TestSummarizeEmptyBenchmarks(t *testing.T) {
	sum := Summarize(models.ModelEntry{ID: "m"}, &models.ModelDetail{ID: "m"})
	assert.Zero(t, sum.BenchmarkCount)
	assert.Zero(t, sum.TotalSamples)
	assert.Empty(t, sum.SummaryMetrics)
	assert.Empty(t, sum.BenchmarkIDs)
}
