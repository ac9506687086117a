package evals

import "github.com/evalboard/console/pkg/models"

// Summarize projects a processed model detail into its dashboard summary.
// summary_metrics holds, for each metric key, the arithmetic mean across the
// benchmarks that define that key; a benchmark missing a key contributes
// nothing to that key's denominator.
func Summarize(entry models.ModelEntry, detail *models.ModelDetail) models.ModelSummary {
	sums := map[string]float64{}
	counts := map[string]int{}
	totalSamples := 0
	benchmarkIDs := make([]string, 0, len(detail.Benchmarks))

	for _, b := range detail.Benchmarks {
		benchmarkIDs = append(benchmarkIDs, b.BenchmarkID)
		totalSamples += b.TotalSamples
		for k, v := range b.Metrics {
			sums[k] += v
			counts[k]++
		}
	}

	summaryMetrics := make(map[string]float64, len(sums))
	for k, sum := range sums {
		summaryMetrics[k] = sum / float64(counts[k])
	}

	return models.ModelSummary{
		ID:             entry.ID,
		Name:           entry.Name,
		ModelName:      entry.ModelName,
		CreatedAt:      detail.CreatedAt,
		BenchmarkIDs:   benchmarkIDs,
		BenchmarkCount: len(detail.Benchmarks),
		TotalSamples:   totalSamples,
		SummaryMetrics: summaryMetrics,
	}
}
