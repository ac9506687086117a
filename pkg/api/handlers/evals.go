package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/evalboard/console/pkg/evals"
	"github.com/evalboard/console/pkg/models"
)

// EvalHandlers exposes the evaluation ingestion pipeline over HTTP.
type EvalHandlers struct {
	svc *evals.Service
}

// NewEvalHandlers creates a new eval handlers instance.
func NewEvalHandlers(svc *evals.Service) *EvalHandlers {
	return &EvalHandlers{svc: svc}
}

// ScanModels returns the discovered model entries without processing any.
// GET /api/evals/scan
func (h *EvalHandlers) ScanModels(c *fiber.Ctx) error {
	entries, err := h.svc.ScanModels()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"items":      entries,
		"totalCount": len(entries),
	})
}

// ListModels returns dashboard summaries for every processed model.
// GET /api/evals/models
func (h *EvalHandlers) ListModels(c *fiber.Ctx) error {
	summaries, err := h.svc.ListSummaries()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	if summaries == nil {
		summaries = []models.ModelSummary{}
	}
	return c.JSON(fiber.Map{
		"items":      summaries,
		"totalCount": len(summaries),
	})
}

// GetModel returns the processed detail for one model, parsing on a cache
// miss. The id may arrive multiply encoded; the service normalizes it.
// GET /api/evals/models/:id
func (h *EvalHandlers) GetModel(c *fiber.Ctx) error {
	id := c.Params("id")
	detail, err := h.svc.EnsureProcessed(id)
	if err != nil {
		log.Printf("[evals] processing %s failed: %v", id, err)
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	if detail == nil {
		return c.Status(404).JSON(fiber.Map{"error": "model has no evaluation data"})
	}
	return c.JSON(detail)
}

// GetSamples serves one page of raw samples for a model/benchmark pair.
// GET /api/evals/models/:id/benchmarks/:benchmark/samples?limit=&offset=
func (h *EvalHandlers) GetSamples(c *fiber.Ctx) error {
	modelID := c.Params("id")
	benchmarkID := c.Params("benchmark")
	limit := c.QueryInt("limit", evals.DefaultSampleLimit)
	offset := c.QueryInt("offset", 0)

	page, err := h.svc.GetSamples(modelID, benchmarkID, limit, offset)
	if err != nil {
		if errors.Is(err, evals.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		log.Printf("[evals] reading samples for %s/%s failed: %v", modelID, benchmarkID, err)
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"samples": page.Samples,
		"limit":   page.Limit,
		"offset":  page.Offset,
		"total":   page.Total,
		"hasMore": page.HasMore(),
	})
}

// CleanupLegacy runs the legacy-artifact sweep and reports what was deleted.
// POST /api/evals/maintenance/legacy-cleanup
func (h *EvalHandlers) CleanupLegacy(c *fiber.Ctx) error {
	runID := uuid.NewString()
	deleted, err := h.svc.CleanupLegacy()
	if err != nil {
		log.Printf("[evals] legacy sweep %s failed: %v", runID, err)
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	log.Printf("[evals] legacy sweep %s deleted %d files", runID, len(deleted))
	return c.JSON(fiber.Map{
		"run_id":       runID,
		"deleted":      deleted,
		"deletedCount": len(deleted),
	})
}
