package evals

import (
	"log"
	"net/url"
	"sync"
	"time"

	"github.com/evalboard/console/pkg/metrics"
	"github.com/evalboard/console/pkg/models"
	"github.com/evalboard/console/pkg/store"
)

// Service is the facade over discovery, parsing, caching and aggregation.
// All operations are safe for concurrent use; processing for a single id is
// serialized so racing requests do not run duplicate parses.
type Service struct {
	parser    *Parser
	cache     store.Cache
	cacheRoot string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService creates a service reading raw results from rawRoot and keeping
// processed artifacts in cache. cacheRoot is the on-disk cache namespace the
// legacy sweeper operates on; empty disables sweeping (in-memory caches).
func NewService(rawRoot string, cache store.Cache, cacheRoot string) *Service {
	return &Service{
		parser:    NewParser(rawRoot),
		cache:     cache,
		cacheRoot: cacheRoot,
		locks:     map[string]*sync.Mutex{},
	}
}

// lockFor returns the per-id mutex, creating it on first use. Lock entries
// are never reclaimed; the id space is the set of model directories, which
// is small.
func (s *Service) lockFor(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

// ScanModels lists the discovered model entries without processing any.
func (s *Service) ScanModels() ([]models.ModelEntry, error) {
	return ScanModels(s.parser.rawRoot)
}

// EnsureProcessed returns the cached detail for id, parsing and persisting
// it on a miss. A nil detail with a nil error means the model has no data;
// nothing is cached in that case so a later raw-data arrival is picked up on
// the next call. A persist failure is logged but the freshly parsed detail
// is still returned: the next call simply reprocesses.
func (s *Service) EnsureProcessed(id string) (*models.ModelDetail, error) {
	norm := NormalizeID(id)
	key := url.PathEscape(norm)

	l := s.lockFor(key)
	l.Lock()
	defer l.Unlock()

	if detail, ok, err := s.cache.Get(key); err != nil {
		return nil, err
	} else if ok {
		metrics.CacheHits.Inc()
		return detail, nil
	}
	metrics.CacheMisses.Inc()

	start := time.Now()
	detail, err := s.parser.Parse(norm)
	if err != nil {
		metrics.ParseFailures.Inc()
		return nil, err
	}
	if detail == nil {
		return nil, nil
	}
	metrics.ParseDuration.Observe(time.Since(start).Seconds())

	if err := s.cache.Put(key, detail); err != nil {
		log.Printf("[evals] failed to persist %s: %v", key, err)
	}
	return detail, nil
}

// GetSamples serves one page of raw samples for (modelID, benchmarkID).
// Bypasses the cache entirely.
func (s *Service) GetSamples(modelID, benchmarkID string, limit, offset int) (*models.SamplePage, error) {
	return s.parser.ReadSamples(modelID, benchmarkID, limit, offset)
}

// ListSummaries discovers all models, ensures each is processed, and returns
// the dashboard summaries. Models with no data are skipped; a processing
// failure for one model is logged and does not block the others.
func (s *Service) ListSummaries() ([]models.ModelSummary, error) {
	entries, err := s.ScanModels()
	if err != nil {
		return nil, err
	}

	summaries := make([]models.ModelSummary, 0, len(entries))
	for _, entry := range entries {
		detail, err := s.EnsureProcessed(entry.ID)
		if err != nil {
			log.Printf("[evals] processing %s failed: %v", entry.ID, err)
			continue
		}
		if detail == nil {
			continue
		}
		summaries = append(summaries, Summarize(entry, detail))
	}
	return summaries, nil
}

// CleanupLegacy runs the legacy-artifact sweep over the cache namespace.
func (s *Service) CleanupLegacy() ([]string, error) {
	if s.cacheRoot == "" {
		return []string{}, nil
	}
	deleted, err := SweepLegacyArtifacts(s.cacheRoot)
	if err != nil {
		return nil, err
	}
	metrics.LegacyFilesDeleted.Add(float64(len(deleted)))
	return deleted, nil
}
