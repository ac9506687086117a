package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/evalboard/console/pkg/models"
)

const (
	cacheDirMode  = 0755
	cacheFileMode = 0644

	// detailFileName is the canonical artifact inside each cached model
	// directory. Legacy per-benchmark files from the retired pipeline may
	// sit next to it until the sweeper removes them.
	detailFileName = "detail.json"
)

// Cache is the capability interface for the processed-artifact store.
// Keys are normalized model ids. Implementations must make Put atomic:
// a concurrent Get never observes a partially written artifact.
type Cache interface {
	Get(id string) (*models.ModelDetail, bool, error)
	Put(id string, detail *models.ModelDetail) error
	Delete(id string) error
}

// FileCache stores one JSON artifact per model under root/<id>/detail.json.
type FileCache struct {
	root string
}

// NewFileCache creates a file-backed cache rooted at dir.
func NewFileCache(dir string) *FileCache {
	return &FileCache{root: dir}
}

// Root returns the cache namespace directory. The legacy sweeper walks it.
func (c *FileCache) Root() string {
	return c.root
}

func (c *FileCache) detailPath(id string) string {
	return filepath.Join(c.root, id, detailFileName)
}

// Get loads the cached artifact for id. A missing or malformed entry is a
// miss, not an error; a malformed file will simply be overwritten by the
// next successful Put.
func (c *FileCache) Get(id string) (*models.ModelDetail, bool, error) {
	data, err := os.ReadFile(c.detailPath(id))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read cache entry: %w", err)
	}

	var detail models.ModelDetail
	if err := json.Unmarshal(data, &detail); err != nil {
		return nil, false, nil
	}
	if detail.ID == "" {
		return nil, false, nil
	}
	return &detail, true, nil
}

// Put persists the artifact for id. The write goes to a temp file in the
// same directory and is renamed into place, so readers see either the old
// artifact or the complete new one, never a torn write.
func (c *FileCache) Put(id string, detail *models.ModelDetail) error {
	dir := filepath.Join(c.root, id)
	if err := os.MkdirAll(dir, cacheDirMode); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	data, err := json.MarshalIndent(detail, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	tmp, err := os.CreateTemp(dir, detailFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close cache entry: %w", err)
	}
	if err := os.Chmod(tmpPath, cacheFileMode); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod cache entry: %w", err)
	}
	if err := os.Rename(tmpPath, c.detailPath(id)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("commit cache entry: %w", err)
	}
	return nil
}

// Delete removes the cached artifact for id. Deleting a missing entry is a
// no-op so operator-triggered reprocessing is idempotent.
func (c *FileCache) Delete(id string) error {
	err := os.Remove(c.detailPath(id))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete cache entry: %w", err)
	}
	return nil
}
