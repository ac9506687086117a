package evals

import (
	"net/url"
	"os"

	"github.com/evalboard/console/pkg/models"
)

// ScanModels lists the immediate subdirectories of the raw results root and
// returns one entry per model directory. It never looks inside a directory;
// interpreting contents is the parser's job. A missing root is an empty
// result set, not an error: the external pipeline may simply not have
// delivered anything yet.
func ScanModels(rawRoot string) ([]models.ModelEntry, error) {
	dirents, err := os.ReadDir(rawRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.ModelEntry{}, nil
		}
		return nil, err
	}

	entries := make([]models.ModelEntry, 0, len(dirents))
	for _, d := range dirents {
		if !d.IsDir() {
			continue
		}
		name := d.Name()
		entries = append(entries, models.ModelEntry{
			ID:        url.PathEscape(name),
			Name:      name,
			ModelName: name,
		})
	}
	return entries, nil
}
