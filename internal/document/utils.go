package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ErrNoDocuments is returned by FindLatest when a directory holds none.
var ErrNoDocuments = errors.New("no document files found")

// AutosavePath creates a timestamped document filename inside dir
func AutosavePath(dir string) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("autosave_%s.yaml", timestamp))
}

// FindLatest finds the most recently modified document in dir
func FindLatest(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read document directory: %w", err)
	}

	type candidate struct {
		path string
		mod  time.Time
	}
	var docs []candidate
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		docs = append(docs, candidate{filepath.Join(dir, entry.Name()), info.ModTime()})
	}

	if len(docs) == 0 {
		return "", fmt.Errorf("%w in %s", ErrNoDocuments, dir)
	}

	// Newest first
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].mod.After(docs[j].mod)
	})

	return docs[0].path, nil
}
