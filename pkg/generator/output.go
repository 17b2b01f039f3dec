package generator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// IndexEntry summarises one written component file.
type IndexEntry struct {
	Component string `json:"component"`
	Category  string `json:"category"`
	Variants  int    `json:"variants"`
	File      string `json:"file"`
}

// WriteResult reports what WriteComponents produced.
type WriteResult struct {
	Files []string
	Bytes int
}

// WriteComponents writes <dir>/components/<Name>.json per set and an index
// at <dir>/components.json.
func WriteComponents(dir string, sets []*ComponentSet) (*WriteResult, error) {
	compDir := filepath.Join(dir, "components")
	if err := os.MkdirAll(compDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	res := &WriteResult{}
	index := make([]IndexEntry, 0, len(sets))
	for _, set := range sets {
		rel := filepath.ToSlash(filepath.Join("components", set.Component+".json"))
		n, err := writeJSON(filepath.Join(dir, rel), set)
		if err != nil {
			return nil, err
		}
		res.Files = append(res.Files, filepath.Join(dir, rel))
		res.Bytes += n
		index = append(index, IndexEntry{
			Component: set.Component,
			Category:  set.Category,
			Variants:  len(set.Variants),
			File:      rel,
		})
	}

	indexPath := filepath.Join(dir, "components.json")
	n, err := writeJSON(indexPath, index)
	if err != nil {
		return nil, err
	}
	res.Files = append(res.Files, indexPath)
	res.Bytes += n
	return res, nil
}

// ReadComponentSet loads a file written by WriteComponents.
func ReadComponentSet(path string) (*ComponentSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read component file: %w", err)
	}
	var set ComponentSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse component file: %w", err)
	}
	return &set, nil
}

func writeJSON(path string, v any) (int, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return len(data), nil
}
