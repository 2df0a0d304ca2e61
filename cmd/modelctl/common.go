package main

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/c360studio/modelgraph/hypergraph"
)

func loadStore(path string) (*hypergraph.Store, error) {
	if path == "" {
		return hypergraph.New(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return hypergraph.New(), nil
		}
		return nil, err
	}
	return hypergraph.Unmarshal(data)
}

func saveStore(store *hypergraph.Store, path string) error {
	data, err := store.Marshal()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// collectDocPaths resolves the set of document files to import. When
// glob is empty, docIn names a single document file directly. When
// glob is set, docIn names a base directory and glob selects files
// under it (e.g. "**/*.yaml").
func collectDocPaths(docIn, glob string) ([]string, error) {
	if glob == "" {
		return []string{docIn}, nil
	}
	matches, err := doublestar.Glob(os.DirFS(docIn), glob)
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	paths := make([]string, len(matches))
	for i, m := range matches {
		paths[i] = filepath.Join(docIn, m)
	}
	return paths, nil
}
