package assets

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ListImages returns the sorted paths of all PNG/JPEG files directly inside
// folder. Subdirectories (such as a previous mocks output dir) are not
// descended into.
func ListImages(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg":
			paths = append(paths, filepath.Join(folder, e.Name()))
		}
	}

	sort.Strings(paths)
	return paths, nil
}
