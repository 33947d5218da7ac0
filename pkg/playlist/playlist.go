// Package playlist loads the message list the beacon cycles through.
package playlist

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// Load reads the message directory once and returns file names sorted
// ascending. The result is read-only for the rest of the run; its
// length bounds the message cursor.
func Load(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list message directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}
