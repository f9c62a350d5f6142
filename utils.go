package main

import (
	"path/filepath"
	"strings"
)

// truncatePathFromLeft shortens a path that is too wide for display by
// dropping leading segments and prefixing "...", so the most meaningful
// trailing segments stay visible.
func truncatePathFromLeft(path string, maxWidth int) string {
	if len(path) <= maxWidth {
		return path
	}

	const ellipsis = "..."
	sep := string(filepath.Separator)
	segments := strings.Split(filepath.Clean(path), sep)

	// Keep trailing segments while they fit. Each kept segment costs
	// its own length plus the separator that precedes it in the output.
	budget := maxWidth - len(ellipsis)
	var kept []string
	width := 0
	for i := len(segments) - 1; i >= 0; i-- {
		cost := len(sep) + len(segments[i])
		if width+cost > budget {
			break
		}
		kept = append([]string{segments[i]}, kept...)
		width += cost
	}

	if len(kept) == 0 {
		return ellipsis
	}
	if len(kept) == len(segments) {
		return path
	}
	return ellipsis + sep + strings.Join(kept, sep)
}
