// Copyright (c) 2025 the nanikiru authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "strings"

// ParseOptions turns a raw comma-separated option list into the ordered
// option sequence: each piece is trimmed, empty pieces are dropped, and
// duplicates collapse onto their first occurrence. The result is what
// gets persisted, one row per option, so commas never corrupt option
// boundaries after this point.
func ParseOptions(raw string) []string {
	pieces := strings.Split(raw, ",")

	options := make([]string, 0, len(pieces))
	seen := make(map[string]bool, len(pieces))
	for _, piece := range pieces {
		label := strings.TrimSpace(piece)
		if label == "" || seen[label] {
			continue
		}
		seen[label] = true
		options = append(options, label)
	}

	return options
}
