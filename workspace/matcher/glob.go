// Package matcher selects fixture files by the same glob patterns an editor
// uses to map a schema onto files, e.g. "Order*.json" or "objects/**/*.yml".
package matcher

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Match reports whether the slash-separated filePath matches pattern.
//
// "*" matches any run of characters within a segment and "?" exactly one.
// A "**" segment matches zero or more whole segments. A pattern without a
// slash is matched against the base name only, so "order*.json" selects
// files at any depth. A leading slash anchors the pattern at the root.
func Match(pattern, filePath string) bool {
	if pattern == "" {
		return false
	}
	filePath = strings.TrimPrefix(path.Clean("/"+filePath), "/")

	if !strings.Contains(pattern, "/") {
		return matchSegment(path.Base(filePath), pattern)
	}

	pattern = strings.TrimPrefix(pattern, "/")
	return matchSegments(strings.Split(filePath, "/"), strings.Split(pattern, "/"))
}

// MatchAny reports whether filePath matches at least one of the patterns.
func MatchAny(patterns []string, filePath string) bool {
	for _, p := range patterns {
		if Match(p, filePath) {
			return true
		}
	}
	return false
}

// Find walks fsys and returns the sorted paths of regular files matching any
// of the patterns.
func Find(fsys fs.FS, patterns []string) ([]string, error) {
	var found []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if MatchAny(patterns, p) {
			found = append(found, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk fixture root: %w", err)
	}
	sort.Strings(found)
	return found, nil
}

// matchSegments matches path segments against pattern segments, expanding
// "**" to zero or more segments.
func matchSegments(pathSegs, patternSegs []string) bool {
	if len(patternSegs) == 0 {
		return len(pathSegs) == 0
	}

	head := patternSegs[0]
	if head == "**" {
		if matchSegments(pathSegs, patternSegs[1:]) {
			return true
		}
		if len(pathSegs) > 0 {
			return matchSegments(pathSegs[1:], patternSegs)
		}
		return false
	}

	if len(pathSegs) == 0 {
		return false
	}
	if matchSegment(pathSegs[0], head) {
		return matchSegments(pathSegs[1:], patternSegs[1:])
	}
	return false
}

// matchSegment matches a single segment against a pattern containing "*" and
// "?" wildcards. Both operate on runes so multi-byte names behave.
func matchSegment(segment, pattern string) bool {
	s, p := []rune(segment), []rune(pattern)
	// Positions to resume from after the most recent "*".
	star, mark := -1, 0
	si, pi := 0, 0

	for si < len(s) {
		switch {
		case pi < len(p) && (p[pi] == '?' || p[pi] == s[si]):
			si++
			pi++
		case pi < len(p) && p[pi] == '*':
			star, mark = pi, si
			pi++
		case star >= 0:
			mark++
			si, pi = mark, star+1
		default:
			return false
		}
	}

	for pi < len(p) && p[pi] == '*' {
		pi++
	}
	return pi == len(p)
}
