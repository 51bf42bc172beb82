// Package sequence recognises numbered image sequences: file names holding a
// printf-style frame placeholder such as "shot.%04d.exr", and directory
// listings whose frames can be collapsed into one such pattern.
package sequence

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/agext/regexp"
	"github.com/pkg/errors"
)

// placeholderRe matches a frame placeholder that stands as its own segment:
// a separator or the name boundary on at least one side, so "shot.%04d.exr"
// and "plate%04d" qualify but "sale 100%done" does not.
var placeholderRe = regexp.MustCompile(`(?:^|[._-])(%\d*d)|(%\d*d)(?:[._-]|$)`)

// placeholderIndex returns the start and end of the placeholder in s, or
// nil when s holds none.
func placeholderIndex(s string) []int {
	m := placeholderRe.FindStringSubmatchIndex(s)
	switch {
	case m == nil:
		return nil
	case m[2] >= 0:
		return m[2:4]
	default:
		return m[4:6]
	}
}

// IsPattern reports whether the base name of path holds a frame placeholder.
func IsPattern(path string) bool {
	return placeholderIndex(filepath.Base(path)) != nil
}

// StripPlaceholder removes the frame placeholder, and the separator that
// precedes it, from a stem: "shot.%04d" becomes "shot".
func StripPlaceholder(stem string) string {
	loc := placeholderIndex(stem)
	if loc == nil {
		return stem
	}
	start := loc[0]
	if start > 0 && strings.ContainsRune("._-", rune(stem[start-1])) {
		start--
	}
	return stem[:start] + stem[loc[1]:]
}

// StartNumber finds the lexicographically first file in pattern's directory
// whose name fits the pattern with a digit run in place of the placeholder,
// and returns that digit run. ok is false when pattern holds no placeholder
// or no file fits.
func StartNumber(pattern string) (number string, ok bool, err error) {
	dir, base := filepath.Split(pattern)
	loc := placeholderIndex(base)
	if loc == nil {
		return "", false, nil
	}
	re, err := regexp.Compile("^" + regexp.QuoteMeta(base[:loc[0]]) + `(\d+)` + regexp.QuoteMeta(base[loc[1]:]) + "$")
	if err != nil {
		return "", false, errors.Wrapf(err, "frame pattern %q", base)
	}
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false, errors.Wrapf(err, "list frames in %s", dir)
	}
	// ReadDir returns entries sorted by name.
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if m := re.FindStringSubmatch(e.Name()); m != nil {
			return m[1], true, nil
		}
	}
	return "", false, nil
}
