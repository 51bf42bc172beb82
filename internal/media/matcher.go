package media

import (
	"path/filepath"
	"strings"

	"github.com/samber/lo"
)

// SplitExt splits a base name into stem and extension at the last dot.
// Leading dots belong to the stem, so ".hidden" has no extension and
// "..a.b" splits into "..a" and ".b". The extension keeps its case.
func SplitExt(name string) (stem, ext string) {
	dot := strings.LastIndex(name, ".")
	if dot <= 0 {
		return name, ""
	}
	if strings.TrimLeft(name[:dot], ".") == "" {
		return name, ""
	}
	return name[:dot], name[dot:]
}

// Ext returns the lowercased extension of path's base name.
func Ext(path string) string {
	_, ext := SplitExt(filepath.Base(path))
	return strings.ToLower(ext)
}

// Matches reports whether path is accepted by a template that takes the
// given extensions. An empty accepted set matches everything; a file
// without an extension never matches a non-empty set.
func Matches(path string, accepted []string) bool {
	if len(accepted) == 0 {
		return true
	}
	ext := Ext(path)
	if ext == "" {
		return false
	}
	return lo.Contains(accepted, ext)
}
