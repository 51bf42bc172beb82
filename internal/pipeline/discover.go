package pipeline

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/backmassage/mediaconv/internal/sequence"
)

// Unit is one conversion input: a file or a frame pattern.
type Unit struct {
	Path   string
	Frames int // frames collapsed into Path by grouping; 0 otherwise
}

// Discover returns the units for input. A frame pattern or a file is one
// unit. A directory yields its direct entries in name order, without
// recursion; when group is set, numbered image frames sharing a name are
// collapsed into one pattern unit placed where the first frame sorted.
func Discover(input string, group bool) ([]Unit, error) {
	if sequence.IsPattern(input) {
		return []Unit{{Path: input}}, nil
	}
	fi, err := os.Stat(input)
	if err != nil {
		return nil, errors.Wrap(err, "input")
	}
	if !fi.IsDir() {
		return []Unit{{Path: input}}, nil
	}

	entries, err := os.ReadDir(input)
	if err != nil {
		return nil, errors.Wrapf(err, "list %s", input)
	}
	// ReadDir returns entries sorted by name.
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}

	if !group {
		return lo.Map(names, func(name string, _ int) Unit {
			return Unit{Path: filepath.Join(input, name)}
		}), nil
	}
	return lo.Map(sequence.Group(names), func(u sequence.Unit, _ int) Unit {
		return Unit{Path: filepath.Join(input, u.Name), Frames: u.Frames}
	}), nil
}
