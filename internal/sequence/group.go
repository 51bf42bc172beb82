package sequence

import (
	"fmt"

	"github.com/agext/regexp"
	"github.com/samber/lo"

	"github.com/backmassage/mediaconv/internal/media"
)

// Unit is one conversion unit found in a directory: either a single file or
// a frame sequence collapsed into a placeholder pattern.
type Unit struct {
	Name   string // file name, or frame pattern such as "shot.%04d.png"
	Frames int    // frame count; zero for a single file
}

// frameRe captures the last digit run of a stem.
var frameRe = regexp.MustCompile(`^(.*?)(\d+)(\D*)$`)

type frame struct {
	index int
	head  string
	digit string
	tail  string // remainder of the stem plus the extension
}

func (f frame) key() string { return f.head + "\x00" + f.tail }

// parseFrame splits name around the last digit run of its stem. Only image
// files are frame candidates.
func parseFrame(index int, name string) (frame, bool) {
	stem, ext := media.SplitExt(name)
	if !media.IsImage(ext) {
		return frame{}, false
	}
	m := frameRe.FindStringSubmatch(stem)
	if m == nil {
		return frame{}, false
	}
	return frame{index: index, head: m[1], digit: m[2], tail: m[3] + ext}, true
}

// Group collapses image frames that share a head and tail into one
// sequence unit. Everything else, including video and audio files and lone
// frames, stays an individual unit. Units keep the order of their first
// member in names.
func Group(names []string) []Unit {
	frames := make([]frame, 0, len(names))
	for i, name := range names {
		if f, ok := parseFrame(i, name); ok {
			frames = append(frames, f)
		}
	}
	groups := lo.GroupBy(frames, frame.key)

	// member index -> index of the group's first member
	leader := make(map[int]int, len(frames))
	for _, g := range groups {
		if len(g) < 2 || !IsPattern(patternName(g)) {
			continue
		}
		for _, f := range g {
			leader[f.index] = g[0].index
		}
	}

	units := make([]Unit, 0, len(names))
	for i, name := range names {
		first, grouped := leader[i]
		if !grouped {
			units = append(units, Unit{Name: name})
			continue
		}
		if first != i {
			continue
		}
		f, _ := parseFrame(i, name)
		g := groups[f.key()]
		units = append(units, Unit{Name: patternName(g), Frames: len(g)})
	}
	return units
}

// patternName is the frame pattern standing for g. Groups whose pattern
// would not read back as one are left as individual files.
func patternName(g []frame) string {
	return g[0].head + placeholderFor(g) + g[0].tail
}

// placeholderFor returns "%0Nd" when every frame number has the same width
// N > 1, otherwise "%d".
func placeholderFor(g []frame) string {
	widths := lo.Uniq(lo.Map(g, func(f frame, _ int) int { return len(f.digit) }))
	if len(widths) == 1 && widths[0] > 1 {
		return fmt.Sprintf("%%0%dd", widths[0])
	}
	return "%d"
}
