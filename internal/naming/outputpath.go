package naming

import (
	"github.com/backmassage/mediaconv/internal/media"
	"github.com/backmassage/mediaconv/internal/sequence"
)

// FramePlaceholder numbers frames when a template writes images.
const FramePlaceholder = "%04d"

// OutputName builds the output file name for an input base name.
//
//	still or video output: <stem><outputExt>
//	image output:          <stem>.%04d<outputExt>
//
// A frame placeholder in the input stem is dropped first, so
// "shot.%04d.exr" converted to ".mov" becomes "shot.mov".
func OutputName(inputBase, outputExt string) string {
	stem, _ := media.SplitExt(inputBase)
	stem = sequence.StripPlaceholder(stem)
	if media.IsImage(outputExt) {
		return stem + "." + FramePlaceholder + outputExt
	}
	return stem + outputExt
}
