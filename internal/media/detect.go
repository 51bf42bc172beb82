package media

import (
	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
)

// Detection is the content-sniffed type of a file.
type Detection struct {
	MIME      string // e.g. "video/quicktime"
	Extension string // extension mimetype associates with the content
}

// Detect sniffs the content type of path. It reads only the file header.
// The result is informational: matching is always driven by the name's
// extension.
func Detect(path string) (Detection, error) {
	m, err := mimetype.DetectFile(path)
	if err != nil {
		return Detection{}, errors.Wrapf(err, "detect %s", path)
	}
	return Detection{MIME: m.String(), Extension: m.Extension()}, nil
}

// Disagrees reports whether the sniffed content looks like a different
// family than the file's extension claims. Unknown families never disagree.
func (d Detection) Disagrees(path string) bool {
	want := FamilyOf(Ext(path))
	got := FamilyOf(d.Extension)
	if want == FamilyUnknown || got == FamilyUnknown {
		return false
	}
	return want != got
}
