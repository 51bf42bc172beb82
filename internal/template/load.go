package template

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/backmassage/mediaconv/internal/media"
)

// catalogueFile is the on-disk form of a user template catalogue:
//
//	templates:
//	  - name: proxy_720
//	    output_extension: .mp4
//	    extensions: [video, .gif]
//	    flags: -vf scale=-2:720 -crf 23
type catalogueFile struct {
	Templates []fileTemplate `yaml:"templates"`
}

type fileTemplate struct {
	Name            string   `yaml:"name"`
	OutputExtension string   `yaml:"output_extension"`
	Extensions      []string `yaml:"extensions"` // extensions or family names
	Flags           string   `yaml:"flags"`
	Command         string   `yaml:"command"` // full command; exclusive with flags
}

// LoadFile reads a YAML template catalogue. Every template is validated;
// names must be unique within the file.
func LoadFile(path string) ([]Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read template catalogue")
	}
	return Parse(data)
}

// Parse decodes a YAML template catalogue.
func Parse(data []byte) ([]Template, error) {
	var cf catalogueFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, errors.Wrap(err, "parse template catalogue")
	}

	seen := make(map[string]bool, len(cf.Templates))
	out := make([]Template, 0, len(cf.Templates))
	for i, ft := range cf.Templates {
		t, err := ft.build()
		if err != nil {
			return nil, errors.Wrapf(err, "template #%d", i+1)
		}
		if seen[t.Name] {
			return nil, errors.Wrapf(ErrDuplicateTemplate, "%s", t.Name)
		}
		seen[t.Name] = true
		out = append(out, t)
	}
	return out, nil
}

func (ft fileTemplate) build() (Template, error) {
	if ft.Flags != "" && ft.Command != "" {
		return Template{}, errors.Wrapf(ErrInvalidTemplate, "%s: set flags or command, not both", ft.Name)
	}
	t := New(strings.TrimSpace(ft.Name), normalizeExt(ft.OutputExtension), expandExtensions(ft.Extensions), ft.Flags)
	if ft.Command != "" {
		t.Command = strings.TrimSpace(ft.Command)
	}
	if err := t.Validate(); err != nil {
		return Template{}, err
	}
	return t, nil
}

// expandExtensions replaces family names with their extensions and
// normalizes the rest.
func expandExtensions(in []string) []string {
	families := media.Families()
	var out []string
	for _, e := range in {
		if exts, ok := families[media.Family(strings.ToLower(strings.TrimSpace(e)))]; ok {
			out = append(out, exts...)
			continue
		}
		out = append(out, normalizeExt(e))
	}
	return lo.Uniq(out)
}

func normalizeExt(e string) string {
	e = strings.ToLower(strings.TrimSpace(e))
	if e != "" && !strings.HasPrefix(e, ".") {
		e = "." + e
	}
	return e
}
