// Package template holds conversion templates: a named ffmpeg command
// pattern with the input types it accepts and the extension it produces.
//
// A template command always has the shape
//
//	ffmpeg -i "{input_file_full_path}" <flags...> {extra_options} "{output_file_full_path}"
//
// Templates are values. [Merge] returns a new template with user overrides
// folded in; registered templates are never modified.
package template

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"
)

// Command placeholders and fixed pieces.
const (
	ToolName            = "ffmpeg"
	InputPlaceholder    = "{input_file_full_path}"
	OutputPlaceholder   = "{output_file_full_path}"
	OverridePlaceholder = "{extra_options}"

	// Prefix starts every template command.
	Prefix = ToolName + ` -i "` + InputPlaceholder + `"`

	overrideSlot = " " + OverridePlaceholder
	outputSuffix = ` "` + OutputPlaceholder + `"`
)

// ListName is the reserved template name that lists the catalogue.
const ListName = "get_converters"

// Template is one named conversion.
type Template struct {
	Name            string
	Extensions      []string // accepted input extensions; empty accepts all
	OutputExtension string
	Command         string
	Override        string // active override, substituted at {extra_options}
}

// New builds a template whose command carries flags between the input
// prefix and the override slot.
func New(name, outputExt string, accepts []string, flags string) Template {
	var tokens []string
	if f := strings.TrimSpace(flags); f != "" {
		tokens = []string{f}
	}
	return Template{
		Name:            name,
		Extensions:      accepts,
		OutputExtension: outputExt,
		Command:         assemble(tokens),
	}
}

// assemble joins flag tokens into a full command, one space apart.
func assemble(tokens []string) string {
	parts := make([]string, 0, len(tokens)+3)
	parts = append(parts, Prefix)
	parts = append(parts, tokens...)
	parts = append(parts, OverridePlaceholder, `"`+OutputPlaceholder+`"`)
	return strings.Join(parts, " ")
}

// Validate checks the name, the extensions and the command shape.
func (t Template) Validate() error {
	err := validation.ValidateStruct(&t,
		validation.Field(&t.Name, validation.Required, validation.By(validName)),
		validation.Field(&t.OutputExtension, validation.Required, validation.By(validExtension)),
		validation.Field(&t.Extensions, validation.Each(validation.By(validExtension))),
		validation.Field(&t.Command, validation.Required, validation.By(validCommand)),
	)
	if err != nil {
		return errors.Wrapf(ErrInvalidTemplate, "%s: %v", t.Name, err)
	}
	return nil
}

func validName(value interface{}) error {
	name, _ := value.(string)
	if strings.ContainsAny(name, " \t\n") {
		return errors.New("must not contain whitespace")
	}
	if name == ListName {
		return errors.Errorf("%q is reserved", ListName)
	}
	return nil
}

func validExtension(value interface{}) error {
	ext, _ := value.(string)
	if len(ext) < 2 || ext[0] != '.' {
		return errors.Errorf("%q must start with a dot", ext)
	}
	if ext != strings.ToLower(ext) || strings.ContainsAny(ext, `/\ `) {
		return errors.Errorf("%q must be a lowercase extension", ext)
	}
	return nil
}

func validCommand(value interface{}) error {
	cmd, _ := value.(string)
	if !strings.HasPrefix(cmd, Prefix) {
		return errors.Errorf("must start with %s", Prefix)
	}
	for _, p := range []string{InputPlaceholder, OutputPlaceholder, OverridePlaceholder} {
		if n := strings.Count(cmd, p); n != 1 {
			return errors.Errorf("must contain %s exactly once, found %d", p, n)
		}
	}
	if !strings.HasSuffix(cmd, overrideSlot+outputSuffix) {
		return errors.Errorf("must end with%s%s", overrideSlot, outputSuffix)
	}
	return nil
}

// Expanded returns the command with the active override in place and the
// path placeholders left as they are.
func (t Template) Expanded() string {
	return strings.Replace(t.Command, OverridePlaceholder, t.Override, 1)
}

// RenderOptions adjusts how a command is rendered for one input.
type RenderOptions struct {
	Tool        string // replaces the leading "ffmpeg"; empty keeps it
	StartNumber string // first frame of a sequence, injected right after the tool
}

var quotedEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "$", `\$`, "`", "\\`")

// Render substitutes the paths and the active override into the command.
// Paths land inside double quotes, so shell-special characters in them
// are escaped.
func (t Template) Render(input, output string, opts RenderOptions) string {
	body := strings.TrimPrefix(t.Command, ToolName)
	body = strings.NewReplacer(
		InputPlaceholder, quotedEscaper.Replace(input),
		OutputPlaceholder, quotedEscaper.Replace(output),
		OverridePlaceholder, t.Override,
	).Replace(body)

	head := ToolName
	if opts.Tool != "" {
		head = shellWord(opts.Tool)
	}
	if opts.StartNumber != "" {
		head += " -start_number " + opts.StartNumber
	}
	return head + body
}

// shellWord quotes s when the shell would otherwise split or expand it.
func shellWord(s string) string {
	if !strings.ContainsAny(s, " \t\n\"'$`\\*?[]<>|&;()#~") {
		return s
	}
	return `"` + quotedEscaper.Replace(s) + `"`
}
