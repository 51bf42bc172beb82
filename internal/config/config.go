// Package config holds runtime configuration: defaults, CLI flag binding,
// the optional YAML config file, and validation.
package config

import (
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"

	"github.com/backmassage/mediaconv/internal/sequence"
	"github.com/backmassage/mediaconv/internal/template"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Errors for missing required arguments.
var (
	ErrMissingTemplate = errors.New("the following arguments are required: -t/--template")
	ErrMissingInput    = errors.New("the following arguments are required: -i/--input")
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// then by the flags and the config file (see [Flags.Finish]), and passed by
// pointer to the packages that need it.
type Config struct {
	// Conversion.
	TemplateName string
	InputPath    string // file, directory or frame pattern
	OutputDir    string // Default: derived from InputPath by ResolveOutputDir.
	ExtraOptions string // override flags merged into the template
	AutoRename   bool

	// Informational queries (print and exit).
	CommandInfo bool
	ShowVersion bool
	CheckOnly   bool

	// Behavior.
	DryRun        bool
	Jobs          int    // Default: 1. 0 uses every logical CPU.
	Group         bool   // Default: true. Cleared by --no-group.
	FFmpegPath    string // Default: "ffmpeg".
	TemplatesFile string // extra YAML template catalogue
	ConfigFile    string // explicit --config path

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional JSON log file path.
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() Config {
	return Config{
		Jobs:       1,
		Group:      true,
		FFmpegPath: template.ToolName,
		ColorMode:  ColorAuto,
	}
}

// IsQuery reports whether the run only prints information and needs no
// input: --check, --version, or the template listing.
func (c *Config) IsQuery() bool {
	return c.CheckOnly || c.ShowVersion || c.TemplateName == template.ListName
}

// Validate checks enum and numeric fields, then the required arguments.
// A missing template yields ErrMissingTemplate and a missing input
// ErrMissingInput; --command-info needs only the template.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.ColorMode,
			validation.In(ColorAuto, ColorAlways, ColorNever).Error("use 'auto', 'always' or 'never'")),
		validation.Field(&c.Jobs, validation.Min(0)),
		validation.Field(&c.FFmpegPath, validation.Required),
	)
	if err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	if c.IsQuery() {
		return nil
	}
	if c.TemplateName == "" {
		return ErrMissingTemplate
	}
	if c.CommandInfo {
		return nil
	}
	if c.InputPath == "" {
		return ErrMissingInput
	}
	return nil
}

// ResolveOutputDir fills OutputDir when it was not given: the directory
// holding the input for a file or frame pattern, the input itself
// otherwise.
func (c *Config) ResolveOutputDir() {
	if c.OutputDir != "" || c.InputPath == "" {
		return
	}
	if sequence.IsPattern(c.InputPath) {
		c.OutputDir = filepath.Dir(c.InputPath)
		return
	}
	if fi, err := os.Stat(c.InputPath); err == nil && !fi.IsDir() {
		c.OutputDir = filepath.Dir(c.InputPath)
		return
	}
	c.OutputDir = c.InputPath
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// UnescapeOverride turns "\-" into "-". Shells and flag parsers need a
// leading dash escaped when the override is passed as one argument.
func UnescapeOverride(s string) string {
	return strings.ReplaceAll(s, `\-`, "-")
}
