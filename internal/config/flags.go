package config

// This file binds Config to a pflag set and finishes it after parsing.
// Flags are grouped into conversion, behavior, display, and utility.
// Negated flags (--no-group, --no-color) are applied after Parse so
// Config defaults hold unless set.

import (
	"github.com/spf13/pflag"
)

// Flags ties a parsed flag set to the Config it fills.
type Flags struct {
	fs      *pflag.FlagSet
	cfg     *Config
	negated negatedFlags
}

// negatedFlags holds boolean flags that invert a default or pick an enum
// value. They are copied into Config by applyNegatedFlags.
type negatedFlags struct {
	noGroup    bool
	forceColor bool
	noColor    bool
}

// BindFlags registers every mediaconv flag on fs with cfg's current values
// as defaults. Call [Flags.Finish] once fs has been parsed.
func BindFlags(fs *pflag.FlagSet, cfg *Config) *Flags {
	f := &Flags{fs: fs, cfg: cfg}
	defineConversionFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg, &f.negated)
	defineDisplayFlags(fs, cfg, &f.negated)
	defineUtilityFlags(fs, cfg)
	return f
}

// defineConversionFlags registers -t, -i, -o, -x, -a.
func defineConversionFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVarP(&cfg.TemplateName, "template", "t", "", "Template name (get_converters lists them)")
	fs.StringVarP(&cfg.InputPath, "input", "i", "", "Input file, directory, or frame pattern (shot.%04d.png)")
	fs.StringVarP(&cfg.OutputDir, "output", "o", "", "Output directory (default: next to the input)")
	fs.StringVarP(&cfg.ExtraOptions, "extra-options", "x", "", `Flags merged into the template, e.g. "-crf 20" (write \- for a leading dash)`)
	fs.BoolVarP(&cfg.AutoRename, "auto-rename", "a", false, "Append _N to outputs that already exist")
}

// defineBehaviorFlags registers --dry-run, --jobs, --no-group, --ffmpeg, --templates, --config.
func defineBehaviorFlags(fs *pflag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVarP(&cfg.DryRun, "dry-run", "n", false, "Print commands without running them")
	fs.IntVarP(&cfg.Jobs, "jobs", "j", cfg.Jobs, "Parallel conversions (0 = one per CPU)")
	fs.BoolVar(&n.noGroup, "no-group", false, "Treat numbered frames in a directory as separate files")
	fs.StringVar(&cfg.FFmpegPath, "ffmpeg", cfg.FFmpegPath, "ffmpeg executable")
	fs.StringVar(&cfg.TemplatesFile, "templates", "", "YAML file with extra templates")
	fs.StringVar(&cfg.ConfigFile, "config", "", "Config file (default: user config dir/mediaconv/config.yaml)")
}

// defineDisplayFlags registers --verbose, --color, --no-color, --log.
func defineDisplayFlags(fs *pflag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.StringVarP(&cfg.LogFile, "log", "l", "", "Append JSON logs to file")
}

// defineUtilityFlags registers -c, -v, --check.
func defineUtilityFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.BoolVarP(&cfg.CommandInfo, "command-info", "c", false, "Print the template's command and exit")
	fs.BoolVarP(&cfg.ShowVersion, "version", "v", false, "Print version and exit")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
}

// Finish loads the config file under the parsed flags, applies negated
// flags, unescapes the override, and resolves the output directory.
func (f *Flags) Finish() error {
	path, required := f.cfg.ConfigFile, true
	if path == "" {
		path, required = DefaultFilePath(), false
	}
	file, err := LoadFile(path, required)
	if err != nil {
		return err
	}
	file.Apply(f.cfg, f.fs.Changed)

	applyNegatedFlags(f.cfg, &f.negated)

	f.cfg.ExtraOptions = UnescapeOverride(f.cfg.ExtraOptions)
	f.cfg.InputPath = NormalizeDirArg(f.cfg.InputPath)
	f.cfg.OutputDir = NormalizeDirArg(f.cfg.OutputDir)
	f.cfg.ResolveOutputDir()
	return nil
}

// applyNegatedFlags copies negated and override flag values into cfg (e.g. noGroup -> Group=false).
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noGroup {
		cfg.Group = false
	}
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}
