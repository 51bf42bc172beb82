package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// File is the YAML config file. Every field is optional; a value is used
// only when the matching flag was not given on the command line.
//
//	ffmpeg: /opt/ffmpeg/bin/ffmpeg
//	jobs: 4
//	color: never
//	log: ~/mediaconv.log
//	templates: templates.yaml   # relative to this file
//	auto_rename: true
type File struct {
	FFmpeg     string `yaml:"ffmpeg"`
	Jobs       *int   `yaml:"jobs"`
	Color      string `yaml:"color"`
	LogFile    string `yaml:"log"`
	Templates  string `yaml:"templates"`
	AutoRename *bool  `yaml:"auto_rename"`
	Verbose    *bool  `yaml:"verbose"`
	Group      *bool  `yaml:"group"`

	dir string // directory of the loaded file
}

// DefaultFilePath returns the per-user config file location, or "" when
// the platform has no user config directory.
func DefaultFilePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "mediaconv", "config.yaml")
}

// LoadFile reads the config file at path. A missing file yields an empty
// File unless required is set.
func LoadFile(path string, required bool) (File, error) {
	if path == "" {
		return File{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return File{}, nil
		}
		return File{}, errors.Wrap(err, "read config file")
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, errors.Wrapf(err, "parse config file %s", path)
	}
	f.dir = filepath.Dir(path)
	return f, nil
}

// Apply copies file values into cfg for every setting whose flag was not
// changed on the command line.
func (f File) Apply(cfg *Config, changed func(flag string) bool) {
	if f.FFmpeg != "" && !changed("ffmpeg") {
		cfg.FFmpegPath = expandHome(f.FFmpeg)
	}
	if f.Jobs != nil && !changed("jobs") {
		cfg.Jobs = *f.Jobs
	}
	if f.Color != "" && !changed("color") && !changed("no-color") {
		cfg.ColorMode = ColorMode(f.Color)
	}
	if f.LogFile != "" && !changed("log") {
		cfg.LogFile = expandHome(f.LogFile)
	}
	if f.Templates != "" && !changed("templates") {
		cfg.TemplatesFile = f.resolve(expandHome(f.Templates))
	}
	if f.AutoRename != nil && !changed("auto-rename") {
		cfg.AutoRename = *f.AutoRename
	}
	if f.Verbose != nil && !changed("verbose") {
		cfg.Verbose = *f.Verbose
	}
	if f.Group != nil && !changed("no-group") {
		cfg.Group = *f.Group
	}
}

// resolve makes path relative to the config file's directory.
func (f File) resolve(path string) string {
	if filepath.IsAbs(path) || f.dir == "" {
		return path
	}
	return filepath.Join(f.dir, path)
}

func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
