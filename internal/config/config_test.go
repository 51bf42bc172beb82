package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/media/library", "/media/library"},
		{"single trailing slash", "/media/library/", "/media/library"},
		{"multiple trailing slashes", "/media/library///", "/media/library"},
		{"root path", "/", "/"},
		{"relative path", "output", "output"},
		{"relative with slash", "output/", "output"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDirArg(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeDirArg(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestUnescapeOverride(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`\-crf 20`, "-crf 20"},
		{`\-crf 20 \-preset slow`, "-crf 20 -preset slow"},
		{"-crf 20", "-crf 20"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := UnescapeOverride(tt.in); got != tt.want {
			t.Errorf("UnescapeOverride(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidate_ColorMode(t *testing.T) {
	tests := []struct {
		name    string
		mode    ColorMode
		wantErr bool
	}{
		{"auto is valid", ColorAuto, false},
		{"always is valid", ColorAlways, false},
		{"never is valid", ColorNever, false},
		{"unknown is invalid", "sometimes", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.CheckOnly = true // skip argument requirements
			cfg.ColorMode = tt.mode
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_Jobs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckOnly = true
	cfg.Jobs = -1
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject negative jobs")
	}
	cfg.Jobs = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() unexpected error for jobs=0: %v", err)
	}
}

func TestValidate_RequiredArguments(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"missing template", func(c *Config) { c.InputPath = "/in" }, ErrMissingTemplate},
		{"missing input", func(c *Config) { c.TemplateName = "mp4" }, ErrMissingInput},
		{"command info needs no input", func(c *Config) { c.TemplateName = "mp4"; c.CommandInfo = true }, nil},
		{"listing needs nothing else", func(c *Config) { c.TemplateName = "get_converters" }, nil},
		{"version needs nothing", func(c *Config) { c.ShowVersion = true }, nil},
		{"check needs nothing", func(c *Config) { c.CheckOnly = true }, nil},
		{"complete", func(c *Config) { c.TemplateName = "mp4"; c.InputPath = "/in" }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil && err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolveOutputDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "clip.mov")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		input string
		out   string
		want  string
	}{
		{"file goes next to input", file, "", dir},
		{"pattern goes next to frames", filepath.Join(dir, "shot.%04d.png"), "", dir},
		{"directory is its own output", dir, "", dir},
		{"missing path is used as is", filepath.Join(dir, "nope"), "", filepath.Join(dir, "nope")},
		{"explicit output wins", file, "/elsewhere", "/elsewhere"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.InputPath = tt.input
			cfg.OutputDir = tt.out
			cfg.ResolveOutputDir()
			if cfg.OutputDir != tt.want {
				t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, tt.want)
			}
		})
	}
}

func parse(t *testing.T, args ...string) *Config {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	cfg := DefaultConfig()
	fs := pflag.NewFlagSet("mediaconv", pflag.ContinueOnError)
	f := BindFlags(fs, &cfg)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse(%q): %v", args, err)
	}
	if err := f.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	return &cfg
}

func TestBindFlags(t *testing.T) {
	cfg := parse(t, "-t", "mp4", "-i", "/media/in/", "-x", `\-crf 20`, "-a", "--no-group", "--no-color", "-j", "4")

	if cfg.TemplateName != "mp4" {
		t.Errorf("TemplateName = %q", cfg.TemplateName)
	}
	if cfg.InputPath != "/media/in" {
		t.Errorf("InputPath = %q, want trailing slash stripped", cfg.InputPath)
	}
	if cfg.ExtraOptions != "-crf 20" {
		t.Errorf("ExtraOptions = %q, want %q", cfg.ExtraOptions, "-crf 20")
	}
	if !cfg.AutoRename {
		t.Error("AutoRename should be set")
	}
	if cfg.Group {
		t.Error("--no-group should clear Group")
	}
	if cfg.ColorMode != ColorNever {
		t.Errorf("ColorMode = %q, want %q", cfg.ColorMode, ColorNever)
	}
	if cfg.Jobs != 4 {
		t.Errorf("Jobs = %d, want 4", cfg.Jobs)
	}
	if cfg.OutputDir != "/media/in" {
		t.Errorf("OutputDir = %q, want the input directory", cfg.OutputDir)
	}
}

func TestBindFlags_LeadingDashValue(t *testing.T) {
	cfg := parse(t, "-t", "mp4", "-c", "-x", "-crf 20")
	if cfg.ExtraOptions != "-crf 20" {
		t.Errorf("ExtraOptions = %q, want %q", cfg.ExtraOptions, "-crf 20")
	}
	if !cfg.CommandInfo {
		t.Error("CommandInfo should be set")
	}
}

func TestFinish_MissingExplicitConfig(t *testing.T) {
	cfg := DefaultConfig()
	fs := pflag.NewFlagSet("mediaconv", pflag.ContinueOnError)
	f := BindFlags(fs, &cfg)
	if err := fs.Parse([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}); err != nil {
		t.Fatal(err)
	}
	if err := f.Finish(); err == nil {
		t.Error("Finish() should fail for a missing explicit config file")
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "ffmpeg: /opt/ffmpeg\njobs: 3\ncolor: always\ntemplates: extra.yaml\nauto_rename: true\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := parse(t, "-t", "mp4", "--config", path, "-j", "2")

	if cfg.FFmpegPath != "/opt/ffmpeg" {
		t.Errorf("FFmpegPath = %q, want %q", cfg.FFmpegPath, "/opt/ffmpeg")
	}
	if cfg.Jobs != 2 {
		t.Errorf("Jobs = %d, want the flag value 2", cfg.Jobs)
	}
	if cfg.ColorMode != ColorAlways {
		t.Errorf("ColorMode = %q, want %q", cfg.ColorMode, ColorAlways)
	}
	if want := filepath.Join(dir, "extra.yaml"); cfg.TemplatesFile != want {
		t.Errorf("TemplatesFile = %q, want %q", cfg.TemplatesFile, want)
	}
	if !cfg.AutoRename {
		t.Error("AutoRename should come from the file")
	}
}

func TestConfigFile_NoColorFlagWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("color: always\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := parse(t, "--config", path, "--no-color")
	if cfg.ColorMode != ColorNever {
		t.Errorf("ColorMode = %q, want %q", cfg.ColorMode, ColorNever)
	}
}

func TestLoadFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("jobs: [oops\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path, true); err == nil {
		t.Error("LoadFile() should fail on malformed YAML")
	}
	if f, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"), false); err != nil || f.Jobs != nil {
		t.Errorf("LoadFile(absent) = %+v, %v; want empty file and nil error", f, err)
	}
}

func TestDefaultConfig_SaneDefaults(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Jobs != 1 {
		t.Errorf("default Jobs = %d, want 1", cfg.Jobs)
	}
	if !cfg.Group {
		t.Error("default Group should be true")
	}
	if cfg.FFmpegPath != "ffmpeg" {
		t.Errorf("default FFmpegPath = %q, want %q", cfg.FFmpegPath, "ffmpeg")
	}
	if cfg.ColorMode != ColorAuto {
		t.Errorf("default ColorMode = %q, want %q", cfg.ColorMode, ColorAuto)
	}
	if cfg.DryRun || cfg.AutoRename {
		t.Error("DryRun and AutoRename should default to false")
	}
}
