// Package check provides system diagnostics (--check mode) and pre-pipeline
// dependency validation (CheckDeps) for ffmpeg, the shell, and the encoders
// templates rely on.
package check

import (
	"context"
	"os/exec"
	"sort"
	"strings"

	"github.com/agext/regexp"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/backmassage/mediaconv/internal/config"
	"github.com/backmassage/mediaconv/internal/display"
	"github.com/backmassage/mediaconv/internal/ffmpeg"
	"github.com/backmassage/mediaconv/internal/template"
)

// Sentinel errors returned by CheckDeps when a required tool is missing.
var (
	ErrFFmpegNotFound = errors.New("ffmpeg not found")
	ErrShellNotFound  = errors.New("sh not found on PATH")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// codecRe matches codec selections such as "-c:v libx264", "-vcodec prores_ks"
// or "-acodec pcm_s16le".
var codecRe = regexp.MustCompile(`(?:^|\s)-(?:c|codec|vcodec|acodec|scodec)(?::[avs](?::\d+)?)?\s+([^\s"']+)`)

// RunCheck runs the interactive --check flow: host summary, shell, ffmpeg
// version, and availability of every encoder the registry's templates use.
// This is informational only; it does not stop on failure.
func RunCheck(ctx context.Context, cfg *config.Config, reg *template.Registry, log Logger) {
	log.Info("=== System Check ===")

	checkSystem(ctx, log)
	checkShell(log)
	if !checkFFmpeg(ctx, cfg.FFmpegPath, log) {
		return
	}
	checkEncoders(ctx, cfg.FFmpegPath, reg, log)
}

// checkSystem logs the platform, CPU and memory via gopsutil.
func checkSystem(ctx context.Context, log Logger) {
	if info, err := host.InfoWithContext(ctx); err == nil {
		log.Info("Host: %s %s (%s)", info.Platform, info.PlatformVersion, info.KernelArch)
	} else {
		log.Warn("Could not read host info: %v", err)
	}

	logical, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		log.Warn("Could not count CPUs: %v", err)
	} else {
		physical, _ := cpu.CountsWithContext(ctx, false)
		model := ""
		if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
			model = infos[0].ModelName
		}
		log.Info("CPU: %d logical / %d physical %s", logical, physical, model)
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		log.Info("Memory: %s total, %s available", display.FormatBytes(int64(vm.Total)), display.FormatBytes(int64(vm.Available)))
	}
}

// checkShell verifies the shell that runs rendered commands is on PATH.
func checkShell(log Logger) {
	path, err := exec.LookPath(ffmpeg.DefaultShell)
	if err != nil {
		log.Error("%s not found; commands cannot be run", ffmpeg.DefaultShell)
		return
	}
	log.Success("shell: %s", path)
}

// checkFFmpeg verifies ffmpeg is on PATH and logs its version string.
func checkFFmpeg(ctx context.Context, tool string, log Logger) bool {
	if _, err := exec.LookPath(tool); err != nil {
		log.Error("%s not found", tool)
		return false
	}
	out, err := exec.CommandContext(ctx, tool, "-version").Output()
	if err != nil {
		log.Warn("%s found but -version failed: %v", tool, err)
		return false
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Success("ffmpeg: %s", firstLine)
	return true
}

// checkEncoders reports each encoder referenced by a registered template.
func checkEncoders(ctx context.Context, tool string, reg *template.Registry, log Logger) {
	available, err := listEncoders(ctx, tool)
	if err != nil {
		log.Warn("Could not list encoders: %v", err)
		return
	}
	users := map[string][]string{}
	for _, name := range reg.Names() {
		t, _ := reg.Lookup(name)
		for _, enc := range Encoders(t) {
			users[enc] = append(users[enc], name)
		}
	}
	encoders := lo.Keys(users)
	sort.Strings(encoders)

	log.Info("Encoders used by templates:")
	for _, enc := range encoders {
		if available[enc] {
			log.Success("  %s", enc)
		} else {
			log.Error("  %s missing (needed by %s)", enc, strings.Join(users[enc], ", "))
		}
	}
}

// CheckDeps is the pre-pipeline validation: it verifies that the shell and
// the configured ffmpeg are on PATH. Returns a sentinel error on failure.
func CheckDeps(cfg *config.Config) error {
	if _, err := exec.LookPath(ffmpeg.DefaultShell); err != nil {
		return ErrShellNotFound
	}
	if _, err := exec.LookPath(cfg.FFmpegPath); err != nil {
		return errors.Wrap(ErrFFmpegNotFound, cfg.FFmpegPath)
	}
	return nil
}

// MissingEncoders lists the encoders t selects that tool does not provide.
func MissingEncoders(ctx context.Context, tool string, t template.Template) ([]string, error) {
	available, err := listEncoders(ctx, tool)
	if err != nil {
		return nil, err
	}
	return lo.Filter(Encoders(t), func(enc string, _ int) bool { return !available[enc] }), nil
}

// Encoders returns the distinct encoders t's command and active override
// select, in order of appearance. Stream copy is not an encoder.
func Encoders(t template.Template) []string {
	var out []string
	for _, m := range codecRe.FindAllStringSubmatch(t.Command+" "+t.Override, -1) {
		if m[1] != "copy" {
			out = append(out, m[1])
		}
	}
	return lo.Uniq(out)
}

// --- internal helpers ---

// listEncoders runs "ffmpeg -encoders" and returns the encoder names.
func listEncoders(ctx context.Context, tool string) (map[string]bool, error) {
	out, err := exec.CommandContext(ctx, tool, "-hide_banner", "-encoders").Output()
	if err != nil {
		return nil, errors.Wrap(err, "list encoders")
	}
	return parseEncoders(string(out)), nil
}

// parseEncoders reads the table printed by "ffmpeg -encoders": a legend,
// a dashed separator, then one "FLAGS name description" row per encoder.
func parseEncoders(out string) map[string]bool {
	names := map[string]bool{}
	inTable := false
	for _, line := range strings.Split(out, "\n") {
		trimmed := strings.TrimSpace(line)
		if !inTable {
			inTable = strings.HasPrefix(trimmed, "---")
			continue
		}
		if fields := strings.Fields(trimmed); len(fields) >= 2 {
			names[fields[1]] = true
		}
	}
	return names
}
