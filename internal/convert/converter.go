// Package convert runs one template against one input: it names the
// output, applies the collision policy, renders the command and executes
// it.
package convert

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/backmassage/mediaconv/internal/ffmpeg"
	"github.com/backmassage/mediaconv/internal/media"
	"github.com/backmassage/mediaconv/internal/naming"
	"github.com/backmassage/mediaconv/internal/sequence"
	"github.com/backmassage/mediaconv/internal/template"
)

// ErrTypeMismatch is reported when an input's extension is not accepted by
// the template.
var ErrTypeMismatch = errors.New("file type is not matching")

// stderrTail is how many stderr lines are echoed for a failed quiet run.
const stderrTail = 20

// Status is the outcome of one conversion.
type Status int

const (
	Converted     Status = iota // tool ran and exited 0
	DryRun                      // command rendered, not run
	SkippedExists               // output taken, auto-rename off
	TypeMismatch                // extension not accepted
	ToolFailed                  // tool exited non-zero or could not start
	Failed                      // local error before the tool ran
	Interrupted                 // cancelled while running
)

func (s Status) String() string {
	switch s {
	case Converted:
		return "converted"
	case DryRun:
		return "dry-run"
	case SkippedExists:
		return "skipped"
	case TypeMismatch:
		return "mismatched"
	case ToolFailed:
		return "tool failed"
	case Failed:
		return "failed"
	case Interrupted:
		return "interrupted"
	}
	return "unknown"
}

// Result describes one conversion.
type Result struct {
	Input       string
	Output      string // reserved output path; empty when none was reserved
	Command     string // rendered command; empty when nothing was rendered
	Status      Status
	Err         error
	ExitCode    int
	OutputBytes int64 // size of a single-file output after success
	Elapsed     time.Duration
}

// Logger is the logging surface Convert needs.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Render(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// Options controls how a Converter names and runs conversions.
type Options struct {
	OutputDir  string
	AutoRename bool
	DryRun     bool
	Tool       string // replaces the leading "ffmpeg"; empty keeps it
	Verbose    bool
	Quiet      bool // capture tool stderr instead of streaming it
}

// execFunc runs a rendered command.
type execFunc func(ctx context.Context, command string, opts ffmpeg.ExecOptions) ffmpeg.ExecResult

// Converter applies one template to inputs. Convert is safe for concurrent
// use; output names are reserved through a shared claim set.
type Converter struct {
	tpl    template.Template
	opts   Options
	claims *naming.Claims
	log    Logger
	exec   execFunc
}

// New returns a Converter for tpl.
func New(tpl template.Template, opts Options, log Logger) *Converter {
	return &Converter{
		tpl:    tpl,
		opts:   opts,
		claims: naming.NewClaims(),
		log:    log,
		exec:   ffmpeg.Execute,
	}
}

// Convert processes one input file or frame pattern.
func (c *Converter) Convert(ctx context.Context, input string) Result {
	start := time.Now()
	res := c.convert(ctx, input)
	res.Elapsed = time.Since(start)
	return res
}

func (c *Converter) convert(ctx context.Context, input string) Result {
	res := Result{Input: input}
	base := filepath.Base(input)
	stem, ext := media.SplitExt(base)
	outName := naming.OutputName(base, c.tpl.OutputExtension)
	requested := filepath.Join(c.opts.OutputDir, outName)

	c.log.Debug(c.opts.Verbose, "source: %s", input)
	c.log.Debug(c.opts.Verbose, "stem: %s, extension: %s", stem, ext)
	c.log.Debug(c.opts.Verbose, "output: %s", requested)

	if !media.Matches(input, c.tpl.Extensions) {
		c.log.Warn("file type is not matching: %s -> %v", input, c.tpl.Extensions)
		res.Status = TypeMismatch
		res.Err = errors.Wrapf(ErrTypeMismatch, "%s", input)
		return res
	}
	c.sniff(input)

	output, err := c.claims.Reserve(input, requested, c.opts.AutoRename)
	if err != nil {
		if errors.Is(err, naming.ErrOutputExists) {
			c.log.Warn("%s already exists, skipping (use -a to auto-rename)", requested)
			res.Status = SkippedExists
		} else {
			c.log.Error("reserve output: %v", err)
			res.Status = Failed
		}
		res.Err = err
		return res
	}
	res.Output = output
	if output != requested {
		c.log.Info("renamed output -> %s", filepath.Base(output))
	}

	if err := os.MkdirAll(c.opts.OutputDir, 0o755); err != nil {
		c.log.Error("create output directory: %v", err)
		res.Status = Failed
		res.Err = errors.Wrap(err, "create output directory")
		return res
	}

	ropts := template.RenderOptions{Tool: c.opts.Tool}
	if sequence.IsPattern(input) {
		ropts.StartNumber = c.startNumber(input)
	}
	res.Command = c.tpl.Render(input, output, ropts)
	c.log.Info("converting with %s", c.tpl.Name)
	c.log.Render("%s", res.Command)

	if c.opts.DryRun {
		c.log.Success("[DRY] Would convert -> %s", output)
		res.Status = DryRun
		return res
	}

	run := c.exec(ctx, res.Command, ffmpeg.ExecOptions{Quiet: c.opts.Quiet})
	res.ExitCode = run.ExitCode
	if run.Err != nil {
		res.Err = run.Err
		c.removePartial(output)
		if ctx.Err() != nil {
			c.log.Warn("interrupted: %s", base)
			res.Status = Interrupted
			return res
		}
		res.Status = ToolFailed
		c.logFailure(base, run)
		return res
	}

	res.Status = Converted
	if fi, err := os.Stat(output); err == nil {
		res.OutputBytes = fi.Size()
	}
	c.log.Success("%s -> %s", base, filepath.Base(output))
	return res
}

// startNumber finds the first frame on disk for pattern. The tool is run
// without -start_number when no frame matches.
func (c *Converter) startNumber(pattern string) string {
	n, ok, err := sequence.StartNumber(pattern)
	if err != nil {
		c.log.Warn("could not scan frames: %v", err)
		return ""
	}
	if !ok {
		c.log.Warn("no frame found for %s", pattern)
		return ""
	}
	c.log.Debug(c.opts.Verbose, "start number: %s", n)
	return n
}

// sniff logs the detected content type in verbose mode and warns when it
// belongs to a different family than the extension suggests.
func (c *Converter) sniff(input string) {
	if !c.opts.Verbose || sequence.IsPattern(input) {
		return
	}
	d, err := media.Detect(input)
	if err != nil {
		c.log.Debug(true, "content type unknown: %v", err)
		return
	}
	c.log.Debug(true, "content type: %s", d.MIME)
	if d.Disagrees(input) {
		c.log.Warn("%s looks like %s despite its extension", filepath.Base(input), d.MIME)
	}
}

// removePartial deletes a single-file output written by a failed run.
// Frame outputs are patterns and are left alone.
func (c *Converter) removePartial(output string) {
	if sequence.IsPattern(output) {
		return
	}
	if err := os.Remove(output); err == nil {
		c.log.Debug(c.opts.Verbose, "removed partial output %s", output)
	}
}

func (c *Converter) logFailure(base string, run ffmpeg.ExecResult) {
	c.log.Error("%s: %v", base, run.Err)
	if hint := ffmpeg.Diagnose(run.Stderr); hint != "" {
		c.log.Error("  likely cause: %s", hint)
	}
	if !c.opts.Quiet {
		return
	}
	lines := strings.Split(strings.TrimRight(run.Stderr, "\n"), "\n")
	if len(lines) > stderrTail {
		lines = lines[len(lines)-stderrTail:]
	}
	for _, l := range lines {
		if l != "" {
			c.log.Error("  %s", l)
		}
	}
}
