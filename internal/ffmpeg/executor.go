package ffmpeg

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/pkg/errors"
)

// DefaultShell runs rendered commands. Templates quote their paths for a
// POSIX shell.
const DefaultShell = "sh"

// waitDelay bounds how long a cancelled command may hold its output pipes.
const waitDelay = 2 * time.Second

// ErrToolFailed marks a conversion whose process exited non-zero or could
// not be started.
var ErrToolFailed = errors.New("external tool failed")

// ExecOptions controls where a command's input and output go.
type ExecOptions struct {
	Shell  string    // defaults to DefaultShell
	Stdin  io.Reader // defaults to os.Stdin, so ffmpeg's overwrite prompt can be answered
	Stdout io.Writer // defaults to os.Stdout
	Stderr io.Writer // defaults to os.Stderr; ignored when Quiet
	Quiet  bool      // capture stderr without echoing it
}

// ExecResult holds the outcome of a single command.
type ExecResult struct {
	Stderr   string // everything the command wrote to stderr
	ExitCode int    // -1 when the process did not run to completion
	Err      error  // wraps ErrToolFailed, or the context error on cancel
}

// Execute runs command through the shell and waits for it. Stdout and
// stderr pass through to the terminal as the tool writes them; stderr is
// also captured for failure reporting.
func Execute(ctx context.Context, command string, opts ExecOptions) ExecResult {
	shell := opts.Shell
	if shell == "" {
		shell = DefaultShell
	}
	cmd := exec.CommandContext(ctx, shell, "-c", command)
	cmd.WaitDelay = waitDelay

	cmd.Stdin = opts.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	cmd.Stdout = opts.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	var stderrBuf bytes.Buffer
	switch {
	case opts.Quiet:
		cmd.Stderr = &stderrBuf
	case opts.Stderr != nil:
		cmd.Stderr = io.MultiWriter(&stderrBuf, opts.Stderr)
	default:
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	}

	err := cmd.Run()
	res := ExecResult{Stderr: stderrBuf.String()}
	if err == nil {
		return res
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		res.ExitCode = -1
		res.Err = errors.Wrap(ctxErr, "conversion interrupted")
		return res
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		res.Err = errors.Wrapf(ErrToolFailed, "exit status %d", res.ExitCode)
		return res
	}
	res.ExitCode = -1
	res.Err = errors.Wrapf(ErrToolFailed, "%v", err)
	return res
}
