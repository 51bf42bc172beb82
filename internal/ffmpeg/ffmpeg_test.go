package ffmpeg

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath(DefaultShell); err != nil {
		t.Skip("no sh on PATH")
	}
}

func TestExecute_Success(t *testing.T) {
	requireShell(t)
	var out bytes.Buffer
	res := Execute(context.Background(), `echo "hello world"`, ExecOptions{Stdout: &out})
	if res.Err != nil {
		t.Fatalf("Execute: %v", res.Err)
	}
	if got := strings.TrimSpace(out.String()); got != "hello world" {
		t.Errorf("stdout = %q, want %q", got, "hello world")
	}
	if res.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", res.ExitCode)
	}
}

func TestExecute_Stdin(t *testing.T) {
	requireShell(t)
	var out bytes.Buffer
	res := Execute(context.Background(), `read answer; echo "answer=$answer"`, ExecOptions{
		Stdin:  strings.NewReader("y\n"),
		Stdout: &out,
	})
	if res.Err != nil {
		t.Fatalf("Execute: %v", res.Err)
	}
	if got := strings.TrimSpace(out.String()); got != "answer=y" {
		t.Errorf("stdout = %q, want %q", got, "answer=y")
	}
}

func TestExecute_NonZeroExit(t *testing.T) {
	requireShell(t)
	var stderr bytes.Buffer
	res := Execute(context.Background(), `echo boom >&2; exit 3`, ExecOptions{Stderr: &stderr})
	if !errors.Is(res.Err, ErrToolFailed) {
		t.Fatalf("Err = %v, want ErrToolFailed", res.Err)
	}
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
	if !strings.Contains(res.Stderr, "boom") {
		t.Errorf("captured stderr = %q", res.Stderr)
	}
	if !strings.Contains(stderr.String(), "boom") {
		t.Errorf("stderr not passed through: %q", stderr.String())
	}
}

func TestExecute_Quiet(t *testing.T) {
	requireShell(t)
	var stderr bytes.Buffer
	res := Execute(context.Background(), `echo hidden >&2`, ExecOptions{Stderr: &stderr, Quiet: true})
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	if stderr.Len() != 0 {
		t.Errorf("quiet run echoed stderr: %q", stderr.String())
	}
	if !strings.Contains(res.Stderr, "hidden") {
		t.Errorf("quiet run did not capture stderr: %q", res.Stderr)
	}
}

func TestExecute_Cancelled(t *testing.T) {
	requireShell(t)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	res := Execute(ctx, `sleep 5`, ExecOptions{})
	if res.Err == nil {
		t.Fatal("expected an error from a cancelled run")
	}
	if errors.Is(res.Err, ErrToolFailed) {
		t.Errorf("cancelled run reported as tool failure: %v", res.Err)
	}
	if !errors.Is(res.Err, context.DeadlineExceeded) {
		t.Errorf("Err = %v, want context.DeadlineExceeded", res.Err)
	}
}

func TestDiagnose(t *testing.T) {
	tests := []struct {
		name   string
		stderr string
		want   string
	}{
		{"missing binary", "sh: 1: ffmpeg: not found\n", "ffmpeg is not installed or not on PATH (see --ffmpeg)"},
		{"bad option", "Unrecognized option 'crff'.\nError splitting the argument list", "an override or template flag is not understood by this ffmpeg"},
		{"missing encoder", "Unknown encoder 'libfdk_aac'", "this ffmpeg build lacks the requested encoder"},
		{"missing frames", "Could find no file with path 'shot.%04d.png' and index in the range 0-4", "an input file or frame pattern does not exist"},
		{"corrupt input", "clip.mov: Invalid data found when processing input", "the input is corrupt or not a media file"},
		{"unknown", "something else entirely", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Diagnose(tt.stderr); got != tt.want {
				t.Errorf("Diagnose(%q) = %q, want %q", tt.stderr, got, tt.want)
			}
		})
	}
}
