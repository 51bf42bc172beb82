// Command mediaconv is the CLI entrypoint for the batch media converter.
//
// It parses flags, resolves the conversion template with any overrides,
// and either answers an informational query (template listing, version,
// command info, --check) or runs the conversion pipeline.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/backmassage/mediaconv/internal/check"
	"github.com/backmassage/mediaconv/internal/config"
	"github.com/backmassage/mediaconv/internal/display"
	"github.com/backmassage/mediaconv/internal/logging"
	"github.com/backmassage/mediaconv/internal/pipeline"
	"github.com/backmassage/mediaconv/internal/template"
)

// version is injected at build time via -ldflags "-X main.version=...".
var version = "1.0.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cfg := config.DefaultConfig()
	code := 0

	cmd := &cobra.Command{
		Use:           "mediaconv -t <template> -i <input> [flags]",
		Short:         "Convert media files and frame sequences with ffmpeg command templates",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := config.BindFlags(cmd.Flags(), &cfg)
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		if err := flags.Finish(); err != nil {
			return err
		}
		code = execute(cmd, &cfg, stdout, stderr)
		return nil
	}

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "mediaconv: %v\n", err)
		return 1
	}
	return code
}

func execute(cmd *cobra.Command, cfg *config.Config, stdout, stderr io.Writer) int {
	// Phase 1: Bootstrap. The logger doesn't exist yet, so queries print
	// directly and errors go to stderr via fmt.
	reg, err := registry(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "mediaconv: %v\n", err)
		return 1
	}

	if cfg.TemplateName == template.ListName {
		fmt.Fprintln(stdout, strings.Join(reg.Names(), " "))
		return 0
	}
	if cfg.ShowVersion {
		fmt.Fprintln(stdout, "mediaconv "+version)
		return 0
	}

	// A missing input is reported after the template resolves, so an
	// unknown name or a bad override is the error the user sees first.
	invalid := cfg.Validate()
	if invalid != nil && !errors.Is(invalid, config.ErrMissingInput) {
		return configError(cmd, invalid, stderr)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.CheckOnly {
		log, err := logging.NewLogger(cfg)
		if err != nil {
			fmt.Fprintf(stderr, "mediaconv: %v\n", err)
			return 1
		}
		defer log.Close()
		display.PrintBanner()
		check.RunCheck(ctx, cfg, reg, log)
		return 0
	}

	tpl, err := reg.Lookup(cfg.TemplateName)
	if err != nil {
		fmt.Fprintf(stderr, "mediaconv: %v\n", err)
		return 1
	}
	tpl, err = template.Merge(tpl, cfg.ExtraOptions)
	if err != nil {
		fmt.Fprintf(stderr, "mediaconv: %v\n", err)
		return 1
	}

	if cfg.CommandInfo {
		fmt.Fprintf(stdout, "%s: %s\n", tpl.Name, tpl.Expanded())
		return 0
	}
	if invalid != nil {
		return configError(cmd, invalid, stderr)
	}

	log, err := logging.NewLogger(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "mediaconv: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available. All output goes through log from here on.
	display.PrintBanner()

	log.Info("=== mediaconv v%s ===", version)
	log.Info("In:  %s", cfg.InputPath)
	log.Info("Out: %s", cfg.OutputDir)
	if cfg.DryRun {
		log.Warn("DRY RUN - no commands will be executed")
	}
	log.Info("")

	// Fail fast if the shell or ffmpeg are unavailable.
	if !cfg.DryRun {
		if err := check.CheckDeps(cfg); err != nil {
			log.Error("%v", err)
			return 1
		}
		if missing, err := check.MissingEncoders(ctx, cfg.FFmpegPath, tpl); err != nil {
			log.Debug(cfg.Verbose, "Encoder check skipped: %v", err)
		} else if len(missing) > 0 {
			log.Warn("%s does not provide: %s", cfg.FFmpegPath, strings.Join(missing, ", "))
		}
	}

	// Phase 3: Signal handling. Cancel the context on SIGINT/SIGTERM so the
	// pipeline stops between units.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Received interrupt, stopping after the current file")
			cancel()
		case <-ctx.Done():
		}
	}()

	// Phase 4: Run pipeline (discover → name → render → execute).
	stats := pipeline.Run(ctx, cfg, tpl, log)

	if stats.Failed > 0 {
		return 1
	}
	return 0
}

// configError reports a validation failure. Missing required arguments
// also print the usage text.
func configError(cmd *cobra.Command, err error, stderr io.Writer) int {
	if errors.Is(err, config.ErrMissingTemplate) || errors.Is(err, config.ErrMissingInput) {
		cmd.SetOut(stderr)
		_ = cmd.Usage()
		fmt.Fprintf(stderr, "mediaconv: error: %v\n", err)
		return 1
	}
	fmt.Fprintf(stderr, "mediaconv: %v\n", err)
	return 1
}

// registry returns the built-in templates, extended by the --templates
// catalogue when one is configured.
func registry(cfg *config.Config) (*template.Registry, error) {
	reg := template.Builtin()
	if cfg.TemplatesFile == "" {
		return reg, nil
	}
	extra, err := template.LoadFile(cfg.TemplatesFile)
	if err != nil {
		return nil, err
	}
	return reg.Extend(extra)
}
