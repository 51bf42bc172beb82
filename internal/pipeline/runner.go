package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/backmassage/mediaconv/internal/config"
	"github.com/backmassage/mediaconv/internal/convert"
	"github.com/backmassage/mediaconv/internal/display"
	"github.com/backmassage/mediaconv/internal/logging"
	"github.com/backmassage/mediaconv/internal/template"
)

// Run is the top-level batch entry point. It discovers units, converts
// each with tpl, and returns aggregate stats. A discovery failure is
// counted as one failed unit.
func Run(ctx context.Context, cfg *config.Config, tpl template.Template, log *logging.Logger) RunStats {
	var stats RunStats
	start := time.Now()

	units, err := Discover(cfg.InputPath, cfg.Group)
	if err != nil {
		log.Error("Input discovery failed: %v", err)
		stats.Failed++
		return stats
	}
	stats.Total = len(units)

	jobs := workerCount(ctx, cfg.Jobs, len(units))
	conv := convert.New(tpl, convert.Options{
		OutputDir:  cfg.OutputDir,
		AutoRename: cfg.AutoRename,
		DryRun:     cfg.DryRun,
		Tool:       cfg.FFmpegPath,
		Verbose:    cfg.Verbose,
		Quiet:      jobs > 1 && !cfg.Verbose,
	}, log)

	logBatchHeader(cfg, log, tpl, &stats, jobs)

	if jobs > 1 {
		runParallel(ctx, conv, units, jobs, log, &stats)
	} else {
		for i, u := range units {
			stats.Current = i + 1

			if ctx.Err() != nil {
				log.Warn("Interrupted")
				break
			}

			processUnit(ctx, cfg, conv, log, u, &stats)
		}
	}

	stats.Elapsed = time.Since(start)
	logSummary(cfg, log, &stats)
	return stats
}

// processUnit converts one unit and records the outcome.
func processUnit(ctx context.Context, cfg *config.Config, conv *convert.Converter, log *logging.Logger, u Unit, stats *RunStats) {
	log.Info("[%d/%d] %s", stats.Current, stats.Total, filepath.Base(u.Path))
	if u.Frames > 0 {
		log.Debug(cfg.Verbose, "  sequence of %d frames", u.Frames)
	}
	stats.Record(conv.Convert(ctx, u.Path))
	fmt.Println()
}

// --- Logging helpers ---

func logBatchHeader(cfg *config.Config, log *logging.Logger, tpl template.Template, stats *RunStats, jobs int) {
	log.Info("Found %d inputs in %s", stats.Total, cfg.InputPath)
	log.Info("Template: %s (-> %s)", tpl.Name, tpl.OutputExtension)
	if tpl.Override != "" {
		log.Info("Overrides: %s", tpl.Override)
	}
	log.Info("Output: %s", cfg.OutputDir)
	if jobs > 1 {
		log.Info("Workers: %d", jobs)
	}
	if cfg.AutoRename {
		log.Info("Collisions: auto-rename with _N suffix")
	} else {
		log.Info("Collisions: skip existing outputs")
	}
	if cfg.DryRun {
		log.Info("Dry run: commands are printed, not executed")
	}
	log.Debug(cfg.Verbose, "Run id: %s", log.RunID())
	fmt.Println()
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("==============================")
	if cfg.DryRun {
		log.Info("Done: %d would convert, %d skipped, %d mismatched, %d failed",
			stats.DryRun, stats.Skipped, stats.Mismatched, stats.Failed)
	} else {
		log.Info("Done: %d converted, %d skipped, %d mismatched, %d failed",
			stats.Converted, stats.Skipped, stats.Mismatched, stats.Failed)
	}
	log.Info("Summary report:")
	log.Info("  Total inputs processed: %d", stats.Current)
	if stats.Interrupted > 0 {
		log.Warn("  Interrupted conversions: %d", stats.Interrupted)
	}
	log.Info("  Elapsed: %s", display.FormatDuration(stats.Elapsed))

	if cfg.DryRun {
		log.Info("  Total output size: n/a (dry run)")
		return
	}
	log.Success("  Total output size: %s", display.FormatBytes(stats.TotalOutputBytes))
}
