// Package pipeline orchestrates input discovery, per-unit conversion, and
// batch summary reporting.
//
// Run discovers the units for the configured input (a file, a frame
// pattern, or the direct entries of a directory with numbered frames
// collapsed into patterns), converts them one after another or on a
// bounded worker pool, and returns aggregate stats.
package pipeline
