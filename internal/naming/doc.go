// Package naming builds output file names and resolves collisions with files
// already on disk or reserved earlier in the same run.
//
// Output names follow the input stem: a video or audio target keeps the
// stem and swaps the extension, an image target gets a "%04d" frame
// placeholder. On collision, auto-rename probes "_1", "_2", … suffixes; with
// auto-rename off the file is skipped.
package naming
