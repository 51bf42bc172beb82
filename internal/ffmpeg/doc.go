// Package ffmpeg runs rendered template commands and reports how they ended.
//
// Commands are full shell lines: paths arrive already quoted by the
// template, so Execute hands the line to "sh -c" rather than splitting it.
// A non-zero exit is an error value, never a panic; the caller logs it and
// moves on to the next file.
package ffmpeg
