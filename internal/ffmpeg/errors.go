package ffmpeg

import "github.com/agext/regexp"

// Patterns for naming the likely cause of a failed run from its stderr.
// Checked in order by [Diagnose]; the first match wins.
var diagnoses = []struct {
	re   *regexp.Regexp
	hint string
}{
	{regexp.MustCompile(`(?im)command not found|: not found$|No such file or directory.*ffmpeg`),
		"ffmpeg is not installed or not on PATH (see --ffmpeg)"},
	{regexp.MustCompile(`(?i)Unrecognized option|Option not found|Missing argument for option`),
		"an override or template flag is not understood by this ffmpeg"},
	{regexp.MustCompile(`(?i)Unknown encoder|Encoder .* not found|Error selecting an encoder`),
		"this ffmpeg build lacks the requested encoder"},
	{regexp.MustCompile(`(?i)Could find no file with path|No such file or directory`),
		"an input file or frame pattern does not exist"},
	{regexp.MustCompile(`(?i)Invalid data found when processing input|moov atom not found`),
		"the input is corrupt or not a media file"},
	{regexp.MustCompile(`(?i)Error (initializing|reinitializing) filters?|No such filter|Invalid argument.*filter`),
		"a filter graph is invalid for this input"},
	{regexp.MustCompile(`(?i)Permission denied|Read-only file system|No space left on device`),
		"the output location is not writable"},
}

// Diagnose returns a short hint for a failed run's stderr, or "" when no
// known pattern matches.
func Diagnose(stderr string) string {
	for _, d := range diagnoses {
		if d.re.MatchString(stderr) {
			return d.hint
		}
	}
	return ""
}
