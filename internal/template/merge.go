package template

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Flag is one "-name value" pair of an override string.
type Flag struct {
	Name  string // with leading dash, e.g. "-crf"
	Value string
}

func (f Flag) String() string { return f.Name + " " + f.Value }

// ParseOverrides splits an override string into flags. Splitting is
// positional on " -", so a value holding a literal " -" is split too.
// A flag without a value fails with ErrMalformedOverride.
func ParseOverrides(s string) ([]Flag, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var flags []Flag
	for _, tok := range splitFlags(" " + s) {
		name, value, found := strings.Cut(tok, " ")
		if name == "-" {
			// " - x": nothing between the dash and the space
			continue
		}
		value = strings.TrimSpace(value)
		if !found || value == "" {
			return nil, errors.Wrapf(ErrMalformedOverride, "flag %q has no value", name)
		}
		flags = append(flags, Flag{Name: name, Value: value})
	}
	return flags, nil
}

// splitFlags splits s on " -", drops whatever precedes the first flag and
// puts the dash back on every token.
func splitFlags(s string) []string {
	parts := strings.Split(s, " -")
	return lo.Map(parts[1:], func(p string, _ int) string { return "-" + p })
}

// flagTokens returns the "-flag value" tokens of a template command, in
// order, without the input prefix, the override slot or the output suffix.
func flagTokens(command string) []string {
	body := strings.ReplaceAll(command, Prefix, "")
	body = strings.ReplaceAll(body, overrideSlot, "")
	body = strings.ReplaceAll(body, outputSuffix, "")
	return splitFlags(body)
}

// rebuild joins merged tokens back into a command. The prefix and the
// tokens are always separated by one space, so a merge that removes every
// token leaves two spaces before the override slot.
func rebuild(tokens []string) string {
	return Prefix + " " + strings.Join(tokens, " ") + overrideSlot + outputSuffix
}

// Merge folds override into t and returns the result. Every template token
// containing an override flag name as a substring is dropped; the order of
// the remaining tokens is kept. The trimmed override becomes the active
// override rendered at {extra_options}. An empty override returns t with
// no active override. t itself is not modified.
func Merge(t Template, override string) (Template, error) {
	override = strings.TrimSpace(override)
	merged := t
	merged.Override = override
	if override == "" {
		return merged, nil
	}

	flags, err := ParseOverrides(override)
	if err != nil {
		return Template{}, errors.Wrapf(err, "template %s", t.Name)
	}
	kept := lo.Filter(flagTokens(t.Command), func(tok string, _ int) bool {
		return !lo.ContainsBy(flags, func(f Flag) bool { return strings.Contains(tok, f.Name) })
	})
	merged.Command = rebuild(kept)
	return merged, nil
}
