package template

import "github.com/pkg/errors"

// Sentinel errors. Callers match them with errors.Is; the returned errors
// carry the template name or offending token as context.
var (
	ErrUnknownTemplate   = errors.New("no converter found")
	ErrMalformedOverride = errors.New("malformed override")
	ErrInvalidTemplate   = errors.New("invalid template")
	ErrDuplicateTemplate = errors.New("duplicate template name")
)
