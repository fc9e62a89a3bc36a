package siteconf

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig matches every *InvalidConfigError via errors.Is.
var ErrInvalidConfig = errors.New("invalid config")

// ErrUnknownProfile is returned when the requested profile is not defined in
// the configuration file.
var ErrUnknownProfile = errors.New("unknown profile")

// InvalidConfigError reports the first field that violates an invariant.
type InvalidConfigError struct {
	Field  string // Key path as written in the file, e.g. "editPost.url"
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("siteconf: invalid config: %s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidConfig) match.
func (e *InvalidConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

func invalid(field, format string, args ...any) *InvalidConfigError {
	return &InvalidConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// InvalidField returns the offending field name if err is (or wraps) an
// *InvalidConfigError.
func InvalidField(err error) (string, bool) {
	var ic *InvalidConfigError
	if errors.As(err, &ic) {
		return ic.Field, true
	}
	return "", false
}
