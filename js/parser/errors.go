package parser

import (
	"errors"
	"fmt"
)

// ErrInvalidUTF8 is matched by the error returned for source text that is
// not valid UTF-8.
var ErrInvalidUTF8 = errors.New("source is not valid UTF-8")

// EncodingError reports the first invalid UTF-8 sequence of the input.
type EncodingError struct {
	File   string
	Offset int
}

func (e *EncodingError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: %v at byte %d", e.File, ErrInvalidUTF8, e.Offset)
	}
	return fmt.Sprintf("%v at byte %d", ErrInvalidUTF8, e.Offset)
}

func (e *EncodingError) Is(target error) bool {
	return target == ErrInvalidUTF8
}

// ConfigError reports an unrecognized configuration value.
type ConfigError struct {
	Option string
	Value  string
	Valid  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %q (valid: %s)", e.Option, e.Value, e.Valid)
}
