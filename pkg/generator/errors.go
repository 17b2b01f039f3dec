package generator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownOption is matched by every *UnknownOptionError.
var ErrUnknownOption = errors.New("unknown option")

// UnknownOptionError reports an option value (or key) the registry does not
// declare for a component.
type UnknownOptionError struct {
	Component string
	Option    string
	Value     string
	Valid     []string
}

func (e *UnknownOptionError) Error() string {
	if len(e.Valid) == 0 {
		return fmt.Sprintf("%s: unknown option %s=%q", e.Component, e.Option, e.Value)
	}
	return fmt.Sprintf("%s: unknown %s %q (valid: %s)", e.Component, e.Option, e.Value, strings.Join(e.Valid, ", "))
}

func (e *UnknownOptionError) Is(target error) bool {
	return target == ErrUnknownOption
}
