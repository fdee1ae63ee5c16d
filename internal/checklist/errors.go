package checklist

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCategory is returned when a category is neither health nor fire.
var ErrUnknownCategory = errors.New("unknown category")

// ValidationError lists the required fields a new check was missing.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("fill in all required fields (missing: %s)", strings.Join(e.Fields, ", "))
}
