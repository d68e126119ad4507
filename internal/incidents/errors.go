package incidents

import (
	"errors"
	"fmt"
)

// ErrNoData reports that a window holds no incidents. It marks an empty
// rendering state, not a failure.
var ErrNoData = errors.New("no incidents in window")

// LoadError reports that the dataset could not be fetched or parsed.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// RowError reports a field of a CSV row that failed type coercion.
type RowError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: column %s: invalid value %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

var errNegative = errors.New("negative count")
