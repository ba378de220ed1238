package series

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRow marks input rows that cannot be turned into a Record.
	ErrMalformedRow = errors.New("series: malformed row")
	// ErrMisaligned marks series whose x positions differ, which makes stacking undefined.
	ErrMisaligned = errors.New("series: misaligned series")
)

// ParseError reports the input line that failed to parse.
type ParseError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("series: line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("series: line %d: column %s: invalid value %q: %v", e.Line, e.Column, e.Value, e.Err)
}

// Unwrap exposes both ErrMalformedRow and the underlying cause.
func (e *ParseError) Unwrap() []error {
	return []error{ErrMalformedRow, e.Err}
}

// AlignmentError reports the first layer whose x positions disagree with the base layer.
type AlignmentError struct {
	Category string
	Index    int
	Reason   string
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("series: category %q at index %d: %s", e.Category, e.Index, e.Reason)
}

func (e *AlignmentError) Unwrap() error {
	return ErrMisaligned
}
