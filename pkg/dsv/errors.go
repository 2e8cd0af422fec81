package dsv

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoHeader is returned when a file contains no fieldnames line,
	// either because it is empty or because every line is preface.
	ErrNoHeader = errors.New("no header found")
	// ErrClosed is returned by operations on a closed reader or writer.
	ErrClosed = errors.New("already closed")
	// ErrProjectionConflict is returned when both Include and Exclude are
	// set on a writer.
	ErrProjectionConflict = errors.New("only one of include or exclude may be given")
	// ErrEmptyProjection is returned when a projection leaves no fields to
	// write.
	ErrEmptyProjection = errors.New("projection selects no fields")
)

// FieldMismatchError reports a file whose header names different fields than
// the schema expects. Order matters: the same names in a different order do
// not match.
type FieldMismatchError struct {
	Path   string
	Schema string
	Want   []string
	Got    []string
}

func (e *FieldMismatchError) Error() string {
	return fmt.Sprintf("%s: file fields [%s] do not match %s fields [%s]",
		e.Path, strings.Join(e.Got, ", "), e.Schema, strings.Join(e.Want, ", "))
}

// ShapeError reports a data row whose token count differs from the header's
// field count.
type ShapeError struct {
	Got  int
	Want int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("row has %d fields, expected %d", e.Got, e.Want)
}

// RowError locates a failure on a specific line of a file. The wrapped error
// is a *ShapeError or a coercion failure from the schema package.
type RowError struct {
	Path string
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
