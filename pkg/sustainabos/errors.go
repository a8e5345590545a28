package sustainabos

import (
	"errors"
	"fmt"
)

// ErrDataUnavailable indicates the workbook could not be read or did not
// have the expected shape.
var ErrDataUnavailable = errors.New("tracker data unavailable")

// ErrNotFound indicates a vessel is not in the tracker.
var ErrNotFound = errors.New("not found")

// ErrNoData indicates a query ran against a snapshot with no tracker rows.
var ErrNoData = errors.New("no tracker data loaded")

// LoadError represents an error while loading one part of the workbook.
// It matches ErrDataUnavailable with errors.Is.
type LoadError struct {
	Sheet     string
	Component string // "source", "layout", "tracker", "vessels", "devices", "summary"
	Err       error
}

func (e *LoadError) Error() string {
	if e.Sheet == "" {
		return fmt.Sprintf("load error (%s): %v", e.Component, e.Err)
	}
	return fmt.Sprintf("load error in sheet %q (%s): %v", e.Sheet, e.Component, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrDataUnavailable.
func (e *LoadError) Is(target error) bool {
	return target == ErrDataUnavailable
}

// NewLoadError creates a new LoadError.
func NewLoadError(sheet, component string, err error) *LoadError {
	return &LoadError{
		Sheet:     sheet,
		Component: component,
		Err:       err,
	}
}
