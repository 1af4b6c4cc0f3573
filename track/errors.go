/*
errors.go - Centralized error types for the engine

All validation happens before any mutation: callers either get a
structured rejection or the change is applied and persisted in full.
Dangling references (a deleted job still named by shifts) are NOT
errors; rate resolution degrades to zero instead.
*/
package track

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidInput is the generic sentinel under every validation failure.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidDuration is returned for a non-positive payable duration.
	ErrInvalidDuration = errors.New("non-positive shift duration")

	// ErrNoJob is returned when a shift, schedule, or payslip names no job.
	ErrNoJob = errors.New("no job selected")

	// ErrInvalidRate is returned for a non-positive hourly or override rate.
	ErrInvalidRate = errors.New("invalid rate")

	// ErrInvalidInterval is returned for a custom pay interval below one day.
	ErrInvalidInterval = errors.New("invalid interval")

	// ErrInvalidPeriodRange is returned when a range ends before it starts.
	ErrInvalidPeriodRange = errors.New("invalid period: end before start")

	// ErrCascadeDateChange is returned when a series-wide edit also tries to
	// move the target's own date. Changing a date and cascading in the same
	// edit could reorder the series; callers must do it in two steps.
	ErrCascadeDateChange = errors.New("cannot change date and cascade in the same edit")

	// ErrJobNotFound / ErrShiftNotFound / ErrScheduleNotFound /
	// ErrPayslipNotFound are returned for lookups of unknown ids.
	ErrJobNotFound      = errors.New("job not found")
	ErrShiftNotFound    = errors.New("shift not found")
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrPayslipNotFound  = errors.New("payslip not found")

	// ErrBadExport is returned when an import document cannot be decoded.
	ErrBadExport = errors.New("malformed export document")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// ValidationError carries the field and reason of a rejected mutation.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError reports whether the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidDuration) ||
		errors.Is(err, ErrNoJob) ||
		errors.Is(err, ErrInvalidRate) ||
		errors.Is(err, ErrInvalidInterval) ||
		errors.Is(err, ErrInvalidPeriodRange) ||
		errors.Is(err, ErrCascadeDateChange) ||
		errors.Is(err, ErrBadExport)
}

// IsNotFound reports whether the error indicates a missing entity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrJobNotFound) ||
		errors.Is(err, ErrShiftNotFound) ||
		errors.Is(err, ErrScheduleNotFound) ||
		errors.Is(err, ErrPayslipNotFound)
}
