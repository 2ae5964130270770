package workorder

import (
	"errors"
	"fmt"

	"workplans/internal/pkg/errs"
)

// ErrInvalidState is returned when an operation is attempted from a lifecycle
// state that does not permit it. Callers classify these failures with
// errors.Is; the wrapped message names the offending transition.
var ErrInvalidState = errors.New("work order is in an invalid state for this operation")

// Status represents the lifecycle state of a work order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct processing workflow.
//
// State transitions:
//
//	Queued ──> Active ──┬──> Completed
//	   │         │      └──> Cancelled
//	   │         │
//	   └─────────┴──> Broken
//	                (manual repair only)
//
// Completed and Cancelled are terminal. Broken is terminal except for an
// out-of-band administrative repair that resets it to a valid prior state.
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Queued is the initial status assigned at plan dispatch.
	// Queued orders are waiting to be submitted to the execution system.
	Queued

	// Active indicates the order has been submitted to the execution
	// system and is awaiting completion or cancellation.
	Active

	// Completed indicates the execution system reported successful closure.
	// This is a final state with no further transitions allowed.
	Completed

	// Cancelled indicates the execution system reported cancellation.
	// This is a final state with no further transitions allowed.
	Cancelled

	// Broken indicates an unrecoverable processing failure. A broken order
	// can only be fixed by manual administrative intervention.
	Broken
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Queued:    "queued",
		Active:    "active",
		Completed: "completed",
		Cancelled: "cancelled",
		Broken:    "broken",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Queued:    "queued",
		Active:    "active",
		Completed: "completed",
		Cancelled: "cancelled",
		Broken:    "broken",
	}
}

// StatusFromString parses the lowercase status name used in persistence and
// on the wire. Returns an error for "unknown" and anything unrecognized.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Valid statuses are: Queued, Active, Completed, Cancelled, Broken.
// Unknown (0) and any other values are invalid.
//
// This method is used to ensure Status values from external sources
// (e.g., database, API) are valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the lowercase name of the status, matching the
// representation used in submission documents and lifecycle events.
// It is safe to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Closed reports whether the status is terminal by normal processing,
// i.e. Completed or Cancelled.
func (s Status) Closed() bool {
	return s == Completed || s == Cancelled
}

// ValidateSubmit checks if the status allows submission to the execution
// system without performing the transition. Only Queued orders may be
// submitted.
func (s Status) ValidateSubmit() error {
	if s != Queued {
		return fmt.Errorf("%w: %s is not a valid status to submit", ErrInvalidState, s)
	}
	return nil
}

// Submit transitions the status to Active.
//
// Valid transitions:
//   - Queued -> Active (submission to the execution system)
//
// Returns (0, error) wrapping ErrInvalidState if the transition is not
// allowed from the current status.
func (s Status) Submit() (Status, error) {
	if err := s.ValidateSubmit(); err != nil {
		return 0, err
	}

	return Active, nil
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - Active -> Completed (execution system reported successful closure)
//
// Returns (0, error) wrapping ErrInvalidState if the transition is not
// allowed from the current status.
func (s Status) Complete() (Status, error) {
	if s != Active {
		return 0, fmt.Errorf("%w: %s is not a valid status to complete", ErrInvalidState, s)
	}

	return Completed, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Active -> Cancelled (execution system reported cancellation)
//
// Returns (0, error) wrapping ErrInvalidState if the transition is not
// allowed from the current status.
func (s Status) Cancel() (Status, error) {
	if s != Active {
		return 0, fmt.Errorf("%w: %s is not a valid status to cancel", ErrInvalidState, s)
	}

	return Cancelled, nil
}

// Break transitions the status to Broken. Breaking is a one-way write with
// no side effects beyond the flag; callers must not assume any automatic
// compensation.
//
// Valid transitions:
//   - Queued -> Broken
//   - Active -> Broken
//
// Terminal statuses cannot break. Returns (0, error) wrapping
// ErrInvalidState if the transition is not allowed.
func (s Status) Break() (Status, error) {
	if s != Queued && s != Active {
		return 0, fmt.Errorf("%w: %s is not a valid status to break", ErrInvalidState, s)
	}

	return Broken, nil
}

// Repair resets a Broken status to a valid prior state. This is the manual
// administrative path out of Broken; it is never driven automatically.
//
// Valid transitions:
//   - Broken -> Queued
//   - Broken -> Active
//
// Returns (0, error) wrapping ErrInvalidState if the status is not Broken
// or the target is not a valid prior state.
func (s Status) Repair(target Status) (Status, error) {
	if s != Broken {
		return 0, fmt.Errorf("%w: %s is not broken and cannot be repaired", ErrInvalidState, s)
	}
	if target != Queued && target != Active {
		return 0, fmt.Errorf("%w: %s is not a valid repair target", ErrInvalidState, target)
	}

	return target, nil
}
