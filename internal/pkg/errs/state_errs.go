package errs

import "fmt"

// IllegalStateTransitionError reports that a state machine operation was invoked
// while its precondition did not hold. The aggregate is left unchanged.
type IllegalStateTransitionError struct {
	Operation string
	From      string
	Cause     error
}

// NewIllegalStateTransitionError creates an IllegalStateTransitionError for the
// named operation attempted from the given state.
func NewIllegalStateTransitionError(operation, from string) *IllegalStateTransitionError {
	return &IllegalStateTransitionError{Operation: operation, From: from}
}

// NewIllegalStateTransitionErrorWithCause creates an IllegalStateTransitionError
// wrapping an underlying cause.
func NewIllegalStateTransitionErrorWithCause(operation, from string, cause error) *IllegalStateTransitionError {
	return &IllegalStateTransitionError{Operation: operation, From: from, Cause: cause}
}

func (e *IllegalStateTransitionError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: cannot %s from %s (cause: %s)",
			ErrIllegalStateTransition, e.Operation, e.From, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: cannot %s from %s", ErrIllegalStateTransition, e.Operation, e.From))
}

func (e *IllegalStateTransitionError) Unwrap() error {
	return ErrIllegalStateTransition
}

// DestroyBlockedError reports an attempt to delete an object whose state forbids deletion.
type DestroyBlockedError struct {
	ParamName string
	ID        any
	State     string
}

// NewDestroyBlockedError creates a DestroyBlockedError for the object with the
// given identifier in the given state.
func NewDestroyBlockedError(paramName string, id any, state string) *DestroyBlockedError {
	return &DestroyBlockedError{ParamName: paramName, ID: id, State: state}
}

func (e *DestroyBlockedError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s %s is %s", ErrDestroyBlocked, e.ParamName, e.ID, e.State))
}

func (e *DestroyBlockedError) Unwrap() error {
	return ErrDestroyBlocked
}
