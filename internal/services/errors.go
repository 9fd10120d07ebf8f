package services

import "errors"

var (
	// ErrInvalidTransition indicates the requested operation is not allowed
	// from the workflow's current step
	ErrInvalidTransition = errors.New("operation not allowed in current workflow step")

	// ErrUnknownTrip indicates the chosen trip is not in the listed offers
	ErrUnknownTrip = errors.New("trip is not in the current listing")

	// ErrSelectionIncomplete indicates the seat selection does not yet cover
	// every passenger
	ErrSelectionIncomplete = errors.New("seat selection must cover every passenger")

	// ErrAlreadyConfirmed indicates the workflow is terminal; restart to book
	// again
	ErrAlreadyConfirmed = errors.New("booking already confirmed, restart to book again")

	// ErrFinalizeInFlight indicates a finalize call is already outstanding
	ErrFinalizeInFlight = errors.New("a finalize request is already in progress")
)
