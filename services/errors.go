package services

import "errors"

var (
	ErrUpstream        = errors.New("upstream request failed")
	ErrNotConfigured   = errors.New("integration not configured")
	ErrStayNotFound    = errors.New("stay not found")
	ErrStayCancelled   = errors.New("stay is cancelled")
	ErrNotVerified     = errors.New("could not verify guest")
	ErrFactorRequired  = errors.New("at least one verification factor is required")
	ErrMissingFields   = errors.New("Missing required fields")
	ErrNothingToSubmit = errors.New("nothing to submit")
	ErrUnknownNight    = errors.New("night is not part of the stay")
	ErrNightBooked     = errors.New("night already has a table")
	ErrNightConflict   = errors.New("night is both selected and marked no table")
	ErrInvalidGuest    = errors.New("invalid guest details")
	ErrTooManyNights   = errors.New("too many nights in one batch")
	ErrDuplicate       = errors.New("guest already has a booking that day")
	ErrPartyTooLarge   = errors.New("party too large to book online")
	ErrOutsideWindow   = errors.New("date outside the booking window")
)
