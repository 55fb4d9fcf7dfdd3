package errors

import (
	"errors"
	"fmt"
)

// Custom error types for the storefront API. The API layer maps these to
// HTTP statuses; anything it does not recognize becomes a 500 with the raw
// message passed through to the caller.

// ValidationError reports missing or malformed request input. It is always
// detected before any store access.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return e.Reason
}

// NewValidation builds a ValidationError with a printf-style reason.
func NewValidation(format string, args ...any) ValidationError {
	return ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// ErrAffiliatorExists is returned when a referral-system POST targets a
// username that already has a row. The caller must use PUT instead.
var ErrAffiliatorExists = errors.New("Affiliator already exists. Use PUT to update.")

// ErrUsernameTaken is returned when an insert trips the unique constraint on
// username in the store.
var ErrUsernameTaken = errors.New("Username already exists")

// ErrAffiliatorNotFound is returned when a registry operation references an
// unknown username.
var ErrAffiliatorNotFound = errors.New("Affiliator not found")

// ErrReferralCodeNotFound is returned when a referral code has no owning
// affiliator.
var ErrReferralCodeNotFound = errors.New("Invalid referral code")

// ErrReferralCodeInactive is returned when a referral code exists but its
// affiliator has been deactivated.
var ErrReferralCodeInactive = errors.New("Referral code is inactive")

// ErrCodeGenerationFailed is returned when no unique referral code could be
// generated after the maximum number of attempts.
var ErrCodeGenerationFailed = errors.New("Failed to generate referral code")

// ErrStatisticsMissing is returned when the statistics singleton row is
// absent. The product catalog treats this as fatal.
var ErrStatisticsMissing = errors.New("statistics row not found")
