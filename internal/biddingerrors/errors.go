package biddingerrors

import (
	"errors"
	"fmt"
)

// Repository-level errors
var (
	ErrListingNotFound = errors.New("listing not found")
	ErrNoBids          = errors.New("no bids found for listing")
)

// business logic errors
var (
	ErrInvalidBid       = errors.New("invalid bid")
	ErrBidTooLow        = errors.New("bid price too low")
	ErrListingNotActive = errors.New("listing is not active")
)

// request sender errors
var (
	ErrNetwork          = errors.New("network failure")
	ErrMissingCSRFToken = errors.New("csrf token field not found")
	ErrUnexpectedStatus = errors.New("unexpected response status")
)

// page and bid form errors
var (
	ErrListingDetailsNotFound = errors.New("listing details not found")
	ErrBidFormNotFound        = errors.New("bid form not found")
	ErrFieldNotFound          = errors.New("form field not found")
	ErrNoBidCount             = errors.New("bid count not found")
	ErrSubmissionPending      = errors.New("bid submission already pending")
	ErrBidRejected            = errors.New("bid rejected")
	ErrMalformedFieldErrors   = errors.New("malformed field errors")
)

// BidTooLowError reports a bid that does not beat the current max bid.
type BidTooLowError struct {
	Price  float64
	MaxBid float64
}

func (e *BidTooLowError) Error() string {
	return fmt.Sprintf("Your bid ($%.2f) must be greater than the current max bid of ($%.2f)", e.Price, e.MaxBid)
}

func (e *BidTooLowError) Unwrap() error {
	return ErrBidTooLow
}
