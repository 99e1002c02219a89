package helpers

import (
	"errors"
	"net/http"

	"listing-bidder/internal/biddingerrors"
	"listing-bidder/internal/models"
	"listing-bidder/utils"

	"github.com/gin-gonic/gin"
)

// PriceField is the bid form field every bid error is reported against
const PriceField = "price"

// HandleBindError answers a form that failed binding with a price field error
func HandleBindError(c *gin.Context, handlerName string, err error) {
	fieldErrors := models.FieldErrors{}
	fieldErrors.Add(PriceField, "Enter a valid price greater than zero.", "invalid")
	utils.JSONFieldErrors(c, http.StatusBadRequest, fieldErrors)
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, biddingerrors.ErrListingNotFound):
		return http.StatusNotFound, "listing not found"
	case errors.Is(err, biddingerrors.ErrInvalidBid):
		return http.StatusBadRequest, "invalid bid details"
	case errors.Is(err, biddingerrors.ErrBidTooLow):
		return http.StatusBadRequest, "bid price too low"
	case errors.Is(err, biddingerrors.ErrListingNotActive):
		return http.StatusBadRequest, "listing is closed"
	case errors.Is(err, biddingerrors.ErrNoBids):
		return http.StatusOK, "no bids found for listing"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// MapErrorToFieldErrors turns a rejected bid into the price field errors the
// bid form renders. Unknown errors yield ok=false.
func MapErrorToFieldErrors(err error) (models.FieldErrors, bool) {
	fieldErrors := models.FieldErrors{}
	switch {
	case errors.Is(err, biddingerrors.ErrBidTooLow):
		message := "Your bid must be greater than the current max bid."
		var tooLow *biddingerrors.BidTooLowError
		if errors.As(err, &tooLow) {
			message = tooLow.Error()
		}
		fieldErrors.Add(PriceField, message, "too_low")
	case errors.Is(err, biddingerrors.ErrInvalidBid):
		fieldErrors.Add(PriceField, "Enter a valid price greater than zero.", "invalid")
	case errors.Is(err, biddingerrors.ErrListingNotFound):
		fieldErrors.Add(PriceField, "This listing does not exist.", "not_found")
	case errors.Is(err, biddingerrors.ErrListingNotActive):
		fieldErrors.Add(PriceField, "This listing is closed for bidding.", "closed")
	default:
		return nil, false
	}
	return fieldErrors, true
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
