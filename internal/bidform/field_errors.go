package bidform

import (
	"encoding/json"
	"fmt"
	"sync"

	"listing-bidder/internal/biddingerrors"
	"listing-bidder/internal/models"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// getValidator returns the package's validator instance
func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// fieldErrorsPayload is what a rejected bid must carry: at least one named
// field, each with at least one error that has a message.
type fieldErrorsPayload struct {
	Fields models.FieldErrors `validate:"required,min=1,dive,keys,required,endkeys,min=1,dive"`
}

// ParseFieldErrors decodes and validates the field errors carried by a
// rejected bid's message.
func ParseFieldErrors(message string) (models.FieldErrors, error) {
	var fieldErrors models.FieldErrors
	if err := json.Unmarshal([]byte(message), &fieldErrors); err != nil {
		return nil, fmt.Errorf("%w: %v", biddingerrors.ErrMalformedFieldErrors, err)
	}

	if err := getValidator().Struct(fieldErrorsPayload{Fields: fieldErrors}); err != nil {
		return nil, fmt.Errorf("%w: %v", biddingerrors.ErrMalformedFieldErrors, err)
	}
	return fieldErrors, nil
}
