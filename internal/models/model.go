package models

import (
	"sort"
	"time"
)

// Listing represents an auction listing
type Listing struct {
	ListingID     int     `json:"listing_id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	StartingPrice float64 `json:"starting_price"`
	IsActive      bool    `json:"is_active"`
}

// Bid represents a bid placed on a listing
type Bid struct {
	BidID     string    `json:"bid_id"`
	ListingID int       `json:"listing_id"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
	IsWinner  bool      `json:"is_winner"`
}

// ErrorMessage is one error reported against a form field.
type ErrorMessage struct {
	Message string `json:"message" validate:"required"`
	Code    string `json:"code,omitempty"`
}

// FieldErrors maps a form field name to its errors, in server order.
type FieldErrors map[string][]ErrorMessage

// Add appends an error for field.
func (fe FieldErrors) Add(field, message, code string) {
	fe[field] = append(fe[field], ErrorMessage{Message: message, Code: code})
}

// Fields returns the field names in sorted order.
func (fe FieldErrors) Fields() []string {
	names := make([]string, 0, len(fe))
	for name := range fe {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
