// Package bidform submits a listing's bid form and reflects the outcome on
// the page.
package bidform

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"listing-bidder/internal/biddingerrors"
	"listing-bidder/internal/models"
	"listing-bidder/internal/sender"
	"listing-bidder/utils"
)

//go:generate mockgen -source=submitter.go -destination=mock_submitter.go -package=bidform

const formContentType = "application/x-www-form-urlencoded; charset=UTF-8"

// State is where a bid form is in its submit cycle
type State int

const (
	Idle State = iota
	Pending
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Sender issues one request and returns its decoded body
type Sender interface {
	Send(ctx context.Context, req sender.Request) (sender.Body, error)
}

// Form is the bound bid form the submitter reads from and updates
type Form interface {
	ListingID() string
	Price() string
	RenderErrors(fieldErrors models.FieldErrors) error
	UpdateBidsCount() (int, error)
}

// RejectedError is returned when the server turned the bid down with field errors.
// The errors have already been rendered into the form.
type RejectedError struct {
	StatusCode int
	Fields     models.FieldErrors
}

func (e *RejectedError) Error() string {
	var msgs []string
	for _, field := range e.Fields.Fields() {
		for _, fe := range e.Fields[field] {
			msgs = append(msgs, field+": "+fe.Message)
		}
	}
	return fmt.Sprintf("bid rejected (status %d): %s", e.StatusCode, strings.Join(msgs, "; "))
}

func (e *RejectedError) Unwrap() error {
	return biddingerrors.ErrBidRejected
}

// Submitter places bids from one bid form. Only one submission runs at a time.
type Submitter struct {
	sender Sender
	form   Form

	mu    sync.Mutex
	state State
}

func NewSubmitter(s Sender, form Form) *Submitter {
	return &Submitter{sender: s, form: form}
}

// State reports the outcome of the last submission, or Pending while one runs
func (s *Submitter) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// PlaceBid posts the form's price to /listings/{id}/bid. On success the bid
// count is bumped and the price cleared. When the server answers with field
// errors they are rendered into the form and a *RejectedError is returned.
// A call made while another is in flight returns ErrSubmissionPending.
func (s *Submitter) PlaceBid(ctx context.Context) error {
	if !s.begin() {
		return biddingerrors.ErrSubmissionPending
	}

	err := s.submit(ctx)
	s.finish(err)
	return err
}

func (s *Submitter) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Pending {
		return false
	}
	s.state = Pending
	return true
}

func (s *Submitter) finish(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = Failed
		return
	}
	s.state = Succeeded
}

func (s *Submitter) submit(ctx context.Context) error {
	listingID := s.form.ListingID()
	price := s.form.Price()
	body := url.Values{"price": {price}}.Encode()

	_, err := s.sender.Send(ctx, sender.Request{
		Method: http.MethodPost,
		URL:    "/listings/" + url.PathEscape(listingID) + "/bid",
		Header: http.Header{"Content-Type": {formContentType}},
		Body:   strings.NewReader(body),
	})
	if err == nil {
		count, err := s.form.UpdateBidsCount()
		if err != nil {
			return fmt.Errorf("place bid on listing %s: %w", listingID, err)
		}
		utils.Info("place_bid: bid accepted", map[string]any{"listing_id": listingID, "price": price, "bids_count": count})
		return nil
	}

	var statusErr *sender.StatusError
	if !errors.As(err, &statusErr) {
		utils.Error("place_bid: request failed", map[string]any{"listing_id": listingID, "error": err.Error()})
		return fmt.Errorf("place bid on listing %s: %w", listingID, err)
	}

	utils.Warn("place_bid: bid rejected", map[string]any{
		"listing_id": listingID,
		"status":     statusErr.StatusCode,
		"error":      statusErr.Error(),
	})

	fieldErrors, err := ParseFieldErrors(statusErr.Error())
	if err != nil {
		return fmt.Errorf("place bid on listing %s: status %d: %w", listingID, statusErr.StatusCode, err)
	}
	if err := s.form.RenderErrors(fieldErrors); err != nil {
		return fmt.Errorf("place bid on listing %s: %w", listingID, err)
	}
	return &RejectedError{StatusCode: statusErr.StatusCode, Fields: fieldErrors}
}
