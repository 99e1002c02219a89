package bidform

import (
	"context"
	"fmt"
	"net/url"

	"listing-bidder/internal/page"
	"listing-bidder/internal/sender"
)

// PageSender is a Sender whose CSRF token source can be pointed at a page
type PageSender interface {
	Sender
	SetTokenSource(ts sender.TokenSource)
}

// Open fetches /listings/{id}, binds its bid form and points s at the page's
// CSRF token so the returned Submitter can post from it.
func Open(ctx context.Context, s PageSender, listingID string) (*page.Document, *page.BidForm, *Submitter, error) {
	body, err := s.Send(ctx, sender.Request{URL: "/listings/" + url.PathEscape(listingID)})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("fetch listing %s: %w", listingID, err)
	}

	doc, err := page.ParseString(body.String())
	if err != nil {
		return nil, nil, nil, err
	}
	form, err := doc.BindBidForm()
	if err != nil {
		return doc, nil, nil, fmt.Errorf("listing %s: %w", listingID, err)
	}

	s.SetTokenSource(doc)
	return doc, form, NewSubmitter(s, form), nil
}
