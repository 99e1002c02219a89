package page

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"listing-bidder/internal/biddingerrors"
	"listing-bidder/internal/models"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	priceField = "price"
	alertClass = "alert alert-danger"

	bidsCountFormat = "%d bids so far. Your Bid is the Current Bid"
)

var firstNumber = regexp.MustCompile(`\d+`)

// BidForm is the bid form of one listing, bound to the elements it updates:
// the price input, the alert mount point (the input's parent) and the bid
// count display (the form's previous element sibling).
type BidForm struct {
	doc          *Document
	listingID    string
	form         *html.Node
	price        *html.Node
	alertMount   *html.Node
	countDisplay *html.Node
}

// ListingID is the data-id of the enclosing listing details block
func (f *BidForm) ListingID() string {
	return f.listingID
}

// Price returns the current value of the price input
func (f *BidForm) Price() string {
	f.doc.mu.Lock()
	defer f.doc.mu.Unlock()
	return htmlquery.SelectAttr(f.price, "value")
}

// SetPrice fills the price input
func (f *BidForm) SetPrice(value string) {
	f.doc.mu.Lock()
	defer f.doc.mu.Unlock()
	setAttr(f.price, "value", value)
}

// CountText returns the text of the bid count display
func (f *BidForm) CountText() string {
	f.doc.mu.Lock()
	defer f.doc.mu.Unlock()
	return htmlquery.InnerText(f.countDisplay)
}

// Alerts returns the alert messages next to the price input, top to bottom
func (f *BidForm) Alerts() []string {
	f.doc.mu.Lock()
	defer f.doc.mu.Unlock()
	return alertTexts(f.alertMount)
}

// FieldAlerts returns the alert messages next to the named input, top to bottom
func (f *BidForm) FieldAlerts(field string) ([]string, error) {
	f.doc.mu.Lock()
	defer f.doc.mu.Unlock()

	input := findNamed(f.form, field)
	if input == nil || input.Parent == nil {
		return nil, fmt.Errorf("%w: %q", biddingerrors.ErrFieldNotFound, field)
	}
	return alertTexts(input.Parent), nil
}

// RenderErrors replaces the alerts next to each field with one alert per
// error. Every alert is inserted at the top of the field's parent, so the last
// error of a field ends up first. Fields are handled in name order, and all
// inputs are resolved before anything is changed.
func (f *BidForm) RenderErrors(fieldErrors models.FieldErrors) error {
	f.doc.mu.Lock()
	defer f.doc.mu.Unlock()

	fields := fieldErrors.Fields()
	mounts := make([]*html.Node, len(fields))
	for i, field := range fields {
		input := findNamed(f.form, field)
		if input == nil || input.Parent == nil {
			return fmt.Errorf("render errors: %w: %q", biddingerrors.ErrFieldNotFound, field)
		}
		mounts[i] = input.Parent
	}

	for i, field := range fields {
		removeAlerts(mounts[i])
		for _, e := range fieldErrors[field] {
			mounts[i].InsertBefore(newAlert(e.Message), mounts[i].FirstChild)
		}
	}
	return nil
}

// UpdateBidsCount records one more bid on the page: it clears the price input
// and its alerts and rewrites the count display as N+1. It returns the new
// count. The page is left untouched when no count can be read.
func (f *BidForm) UpdateBidsCount() (int, error) {
	f.doc.mu.Lock()
	defer f.doc.mu.Unlock()

	text := htmlquery.InnerText(f.countDisplay)
	digits := firstNumber.FindString(text)
	if digits == "" {
		return 0, fmt.Errorf("%w in %q", biddingerrors.ErrNoBidCount, strings.TrimSpace(text))
	}
	oldCount, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", biddingerrors.ErrNoBidCount, err)
	}

	setAttr(f.price, "value", "")
	removeAlerts(f.alertMount)

	newCount := oldCount + 1
	setTextContent(f.countDisplay, fmt.Sprintf(bidsCountFormat, newCount))
	return newCount, nil
}

func newAlert(message string) *html.Node {
	alert := &html.Node{
		Type:     html.ElementNode,
		Data:     atom.Div.String(),
		DataAtom: atom.Div,
		Attr:     []html.Attribute{{Key: "class", Val: alertClass}},
	}
	alert.AppendChild(&html.Node{Type: html.TextNode, Data: message})
	return alert
}

func removeAlerts(mount *html.Node) {
	for _, n := range htmlquery.Find(mount, alertsXPath) {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}
}

func alertTexts(mount *html.Node) []string {
	var texts []string
	for _, n := range htmlquery.Find(mount, alertsXPath) {
		texts = append(texts, htmlquery.InnerText(n))
	}
	return texts
}
