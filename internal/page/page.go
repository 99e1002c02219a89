// Package page models a rendered listing page: it binds the bid form and the
// elements around it once, then mutates them the way the browser page would.
package page

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"listing-bidder/internal/biddingerrors"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

const (
	listingDetailsXPath = `//div[contains(concat(' ', normalize-space(@class), ' '), ' listing-details ')][@data-id]`
	bidFormXPath        = `.//*[contains(concat(' ', normalize-space(@class), ' '), ' bid-form ')]`
	csrfFieldXPath      = `//input[@name='csrfmiddlewaretoken']`
	namedElementsXPath  = `.//*[@name]`
	bidsCountXPath      = `.//*[contains(concat(' ', normalize-space(@class), ' '), ' bids-count ')]`
	alertsXPath         = `.//*[contains(concat(' ', normalize-space(@class), ' '), ' alert ')]`
)

// Document is a parsed listing page. It is safe for concurrent use.
type Document struct {
	mu   sync.Mutex
	root *html.Node
}

// Parse reads an HTML listing page
func Parse(r io.Reader) (*Document, error) {
	root, err := htmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse listing page: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseString is Parse for an in-memory page
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// CSRFToken returns the value of the page's hidden csrfmiddlewaretoken field
func (d *Document) CSRFToken() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	field := htmlquery.FindOne(d.root, csrfFieldXPath)
	if field == nil {
		return "", biddingerrors.ErrMissingCSRFToken
	}
	return htmlquery.SelectAttr(field, "value"), nil
}

// BindBidForm locates the listing details block and its bid form and returns
// a BidForm holding references to every element the form mutates.
func (d *Document) BindBidForm() (*BidForm, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	details := htmlquery.FindOne(d.root, listingDetailsXPath)
	if details == nil {
		return nil, biddingerrors.ErrListingDetailsNotFound
	}
	listingID := htmlquery.SelectAttr(details, "data-id")

	form := htmlquery.FindOne(details, bidFormXPath)
	if form == nil {
		return nil, fmt.Errorf("listing %s: %w", listingID, biddingerrors.ErrBidFormNotFound)
	}

	price := findNamed(form, priceField)
	if price == nil || price.Parent == nil {
		return nil, fmt.Errorf("listing %s: %w: %q", listingID, biddingerrors.ErrFieldNotFound, priceField)
	}

	count := previousElementSibling(form)
	if count == nil {
		return nil, fmt.Errorf("listing %s: %w", listingID, biddingerrors.ErrNoBidCount)
	}

	return &BidForm{
		doc:          d,
		listingID:    listingID,
		form:         form,
		price:        price,
		alertMount:   price.Parent,
		countDisplay: count,
	}, nil
}

// BidsCountText returns the bid count line of the listing details. Closed
// listings render it without a bid form, so this does not need BindBidForm.
func (d *Document) BidsCountText() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	details := htmlquery.FindOne(d.root, listingDetailsXPath)
	if details == nil {
		return "", biddingerrors.ErrListingDetailsNotFound
	}
	count := htmlquery.FindOne(details, bidsCountXPath)
	if count == nil {
		return "", biddingerrors.ErrNoBidCount
	}
	return strings.TrimSpace(htmlquery.InnerText(count)), nil
}

// HTML renders the current state of the page
func (d *Document) HTML() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return htmlquery.OutputHTML(d.root, true)
}

// findNamed returns the first element under top whose name attribute equals name.
// Names are compared directly rather than spliced into an XPath expression.
func findNamed(top *html.Node, name string) *html.Node {
	for _, n := range htmlquery.Find(top, namedElementsXPath) {
		if htmlquery.SelectAttr(n, "name") == name {
			return n
		}
	}
	return nil
}

func previousElementSibling(n *html.Node) *html.Node {
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func setTextContent(n *html.Node, text string) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}
