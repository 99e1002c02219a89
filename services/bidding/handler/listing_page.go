package handler

import "html/template"

// ListingTemplateName is the name the listing page is registered under
const ListingTemplateName = "listing.html"

const listingPageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
</head>
<body>
  <div class="listing-details" data-id="{{.ListingID}}">
    <h2>{{.Title}}</h2>
    <p class="listing-description">{{.Description}}</p>
    <h3 class="listing-price">${{printf "%.2f" .Price}}</h3>
    <p class="bids-count">{{.BidsCount}} bids so far.</p>
    {{- if .CanBid}}
    <form class="bid-form" action="/listings/{{.ListingID}}/bid" method="post">
      <input type="hidden" name="csrfmiddlewaretoken" value="{{.CSRFToken}}">
      <div class="form-group">
        <input class="form-control" type="number" name="price" placeholder="Bid" step="0.01" min="0.01">
      </div>
      <input class="btn btn-primary" type="submit" value="Place Bid">
    </form>
    {{- end}}
  </div>
</body>
</html>
`

// ListingTemplate returns the parsed listing page template
func ListingTemplate() *template.Template {
	return template.Must(template.New(ListingTemplateName).Parse(listingPageHTML))
}
