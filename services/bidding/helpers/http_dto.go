package helpers

// Request/Response DTOs

// PlaceBidForm is the url-encoded body of POST /listings/:listing_id/bid
type PlaceBidForm struct {
	Price float64 `form:"price" binding:"required,gt=0"`
}

type BidResponse struct {
	BidID     string  `json:"bid_id"`
	ListingID int     `json:"listing_id"`
	Price     float64 `json:"price"`
	CreatedAt string  `json:"created_at"`
	IsWinner  bool    `json:"is_winner"`
}

// ListingPage is the data the listing page template renders
type ListingPage struct {
	ListingID   int
	Title       string
	Description string
	Price       float64
	BidsCount   int
	CanBid      bool
	CSRFToken   string
}
