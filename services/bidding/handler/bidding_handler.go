package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	bidding "listing-bidder/internal/biddingService"
	"listing-bidder/internal/biddingerrors"
	model "listing-bidder/internal/models"
	"listing-bidder/services/bidding/helpers"
	"listing-bidder/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=bidding_handler.go -destination=mock_bidding_handler.go -package=handler

type BiddingServiceInterface interface {
	PlaceBid(listingID int, price float64) (model.Bid, error)
	GetListingSummary(listingID int) (bidding.ListingSummary, error)
	GetBidsForListing(listingID int) ([]model.Bid, error)
	GetWinningBid(listingID int) (model.Bid, error)
	CloseListing(listingID int) (model.Bid, error)
}

// TokenIssuer hands out CSRF tokens for rendered pages
type TokenIssuer interface {
	Issue() string
}

type BiddingHandler struct {
	service BiddingServiceInterface
	tokens  TokenIssuer
}

func NewBiddingHandler(service BiddingServiceInterface, tokens TokenIssuer) *BiddingHandler {
	return &BiddingHandler{service: service, tokens: tokens}
}

// listingIDParam parses :listing_id, answering 400 itself when it is not a number
func listingIDParam(c *gin.Context, handlerName string) (int, bool) {
	raw := c.Param("listing_id")
	listingID, err := strconv.Atoi(raw)
	if err != nil || listingID <= 0 {
		err = fmt.Errorf("listing id %q: %w", raw, biddingerrors.ErrListingNotFound)
		utils.JSONError(c, http.StatusBadRequest, err, "invalid listing id")
		utils.Warn(handlerName+": invalid listing id", map[string]any{"listing_id": raw})
		return 0, false
	}
	return listingID, true
}

// ListingPageHandler handles GET /listings/:listing_id
func (h *BiddingHandler) ListingPageHandler(c *gin.Context) {
	listingID, ok := listingIDParam(c, "ListingPageHandler")
	if !ok {
		return
	}

	summary, err := h.service.GetListingSummary(listingID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		c.String(status, message)
		utils.Warn("ListingPageHandler: failed to load listing", map[string]any{"listing_id": listingID, "error": err.Error()})
		return
	}

	page := helpers.ListingPage{
		ListingID:   summary.Listing.ListingID,
		Title:       summary.Listing.Title,
		Description: summary.Listing.Description,
		Price:       summary.MaxBid,
		BidsCount:   summary.BidsCount,
		CanBid:      summary.Listing.IsActive,
		CSRFToken:   h.tokens.Issue(),
	}
	c.HTML(http.StatusOK, ListingTemplateName, page)
}

// PlaceBidHandler handles POST /listings/:listing_id/bid
func (h *BiddingHandler) PlaceBidHandler(c *gin.Context) {
	listingID, ok := listingIDParam(c, "PlaceBidHandler")
	if !ok {
		return
	}

	var form helpers.PlaceBidForm
	if err := c.ShouldBind(&form); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	bid, err := h.service.PlaceBid(listingID, form.Price)
	if err != nil {
		logFields := map[string]any{
			"handler":    "PlaceBidHandler",
			"listing_id": listingID,
			"price":      form.Price,
			"error":      err.Error(),
		}
		if fieldErrors, ok := helpers.MapErrorToFieldErrors(err); ok {
			utils.JSONFieldErrors(c, http.StatusBadRequest, fieldErrors)
			utils.Warn("PlaceBidHandler: bid rejected", logFields)
			return
		}
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("PlaceBidHandler: failed to place bid", logFields)
		return
	}

	utils.JSONResponse(c, http.StatusCreated, toBidResponse(bid), "bid recorded successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid recorded successfully", map[string]any{
		"bid_id":     bid.BidID,
		"listing_id": bid.ListingID,
		"price":      bid.Price,
	})
}

// GetBidsByListingHandler handles GET /listings/:listing_id/bids
func (h *BiddingHandler) GetBidsByListingHandler(c *gin.Context) {
	listingID, ok := listingIDParam(c, "GetBidsByListingHandler")
	if !ok {
		return
	}

	bids, err := h.service.GetBidsForListing(listingID)
	if err != nil && !errors.Is(err, biddingerrors.ErrNoBids) {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetBidsByListingHandler: error retrieving bids", map[string]any{"listing_id": listingID, "error": err.Error()})
		return
	}

	resp := make([]helpers.BidResponse, 0, len(bids))
	for _, bid := range bids {
		resp = append(resp, toBidResponse(bid))
	}

	utils.JSONResponse(c, http.StatusOK, resp, "bids retrieved successfully")
	helpers.LogSuccess("GetBidsByListingHandler", "bids retrieved successfully", map[string]any{
		"listing_id": listingID,
		"count":      len(resp),
	})
}

// GetWinningBidHandler handles GET /listings/:listing_id/winning
func (h *BiddingHandler) GetWinningBidHandler(c *gin.Context) {
	listingID, ok := listingIDParam(c, "GetWinningBidHandler")
	if !ok {
		return
	}

	bid, err := h.service.GetWinningBid(listingID)
	if err != nil {
		if errors.Is(err, biddingerrors.ErrNoBids) {
			utils.JSONError(c, http.StatusNotFound, err, "no winning bid found")
			utils.Info("GetWinningBidHandler: no winning bid found", map[string]any{"listing_id": listingID})
			return
		}
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetWinningBidHandler: winning bid error", map[string]any{"listing_id": listingID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, toBidResponse(bid), "winning bid retrieved successfully")
	helpers.LogSuccess("GetWinningBidHandler", "winning bid retrieved successfully", map[string]any{
		"bid_id":     bid.BidID,
		"listing_id": bid.ListingID,
		"price":      bid.Price,
	})
}

// CloseListingHandler handles POST /listings/:listing_id/close
func (h *BiddingHandler) CloseListingHandler(c *gin.Context) {
	listingID, ok := listingIDParam(c, "CloseListingHandler")
	if !ok {
		return
	}

	bid, err := h.service.CloseListing(listingID)
	if err != nil {
		if errors.Is(err, biddingerrors.ErrNoBids) {
			utils.JSONError(c, http.StatusBadRequest, err, "listing has no bids to accept")
			utils.Warn("CloseListingHandler: no bids to accept", map[string]any{"listing_id": listingID})
			return
		}
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("CloseListingHandler: failed to close listing", map[string]any{"listing_id": listingID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, toBidResponse(bid), "listing closed")
	helpers.LogSuccess("CloseListingHandler", "listing closed", map[string]any{
		"bid_id":     bid.BidID,
		"listing_id": bid.ListingID,
		"price":      bid.Price,
	})
}

func toBidResponse(bid model.Bid) helpers.BidResponse {
	return helpers.BidResponse{
		BidID:     bid.BidID,
		ListingID: bid.ListingID,
		Price:     bid.Price,
		CreatedAt: bid.CreatedAt.UTC().Format(time.RFC3339),
		IsWinner:  bid.IsWinner,
	}
}
