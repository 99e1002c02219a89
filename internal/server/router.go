package server

import (
	bidding "listing-bidder/internal/biddingService"
	handler "listing-bidder/services/bidding/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the listing server
func SetupRouter(biddingService *bidding.BiddingService, csrf *CSRFStore) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging
	router.Use(CSRFMiddleware(csrf))

	router.SetHTMLTemplate(handler.ListingTemplate())

	biddingHandler := handler.NewBiddingHandler(biddingService, csrf)

	listings := router.Group("/listings")
	{
		listings.GET("/:listing_id", biddingHandler.ListingPageHandler)
		listings.POST("/:listing_id/bid", biddingHandler.PlaceBidHandler)
		listings.GET("/:listing_id/bids", biddingHandler.GetBidsByListingHandler)
		listings.GET("/:listing_id/winning", biddingHandler.GetWinningBidHandler)
		listings.POST("/:listing_id/close", biddingHandler.CloseListingHandler)
	}

	return router
}
