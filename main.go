package main

import (
	"fmt"
	"os"

	bidding "listing-bidder/internal/biddingService"
	"listing-bidder/internal/config"
	model "listing-bidder/internal/models"
	"listing-bidder/internal/repository"
	"listing-bidder/internal/server"
	"listing-bidder/utils"
)

func main() {
	cfg := config.Load()
	if err := utils.SetLogLevel(cfg.LogLevel); err != nil {
		utils.Warn("main: unknown log level, keeping info", map[string]any{"log_level": cfg.LogLevel})
	}

	repo := repository.NewMemoryRepo()

	prepopulateListings(repo)

	biddingSvc := bidding.NewBiddingService(repo)

	router := server.SetupRouter(biddingSvc, server.NewCSRFStore())

	utils.Info("main: starting listing server", map[string]any{"addr": cfg.Addr()})
	if err := router.Run(cfg.Addr()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// prepopulateListings adds sample listings to the in-memory repo
func prepopulateListings(repo *repository.MemoryRepo) {
	listings := []model.Listing{
		{ListingID: 1, Title: "Vintage camera", Description: "Working 35mm rangefinder", StartingPrice: 100, IsActive: true},
		{ListingID: 2, Title: "Oak desk", Description: "Solid oak, minor scratches", StartingPrice: 200, IsActive: true},
		{ListingID: 3, Title: "Road bike", Description: "Auction closed", StartingPrice: 150, IsActive: false},
	}

	for _, listing := range listings {
		repo.AddListing(listing)
	}
}
