package bidding

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"listing-bidder/internal/biddingerrors"
	"listing-bidder/internal/models"
	"listing-bidder/internal/repository"
	"listing-bidder/utils"
)

// ListingSummary is what the listing page shows about a listing
type ListingSummary struct {
	Listing   models.Listing
	BidsCount int
	MaxBid    float64
}

// BiddingService defines the business logic for auction bidding
type BiddingService struct {
	repo repository.AuctionDB

	// serializes the max-bid check with the write that follows it
	placeMu sync.Mutex
}

// NewBiddingService creates a new BiddingService instance
func NewBiddingService(repo repository.AuctionDB) *BiddingService {
	return &BiddingService{
		repo: repo,
	}
}

// PlaceBid validates and records a bid on a listing
func (s *BiddingService) PlaceBid(listingID int, price float64) (models.Bid, error) {
	s.placeMu.Lock()
	defer s.placeMu.Unlock()

	if err := s.validateBid(listingID, price); err != nil {
		return models.Bid{}, err
	}

	bid := models.Bid{
		BidID:     utils.GenerateID(),
		ListingID: listingID,
		Price:     price,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.RecordBidForListing(bid); err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to record bid for listing %d: %w", listingID, err)
	}

	return bid, nil
}

// validateBid checks input validity and business rules for bidding
func (s *BiddingService) validateBid(listingID int, price float64) error {
	if math.IsInf(price, 0) || math.IsNaN(price) {
		return fmt.Errorf("service: %w - bid price is not a finite number", biddingerrors.ErrInvalidBid)
	}
	if price <= 0 {
		return fmt.Errorf("service: %w - non-positive bid price", biddingerrors.ErrInvalidBid)
	}

	listing, err := s.repo.GetListing(listingID)
	if err != nil {
		return fmt.Errorf("service: %w", err)
	}
	if !listing.IsActive {
		return fmt.Errorf("service: listing %d: %w", listingID, biddingerrors.ErrListingNotActive)
	}

	maxBid, err := s.maxBidPrice(listing)
	if err != nil {
		return err
	}
	if price <= maxBid {
		return &biddingerrors.BidTooLowError{Price: price, MaxBid: maxBid}
	}

	return nil
}

// maxBidPrice is the listing's starting price until the first bid, then the highest bid.
func (s *BiddingService) maxBidPrice(listing models.Listing) (float64, error) {
	winningBid, err := s.repo.GetWinningBid(listing.ListingID)
	if err == nil {
		return winningBid.Price, nil
	}
	if errors.Is(err, biddingerrors.ErrNoBids) {
		return listing.StartingPrice, nil
	}
	return 0, fmt.Errorf("service: failed to check winning bid: %w", err)
}

// CloseListing ends bidding on an active listing and marks its highest bid as
// the winner. Listings without bids cannot be closed.
func (s *BiddingService) CloseListing(listingID int) (models.Bid, error) {
	s.placeMu.Lock()
	defer s.placeMu.Unlock()

	listing, err := s.repo.GetListing(listingID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: %w", err)
	}
	if !listing.IsActive {
		return models.Bid{}, fmt.Errorf("service: listing %d: %w", listingID, biddingerrors.ErrListingNotActive)
	}

	winningBid, err := s.repo.GetWinningBid(listingID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: cannot close listing %d: %w", listingID, err)
	}

	if err := s.repo.CloseListing(listingID, winningBid.BidID); err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to close listing %d: %w", listingID, err)
	}

	winningBid.IsWinner = true
	return winningBid, nil
}

// GetListingSummary returns a listing with its bid count and current max bid
func (s *BiddingService) GetListingSummary(listingID int) (ListingSummary, error) {
	listing, err := s.repo.GetListing(listingID)
	if err != nil {
		return ListingSummary{}, fmt.Errorf("service: %w", err)
	}

	count, err := s.repo.CountBids(listingID)
	if err != nil {
		return ListingSummary{}, fmt.Errorf("service: failed to count bids for listing %d: %w", listingID, err)
	}

	maxBid, err := s.maxBidPrice(listing)
	if err != nil {
		return ListingSummary{}, err
	}

	return ListingSummary{Listing: listing, BidsCount: count, MaxBid: maxBid}, nil
}

// GetBidsForListing returns all bids for a listing
func (s *BiddingService) GetBidsForListing(listingID int) ([]models.Bid, error) {
	bids, err := s.repo.GetBidsByListing(listingID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for listing %d: %w", listingID, err)
	}

	return bids, nil
}

// GetWinningBid returns the highest bid for a listing
func (s *BiddingService) GetWinningBid(listingID int) (models.Bid, error) {
	winningBid, err := s.repo.GetWinningBid(listingID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to get winning bid for listing %d: %w", listingID, err)
	}

	return winningBid, nil
}
