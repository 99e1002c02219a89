package repository

import (
	"fmt"
	"sync"

	"listing-bidder/internal/biddingerrors"
	model "listing-bidder/internal/models"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

// AuctionDB defines the listing and bid storage interface
type AuctionDB interface {
	GetListing(listingID int) (model.Listing, error)
	RecordBidForListing(bid model.Bid) error
	GetBidsByListing(listingID int) ([]model.Bid, error)
	GetWinningBid(listingID int) (model.Bid, error)
	CountBids(listingID int) (int, error)
	CloseListing(listingID int, winningBidID string) error
}

// MemoryRepo is a concurrency-safe in-memory implementation of AuctionDB
type MemoryRepo struct {
	mu       sync.RWMutex
	listings map[int]model.Listing // key: listingID -> value: listing
	bids     map[int][]model.Bid   // key: listingID -> value: bids in arrival order
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		listings: make(map[int]model.Listing),
		bids:     make(map[int][]model.Bid),
	}
}

// GetListing returns a listing by id
func (r *MemoryRepo) GetListing(listingID int) (model.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	listing, ok := r.listings[listingID]
	if !ok {
		return model.Listing{}, fmt.Errorf("get listing %d: %w", listingID, biddingerrors.ErrListingNotFound)
	}
	return listing, nil
}

// RecordBidForListing stores a bid on an existing listing
func (r *MemoryRepo) RecordBidForListing(bid model.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listings[bid.ListingID]; !ok {
		return fmt.Errorf("record bid for listing %d: %w", bid.ListingID, biddingerrors.ErrListingNotFound)
	}

	r.bids[bid.ListingID] = append(r.bids[bid.ListingID], bid)
	return nil
}

// GetBidsByListing returns all bids for a listing
func (r *MemoryRepo) GetBidsByListing(listingID int) ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.listings[listingID]; !ok {
		return nil, fmt.Errorf("get bids for listing %d: %w", listingID, biddingerrors.ErrListingNotFound)
	}

	bids, ok := r.bids[listingID]
	if !ok || len(bids) == 0 {
		return nil, fmt.Errorf("get bids for listing %d: %w", listingID, biddingerrors.ErrNoBids)
	}
	return append([]model.Bid(nil), bids...), nil
}

// GetWinningBid returns the highest bid for a listing; ties go to the earliest bid
func (r *MemoryRepo) GetWinningBid(listingID int) (model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.listings[listingID]; !ok {
		return model.Bid{}, fmt.Errorf("get winning bid for listing %d: %w", listingID, biddingerrors.ErrListingNotFound)
	}

	bids, ok := r.bids[listingID]
	if !ok || len(bids) == 0 {
		return model.Bid{}, fmt.Errorf("get winning bid for listing %d: %w", listingID, biddingerrors.ErrNoBids)
	}

	winning := bids[0]
	for _, b := range bids[1:] {
		if b.Price > winning.Price || (b.Price == winning.Price && b.CreatedAt.Before(winning.CreatedAt)) {
			winning = b
		}
	}
	return winning, nil
}

// CountBids returns the number of bids on a listing
func (r *MemoryRepo) CountBids(listingID int) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.listings[listingID]; !ok {
		return 0, fmt.Errorf("count bids for listing %d: %w", listingID, biddingerrors.ErrListingNotFound)
	}
	return len(r.bids[listingID]), nil
}

// CloseListing marks a listing inactive and flags winningBidID as its winner
func (r *MemoryRepo) CloseListing(listingID int, winningBidID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	listing, ok := r.listings[listingID]
	if !ok {
		return fmt.Errorf("close listing %d: %w", listingID, biddingerrors.ErrListingNotFound)
	}

	bids := r.bids[listingID]
	winner := -1
	for i := range bids {
		if bids[i].BidID == winningBidID {
			winner = i
			break
		}
	}
	if winner < 0 {
		return fmt.Errorf("close listing %d: bid %q: %w", listingID, winningBidID, biddingerrors.ErrNoBids)
	}

	bids[winner].IsWinner = true
	listing.IsActive = false
	r.listings[listingID] = listing
	return nil
}

// AddListing adds a listing to the repository. Used for seeding and tests.
func (r *MemoryRepo) AddListing(listing model.Listing) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listings[listing.ListingID] = listing
}
