package bidding

import (
	"errors"
	"math"
	"testing"
	"time"

	"listing-bidder/internal/biddingerrors"
	model "listing-bidder/internal/models"
	"listing-bidder/internal/repository"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func activeListing(id int, startingPrice float64) model.Listing {
	return model.Listing{ListingID: id, Title: "listing", StartingPrice: startingPrice, IsActive: true}
}

// Tests PlaceBid
func TestBiddingService_PlaceBid(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name          string
		listingID     int
		price         float64
		mockSetup     func(repo *repository.MockAuctionDB)
		expectedError error
	}{
		{
			name:      "valid_first_bid_above_starting_price",
			listingID: 1,
			price:     100,
			mockSetup: func(repo *repository.MockAuctionDB) {
				repo.EXPECT().GetListing(1).Return(activeListing(1, 10), nil)
				repo.EXPECT().GetWinningBid(1).Return(model.Bid{}, biddingerrors.ErrNoBids)
				repo.EXPECT().RecordBidForListing(gomock.Any()).Return(nil)
			},
		},
		{
			name:      "first_bid_equal_to_starting_price",
			listingID: 1,
			price:     10,
			mockSetup: func(repo *repository.MockAuctionDB) {
				repo.EXPECT().GetListing(1).Return(activeListing(1, 10), nil)
				repo.EXPECT().GetWinningBid(1).Return(model.Bid{}, biddingerrors.ErrNoBids)
			},
			expectedError: biddingerrors.ErrBidTooLow,
		},
		{
			name:      "valid_bid_above_current_max",
			listingID: 1,
			price:     151,
			mockSetup: func(repo *repository.MockAuctionDB) {
				repo.EXPECT().GetListing(1).Return(activeListing(1, 10), nil)
				repo.EXPECT().GetWinningBid(1).Return(model.Bid{BidID: "b", ListingID: 1, Price: 150, CreatedAt: now}, nil)
				repo.EXPECT().RecordBidForListing(gomock.Any()).Return(nil)
			},
		},
		{
			name:      "bid_below_current_max",
			listingID: 1,
			price:     100,
			mockSetup: func(repo *repository.MockAuctionDB) {
				repo.EXPECT().GetListing(1).Return(activeListing(1, 10), nil)
				repo.EXPECT().GetWinningBid(1).Return(model.Bid{BidID: "b", ListingID: 1, Price: 150, CreatedAt: now}, nil)
			},
			expectedError: biddingerrors.ErrBidTooLow,
		},
		{
			name:          "zero_price",
			listingID:     1,
			price:         0,
			mockSetup:     func(repo *repository.MockAuctionDB) {},
			expectedError: biddingerrors.ErrInvalidBid,
		},
		{
			name:          "negative_price",
			listingID:     1,
			price:         -5,
			mockSetup:     func(repo *repository.MockAuctionDB) {},
			expectedError: biddingerrors.ErrInvalidBid,
		},
		{
			name:          "positive_infinity",
			listingID:     1,
			price:         math.Inf(1),
			mockSetup:     func(repo *repository.MockAuctionDB) {},
			expectedError: biddingerrors.ErrInvalidBid,
		},
		{
			name:          "negative_infinity",
			listingID:     1,
			price:         math.Inf(-1),
			mockSetup:     func(repo *repository.MockAuctionDB) {},
			expectedError: biddingerrors.ErrInvalidBid,
		},
		{
			name:          "not_a_number",
			listingID:     1,
			price:         math.NaN(),
			mockSetup:     func(repo *repository.MockAuctionDB) {},
			expectedError: biddingerrors.ErrInvalidBid,
		},
		{
			name:      "listing_not_found",
			listingID: 9,
			price:     100,
			mockSetup: func(repo *repository.MockAuctionDB) {
				repo.EXPECT().GetListing(9).Return(model.Listing{}, biddingerrors.ErrListingNotFound)
			},
			expectedError: biddingerrors.ErrListingNotFound,
		},
		{
			name:      "listing_closed",
			listingID: 2,
			price:     100,
			mockSetup: func(repo *repository.MockAuctionDB) {
				closed := activeListing(2, 10)
				closed.IsActive = false
				repo.EXPECT().GetListing(2).Return(closed, nil)
			},
			expectedError: biddingerrors.ErrListingNotActive,
		},
		{
			name:      "winning_bid_lookup_fails",
			listingID: 1,
			price:     100,
			mockSetup: func(repo *repository.MockAuctionDB) {
				repo.EXPECT().GetListing(1).Return(activeListing(1, 10), nil)
				repo.EXPECT().GetWinningBid(1).Return(model.Bid{}, errors.New("storage down"))
			},
			expectedError: errors.New("storage down"),
		},
		{
			name:      "record_fails",
			listingID: 1,
			price:     100,
			mockSetup: func(repo *repository.MockAuctionDB) {
				repo.EXPECT().GetListing(1).Return(activeListing(1, 10), nil)
				repo.EXPECT().GetWinningBid(1).Return(model.Bid{}, biddingerrors.ErrNoBids)
				repo.EXPECT().RecordBidForListing(gomock.Any()).Return(biddingerrors.ErrListingNotFound)
			},
			expectedError: biddingerrors.ErrListingNotFound,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			mockRepo := repository.NewMockAuctionDB(ctrl)
			service := NewBiddingService(mockRepo)
			tc.mockSetup(mockRepo)

			bid, err := service.PlaceBid(tc.listingID, tc.price)
			if tc.expectedError != nil {
				require.Error(t, err)
				if errors.Is(tc.expectedError, biddingerrors.ErrBidTooLow) ||
					errors.Is(tc.expectedError, biddingerrors.ErrInvalidBid) ||
					errors.Is(tc.expectedError, biddingerrors.ErrListingNotFound) ||
					errors.Is(tc.expectedError, biddingerrors.ErrListingNotActive) {
					require.ErrorIs(t, err, tc.expectedError)
				} else {
					require.Contains(t, err.Error(), tc.expectedError.Error())
				}
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.listingID, bid.ListingID)
			require.Equal(t, tc.price, bid.Price)
			_, parseErr := uuid.Parse(bid.BidID)
			require.NoError(t, parseErr, "BidID should be a valid UUID")
			require.False(t, bid.CreatedAt.IsZero())
		})
	}
}

func TestBiddingService_PlaceBid_TooLowMessage(t *testing.T) {
	repo := repository.NewMemoryRepo()
	repo.AddListing(activeListing(1, 10))
	service := NewBiddingService(repo)

	_, err := service.PlaceBid(1, 5)
	require.ErrorIs(t, err, biddingerrors.ErrBidTooLow)

	var tooLow *biddingerrors.BidTooLowError
	require.ErrorAs(t, err, &tooLow)
	require.Equal(t, "Your bid ($5.00) must be greater than the current max bid of ($10.00)", tooLow.Error())
}

func TestBiddingService_GetListingSummary(t *testing.T) {
	repo := repository.NewMemoryRepo()
	repo.AddListing(activeListing(1, 10))
	service := NewBiddingService(repo)

	summary, err := service.GetListingSummary(1)
	require.NoError(t, err)
	require.Equal(t, 0, summary.BidsCount)
	require.Equal(t, 10.0, summary.MaxBid)

	_, err = service.PlaceBid(1, 25)
	require.NoError(t, err)
	_, err = service.PlaceBid(1, 30)
	require.NoError(t, err)

	summary, err = service.GetListingSummary(1)
	require.NoError(t, err)
	require.Equal(t, 2, summary.BidsCount)
	require.Equal(t, 30.0, summary.MaxBid)

	_, err = service.GetListingSummary(99)
	require.ErrorIs(t, err, biddingerrors.ErrListingNotFound)
}

func TestBiddingService_GetBidsAndWinningBid(t *testing.T) {
	repo := repository.NewMemoryRepo()
	repo.AddListing(activeListing(1, 10))
	service := NewBiddingService(repo)

	_, err := service.GetBidsForListing(1)
	require.ErrorIs(t, err, biddingerrors.ErrNoBids)
	_, err = service.GetWinningBid(1)
	require.ErrorIs(t, err, biddingerrors.ErrNoBids)

	first, err := service.PlaceBid(1, 20)
	require.NoError(t, err)
	second, err := service.PlaceBid(1, 40)
	require.NoError(t, err)

	bids, err := service.GetBidsForListing(1)
	require.NoError(t, err)
	require.Equal(t, []model.Bid{first, second}, bids)

	winning, err := service.GetWinningBid(1)
	require.NoError(t, err)
	require.Equal(t, second, winning)
}

func TestBiddingService_PlaceBid_NonFiniteDoesNotBlockListing(t *testing.T) {
	repo := repository.NewMemoryRepo()
	repo.AddListing(activeListing(1, 10))
	service := NewBiddingService(repo)

	_, err := service.PlaceBid(1, math.Inf(1))
	require.ErrorIs(t, err, biddingerrors.ErrInvalidBid)

	bid, err := service.PlaceBid(1, 1000000)
	require.NoError(t, err)

	winner, err := service.GetWinningBid(1)
	require.NoError(t, err)
	require.Equal(t, bid.BidID, winner.BidID)
}

// Tests CloseListing
func TestBiddingService_CloseListing(t *testing.T) {
	tests := []struct {
		name          string
		listingID     int
		expectedError error
	}{
		{name: "closes_and_marks_max_bid", listingID: 1},
		{name: "unknown_listing", listingID: 99, expectedError: biddingerrors.ErrListingNotFound},
		{name: "already_closed", listingID: 2, expectedError: biddingerrors.ErrListingNotActive},
		{name: "no_bids", listingID: 3, expectedError: biddingerrors.ErrNoBids},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			repo := repository.NewMemoryRepo()
			repo.AddListing(activeListing(1, 10))
			closed := activeListing(2, 10)
			closed.IsActive = false
			repo.AddListing(closed)
			repo.AddListing(activeListing(3, 10))
			service := NewBiddingService(repo)

			_, err := service.PlaceBid(1, 20)
			require.NoError(t, err)
			top, err := service.PlaceBid(1, 30)
			require.NoError(t, err)

			winner, err := service.CloseListing(tc.listingID)
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}
			require.NoError(t, err)
			require.Equal(t, top.BidID, winner.BidID)
			require.True(t, winner.IsWinner)

			summary, err := service.GetListingSummary(tc.listingID)
			require.NoError(t, err)
			require.False(t, summary.Listing.IsActive)

			_, err = service.PlaceBid(tc.listingID, 100)
			require.ErrorIs(t, err, biddingerrors.ErrListingNotActive)
		})
	}
}

func TestBiddingService_CloseListing_StorageFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := repository.NewMockAuctionDB(ctrl)
	service := NewBiddingService(mockRepo)

	mockRepo.EXPECT().GetListing(1).Return(activeListing(1, 10), nil)
	mockRepo.EXPECT().GetWinningBid(1).Return(model.Bid{BidID: "b", ListingID: 1, Price: 20}, nil)
	mockRepo.EXPECT().CloseListing(1, "b").Return(errors.New("storage down"))

	_, err := service.CloseListing(1)
	require.ErrorContains(t, err, "storage down")
}
