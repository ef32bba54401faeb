package app

import (
	"context"

	"market/internal/domain"
)

// ListingService encapsulates product-listing use cases.
type ListingService struct {
	listings domain.ListingRepository
	accounts domain.AccountRepository
}

// NewListingService creates a ListingService backed by the given repositories.
func NewListingService(listings domain.ListingRepository, accounts domain.AccountRepository) *ListingService {
	return &ListingService{listings: listings, accounts: accounts}
}

// Create stores a new listing owned by accountID. Fields are stored
// verbatim; price in particular is opaque text.
func (s *ListingService) Create(ctx context.Context, accountID int64, name, price, description string) (*domain.Listing, error) {
	return s.listings.Create(ctx, accountID, name, price, description)
}

// Get returns a listing together with its owning account for display.
func (s *ListingService) Get(ctx context.Context, id int64) (*domain.Listing, *domain.Account, error) {
	listing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if listing == nil {
		return nil, nil, domain.ErrListingNotFound
	}

	owner, err := s.accounts.GetByID(ctx, listing.AccountID)
	if err != nil {
		return nil, nil, err
	}
	if owner == nil {
		return nil, nil, domain.ErrAccountNotFound
	}
	return listing, owner, nil
}

// ListAll returns every listing. Full scan, no pagination.
func (s *ListingService) ListAll(ctx context.Context) ([]domain.Listing, error) {
	return s.listings.ListAll(ctx)
}
