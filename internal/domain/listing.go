package domain

import (
	"context"
	"errors"
	"time"
)

// ErrListingNotFound indicates that the listing does not exist.
var ErrListingNotFound = errors.New("listing not found")

// Listing is a product posting owned by one account. Price is stored and
// displayed verbatim as text; it is never parsed or used arithmetically.
// Listings are immutable once created and have no delete path.
type Listing struct {
	ID          int64
	Name        string
	Price       string
	Description string
	AccountID   int64
	CreatedAt   time.Time
}

// ListingRepository defines the port for listing persistence operations.
type ListingRepository interface {
	GetByID(ctx context.Context, id int64) (*Listing, error)
	Create(ctx context.Context, accountID int64, name, price, description string) (*Listing, error)
	ListAll(ctx context.Context) ([]Listing, error)
}
