package postgres

import (
	"context"
	"database/sql"
	"time"

	"market/internal/domain"
)

// ListingRepo implements listing repository operations on DB.
type ListingRepo struct {
	db *DB
}

// NewListingRepo wraps a DB as a ListingRepository.
func NewListingRepo(db *DB) *ListingRepo {
	return &ListingRepo{db: db}
}

// GetByID retrieves a listing by ID.
func (r *ListingRepo) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	var l domain.Listing
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT id, name, price, description, account_id, created_at FROM listings WHERE id = $1",
		id,
	).Scan(&l.ID, &l.Name, &l.Price, &l.Description, &l.AccountID, &l.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create creates a new listing.
func (r *ListingRepo) Create(ctx context.Context, accountID int64, name, price, description string) (*domain.Listing, error) {
	var l domain.Listing
	err := r.db.sql.QueryRowContext(ctx,
		"INSERT INTO listings (name, price, description, account_id, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id, name, price, description, account_id, created_at",
		name, price, description, accountID, time.Now(),
	).Scan(&l.ID, &l.Name, &l.Price, &l.Description, &l.AccountID, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// ListAll returns every listing.
func (r *ListingRepo) ListAll(ctx context.Context) ([]domain.Listing, error) {
	rows, err := r.db.sql.QueryContext(ctx,
		"SELECT id, name, price, description, account_id, created_at FROM listings",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		var l domain.Listing
		if err := rows.Scan(&l.ID, &l.Name, &l.Price, &l.Description, &l.AccountID, &l.CreatedAt); err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}
