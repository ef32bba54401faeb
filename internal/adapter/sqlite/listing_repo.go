package sqlite

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
		"SELECT id, name, price, description, account_id, created_at FROM listings WHERE id = ?",
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
	now := time.Now()
	res, err := r.db.sql.ExecContext(ctx,
		"INSERT INTO listings (name, price, description, account_id, created_at) VALUES (?, ?, ?, ?, ?)",
		name, price, description, accountID, now,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &domain.Listing{ID: id, Name: name, Price: price, Description: description, AccountID: accountID, CreatedAt: now}, nil
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
