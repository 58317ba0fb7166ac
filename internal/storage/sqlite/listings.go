package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sandevgo/gadgetbot/internal/core"
)

const (
	listingColumns = `id, store_id, store_name, sku_ref, listing_title, price_idr, stock, item_condition`
	// newestLimit caps an unfiltered listing query.
	newestLimit = 20
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type Listings struct {
	db *sql.DB
}

func NewListings(db *sql.DB) *Listings {
	return &Listings{db: db}
}

// Search matches term against listing titles and store names, cheapest
// first. An empty term returns the newest listings.
func (l *Listings) Search(ctx context.Context, term string) ([]core.Listing, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		query := `SELECT ` + listingColumns + ` FROM tb_market_listings ORDER BY id DESC LIMIT ?`
		return l.query(ctx, query, newestLimit)
	}

	pattern := "%" + likeEscaper.Replace(term) + "%"
	query := `SELECT ` + listingColumns + ` FROM tb_market_listings
		WHERE listing_title LIKE ? ESCAPE '\' OR store_name LIKE ? ESCAPE '\'
		ORDER BY price_idr ASC, id ASC`
	return l.query(ctx, query, pattern, pattern)
}

func (l *Listings) Get(ctx context.Context, id int64) (core.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM tb_market_listings WHERE id = ?`
	row := l.db.QueryRowContext(ctx, query, id)

	listing, err := scanListing(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Listing{}, fmt.Errorf("listing %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return core.Listing{}, fmt.Errorf("%w: get listing %d: %v", core.ErrPersistence, id, err)
	}
	return listing, nil
}

func (l *Listings) All(ctx context.Context) ([]core.Listing, error) {
	return l.query(ctx, `SELECT `+listingColumns+` FROM tb_market_listings ORDER BY id ASC`)
}

func (l *Listings) Create(ctx context.Context, listing core.Listing) (int64, error) {
	query := `INSERT INTO tb_market_listings
		(store_id, store_name, sku_ref, listing_title, price_idr, stock, item_condition)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	res, err := l.db.ExecContext(ctx, query,
		listing.StoreID, listing.StoreName, listing.SKURef, listing.ListingTitle,
		listing.PriceIDR, listing.Stock, listing.ItemCondition)
	if err != nil {
		return 0, fmt.Errorf("%w: insert listing: %v", core.ErrPersistence, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: insert listing id: %v", core.ErrPersistence, err)
	}
	return id, nil
}

// Update writes only the fields set in u.
func (l *Listings) Update(ctx context.Context, id int64, u core.ListingUpdate) error {
	query := `UPDATE tb_market_listings SET
		price_idr = COALESCE(?, price_idr),
		stock = COALESCE(?, stock),
		listing_title = COALESCE(?, listing_title)
		WHERE id = ?`

	res, err := l.db.ExecContext(ctx, query, nullInt64(u.PriceIDR), nullInt(u.Stock), nullString(u.ListingTitle), id)
	if err != nil {
		return fmt.Errorf("%w: update listing %d: %v", core.ErrPersistence, id, err)
	}
	return expectAffected(res, id)
}

func (l *Listings) Delete(ctx context.Context, id int64) error {
	res, err := l.db.ExecContext(ctx, `DELETE FROM tb_market_listings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: delete listing %d: %v", core.ErrPersistence, id, err)
	}
	return expectAffected(res, id)
}

func (l *Listings) query(ctx context.Context, query string, args ...any) ([]core.Listing, error) {
	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: query listings: %v", core.ErrPersistence, err)
	}
	defer rows.Close()

	listings := []core.Listing{}
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan listing: %v", core.ErrPersistence, err)
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate listings: %v", core.ErrPersistence, err)
	}
	return listings, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanListing(s scanner) (core.Listing, error) {
	var listing core.Listing
	err := s.Scan(&listing.ID, &listing.StoreID, &listing.StoreName, &listing.SKURef,
		&listing.ListingTitle, &listing.PriceIDR, &listing.Stock, &listing.ItemCondition)
	return listing, err
}

func expectAffected(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected: %v", core.ErrPersistence, err)
	}
	if n == 0 {
		return fmt.Errorf("listing %d: %w", id, core.ErrNotFound)
	}
	return nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
