package rentalrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/RazvanV12/BookStoreAPI/model"
)

// DetailRow is a rental joined with its book item and title.
type DetailRow struct {
	RentalID    int64          `json:"rental_id"`
	UserID      int64          `json:"-"`
	BookItemID  int64          `json:"book_item_id"`
	BookTitle   string         `json:"book_title"`
	Type        model.ItemType `json:"type"`
	StartAt     time.Time      `json:"start_at"`
	EndAt       time.Time      `json:"end_at"`
	RentPrice   *float64       `json:"rent_price_per_day"`
	TotalAmount float64        `json:"total_amount"`
}

type HistoryRow struct {
	RentalID    int64     `json:"rental_id"`
	BookItemID  int64     `json:"book_item_id"`
	BookTitle   string    `json:"book_title"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	TotalAmount float64   `json:"total_amount"`
}

type Repo interface {
	InsertRental(ctx context.Context, tx *sql.Tx, r *model.Rental) error
	Details(ctx context.Context, rentalID int64) (*DetailRow, error)
	ListByUser(ctx context.Context, userID int64) ([]HistoryRow, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) InsertRental(ctx context.Context, tx *sql.Tx, m *model.Rental) error {
	const q = `
		INSERT INTO rentals (user_id, book_item_id, start_at, end_at, status, total_amount)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	return tx.QueryRowContext(ctx, q,
		m.UserID, m.BookItemID, m.StartAt, m.EndAt, m.Status, m.TotalAmount,
	).Scan(&m.ID)
}

func (r *repo) Details(ctx context.Context, rentalID int64) (*DetailRow, error) {
	const q = `
		SELECT r.id, r.user_id, r.book_item_id, b.title, bi.type,
		       r.start_at, r.end_at, bi.rent_price, r.total_amount
		FROM rentals r
		JOIN book_items bi ON bi.id = r.book_item_id
		JOIN books b ON b.id = bi.book_id
		WHERE r.id = $1`
	var d DetailRow
	err := r.db.QueryRowContext(ctx, q, rentalID).Scan(
		&d.RentalID, &d.UserID, &d.BookItemID, &d.BookTitle, &d.Type,
		&d.StartAt, &d.EndAt, &d.RentPrice, &d.TotalAmount,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repo) ListByUser(ctx context.Context, userID int64) ([]HistoryRow, error) {
	const q = `
		SELECT r.id, r.book_item_id, b.title, r.start_at, r.end_at, r.total_amount
		FROM rentals r
		JOIN book_items bi ON bi.id = r.book_item_id
		JOIN books b ON b.id = bi.book_id
		WHERE r.user_id = $1
		ORDER BY r.start_at DESC, r.id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryRow
	for rows.Next() {
		var h HistoryRow
		if err := rows.Scan(&h.RentalID, &h.BookItemID, &h.BookTitle, &h.StartAt, &h.EndAt, &h.TotalAmount); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
