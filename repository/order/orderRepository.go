package orderrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/RazvanV12/BookStoreAPI/model"
)

// LineRow is an order line joined with its book title.
type LineRow struct {
	BookItemID int64   `json:"book_item_id"`
	BookTitle  string  `json:"book_title"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
}

type Repo interface {
	InsertOrder(ctx context.Context, tx *sql.Tx, o *model.Order) error
	InsertLine(ctx context.Context, tx *sql.Tx, l *model.OrderLine) error

	GetOrder(ctx context.Context, orderID int64) (*model.Order, error)
	ListLines(ctx context.Context, orderID int64) ([]LineRow, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)

	// AdvanceStatus moves the order from expected to next in one statement.
	// Returns false when the order is absent or not in the expected state.
	AdvanceStatus(ctx context.Context, orderID int64, expected, next model.OrderStatus) (bool, error)

	ListStuck(ctx context.Context, before time.Time) ([]model.Order, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) InsertOrder(ctx context.Context, tx *sql.Tx, o *model.Order) error {
	const q = `
		INSERT INTO orders (user_id, status, total_amount)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	return tx.QueryRowContext(ctx, q, o.UserID, o.Status, o.TotalAmount).Scan(&o.ID, &o.CreatedAt)
}

func (r *repo) InsertLine(ctx context.Context, tx *sql.Tx, l *model.OrderLine) error {
	const q = `
		INSERT INTO order_lines (order_id, book_item_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	return tx.QueryRowContext(ctx, q, l.OrderID, l.BookItemID, l.Quantity, l.UnitPrice).Scan(&l.ID)
}

func (r *repo) GetOrder(ctx context.Context, orderID int64) (*model.Order, error) {
	const q = `
		SELECT id, user_id, status, total_amount, created_at
		FROM orders
		WHERE id = $1`
	var o model.Order
	err := r.db.QueryRowContext(ctx, q, orderID).
		Scan(&o.ID, &o.UserID, &o.Status, &o.TotalAmount, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repo) ListLines(ctx context.Context, orderID int64) ([]LineRow, error) {
	const q = `
		SELECT ol.book_item_id, b.title, ol.quantity, ol.unit_price
		FROM order_lines ol
		JOIN book_items bi ON bi.id = ol.book_item_id
		JOIN books b ON b.id = bi.book_id
		WHERE ol.order_id = $1
		ORDER BY ol.id`
	rows, err := r.db.QueryContext(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LineRow
	for rows.Next() {
		var l LineRow
		if err := rows.Scan(&l.BookItemID, &l.BookTitle, &l.Quantity, &l.UnitPrice); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *repo) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	const q = `
		SELECT id, user_id, status, total_amount, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.TotalAmount, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *repo) AdvanceStatus(ctx context.Context, orderID int64, expected, next model.OrderStatus) (bool, error) {
	const q = `
		UPDATE orders
		SET status = $3
		WHERE id = $1
		AND status = $2`
	res, err := r.db.ExecContext(ctx, q, orderID, expected, next)
	if err != nil {
		return false, err
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return aff > 0, nil
}

func (r *repo) ListStuck(ctx context.Context, before time.Time) ([]model.Order, error) {
	const q = `
		SELECT id, user_id, status, total_amount, created_at
		FROM orders
		WHERE status IN ('PAID', 'SHIPPING')
		AND created_at < $1
		ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, q, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.TotalAmount, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
