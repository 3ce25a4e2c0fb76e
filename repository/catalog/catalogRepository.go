package catalogrepo

import (
	"context"
	"database/sql"

	"github.com/RazvanV12/BookStoreAPI/model"
)

// ItemRow is a book item joined with its book title.
type ItemRow struct {
	model.BookItem
	BookTitle string
}

type Repo interface {
	ListBooks(ctx context.Context) ([]model.Book, error)
	BookByID(ctx context.Context, id int64) (*model.Book, error)
	ExistsBook(ctx context.Context, id int64) (bool, error)
	ItemsByBook(ctx context.Context, bookID int64) ([]model.BookItem, error)

	// GetItemForUpdate locks the item row for the duration of tx.
	GetItemForUpdate(ctx context.Context, tx *sql.Tx, itemID int64) (*ItemRow, error)

	// DecrementStock subtracts qty from stock only when enough remains.
	// Returns false when the guard rejects the update.
	DecrementStock(ctx context.Context, tx *sql.Tx, itemID, qty int64) (bool, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) ListBooks(ctx context.Context) ([]model.Book, error) {
	const q = `
		SELECT id, title, author, isbn, language, publication_year, description
		FROM books
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.Language, &b.PublicationYear, &b.Description); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repo) BookByID(ctx context.Context, id int64) (*model.Book, error) {
	const q = `
		SELECT id, title, author, isbn, language, publication_year, description
		FROM books
		WHERE id = $1`
	var b model.Book
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.Language, &b.PublicationYear, &b.Description)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repo) ExistsBook(ctx context.Context, id int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`
	var exists bool
	err := r.db.QueryRowContext(ctx, q, id).Scan(&exists)
	return exists, err
}

func (r *repo) ItemsByBook(ctx context.Context, bookID int64) ([]model.BookItem, error) {
	const q = `
		SELECT id, book_id, type, price, available_for_rent, rent_price,
		       stock_quantity, weight_grams, file_format, file_url, created_at
		FROM book_items
		WHERE book_id = $1
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.BookItem
	for rows.Next() {
		var it model.BookItem
		if err := rows.Scan(
			&it.ID, &it.BookID, &it.Type, &it.Price, &it.AvailableForRent, &it.RentPrice,
			&it.StockQuantity, &it.WeightGrams, &it.FileFormat, &it.FileURL, &it.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *repo) GetItemForUpdate(ctx context.Context, tx *sql.Tx, itemID int64) (*ItemRow, error) {
	const q = `
		SELECT bi.id, bi.book_id, bi.type, bi.price, bi.available_for_rent, bi.rent_price,
		       bi.stock_quantity, bi.weight_grams, bi.file_format, bi.file_url, bi.created_at,
		       b.title
		FROM book_items bi
		JOIN books b ON b.id = bi.book_id
		WHERE bi.id = $1
		FOR UPDATE OF bi`
	var row ItemRow
	err := tx.QueryRowContext(ctx, q, itemID).Scan(
		&row.ID, &row.BookID, &row.Type, &row.Price, &row.AvailableForRent, &row.RentPrice,
		&row.StockQuantity, &row.WeightGrams, &row.FileFormat, &row.FileURL, &row.CreatedAt,
		&row.BookTitle,
	)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repo) DecrementStock(ctx context.Context, tx *sql.Tx, itemID, qty int64) (bool, error) {
	// Guard: only decrement if sufficient.
	const q = `
		UPDATE book_items
		SET stock_quantity = stock_quantity - $2
		WHERE id = $1
		AND stock_quantity >= $2`
	res, err := tx.ExecContext(ctx, q, itemID, qty)
	if err != nil {
		return false, err
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return aff > 0, nil
}
