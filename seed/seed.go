// Package seed loads the development catalog when the books table is empty.
package seed

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/RazvanV12/BookStoreAPI/util/database"
)

type book struct {
	title, author, isbn, language, description string
	year                                       int
	items                                      []item
}

type item struct {
	typ              string
	price            float64
	availableForRent bool
	rentPrice        *float64
	stock, weight    *int64
	format, url      *string
}

func f(v float64) *float64 { return &v }
func i(v int64) *int64     { return &v }
func s(v string) *string   { return &v }

var catalog = []book{
	{
		title: "1984", author: "George Orwell", isbn: "9780451524935",
		language: "EN", year: 1949,
		description: "A dystopian novel about surveillance and totalitarianism.",
		items: []item{
			{typ: "PHYSICAL", price: 59.90, availableForRent: true, rentPrice: f(9.90), stock: i(15), weight: i(320)},
			{typ: "DIGITAL", price: 29.90, availableForRent: true, rentPrice: f(5.90), format: s("EPUB"), url: s("https://example.com/files/1984.epub")},
		},
	},
	{
		title: "Harry Potter and the Philosopher's Stone", author: "J.K. Rowling", isbn: "9780747532699",
		language: "EN", year: 1997,
		description: "A young wizard discovers his destiny.",
		items: []item{
			{typ: "PHYSICAL", price: 79.90, availableForRent: false, stock: i(30), weight: i(410)},
		},
	},
	{
		title: "Crime and Punishment", author: "Fyodor Dostoevsky", isbn: "9780140449136",
		language: "EN", year: 1866,
		description: "A psychological novel exploring guilt and redemption.",
		items: []item{
			{typ: "DIGITAL", price: 24.90, availableForRent: true, rentPrice: f(4.90), format: s("PDF"), url: s("https://example.com/files/crime-and-punishment.pdf")},
		},
	},
}

// Run inserts the catalog unless books already exist.
func Run(ctx context.Context, db *database.DB, log *slog.Logger) error {
	var count int64
	if err := db.QueryRowContext(ctx, `SELECT count(*) FROM books`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	err := db.RunTx(ctx, func(tx *sql.Tx) error {
		for _, b := range catalog {
			var bookID int64
			err := tx.QueryRowContext(ctx, `
				INSERT INTO books (title, author, isbn, language, publication_year, description)
				VALUES ($1,$2,$3,$4,$5,$6)
				RETURNING id`,
				b.title, b.author, b.isbn, b.language, b.year, b.description,
			).Scan(&bookID)
			if err != nil {
				return err
			}
			for _, it := range b.items {
				_, err := tx.ExecContext(ctx, `
					INSERT INTO book_items
						(book_id, type, price, available_for_rent, rent_price,
						 stock_quantity, weight_grams, file_format, file_url)
					VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
					bookID, it.typ, it.price, it.availableForRent, it.rentPrice,
					it.stock, it.weight, it.format, it.url,
				)
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("seeded catalog", "books", len(catalog))
	return nil
}
