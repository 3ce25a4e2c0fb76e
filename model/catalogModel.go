// model/catalog.go
package model

import "time"

type Book struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn"`
	Language        string `json:"language"`
	PublicationYear int    `json:"publication_year"`
	Description     string `json:"description"`
}

type ItemType string

const (
	ItemPhysical ItemType = "PHYSICAL"
	ItemDigital  ItemType = "DIGITAL"
)

// BookItem is a sellable/rentable unit of a book. Kind-specific fields are
// nullable and valid only for the matching Type: stock/weight for PHYSICAL,
// file format/url for DIGITAL. RentPrice is set iff AvailableForRent.
type BookItem struct {
	ID               int64    `json:"id"`
	BookID           int64    `json:"book_id"`
	Type             ItemType `json:"type"`
	Price            float64  `json:"price"`
	AvailableForRent bool     `json:"available_for_rent"`
	RentPrice        *float64 `json:"rent_price,omitempty"`

	// PHYSICAL
	StockQuantity *int64 `json:"stock_quantity,omitempty"`
	WeightGrams   *int64 `json:"weight_grams,omitempty"`

	// DIGITAL
	FileFormat *string `json:"file_format,omitempty"`
	FileURL    *string `json:"file_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
