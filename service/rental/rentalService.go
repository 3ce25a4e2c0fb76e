package rentalsvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/RazvanV12/BookStoreAPI/model"
	catalogrepo "github.com/RazvanV12/BookStoreAPI/repository/catalog"
	rentalrepo "github.com/RazvanV12/BookStoreAPI/repository/rental"
	"github.com/RazvanV12/BookStoreAPI/util/metrics"
)

// errors used by controllers

type ErrCode string

const (
	ErrBadDays      ErrCode = "BAD_DAYS"
	ErrItemNotFound ErrCode = "ITEM_NOT_FOUND"
	ErrNotRentable  ErrCode = "NOT_RENTABLE"
	ErrNoStock      ErrCode = "NO_STOCK"
	ErrNotFound     ErrCode = "NOT_FOUND"
	ErrNotOwner     ErrCode = "NOT_OWNER"
)

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	return string(e.code)
}
func (e codedError) Code() ErrCode { return e.code }

func makeErr(c ErrCode, format string, args ...any) error {
	return codedError{code: c, msg: fmt.Sprintf(format, args...)}
}

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

const (
	MinDays = 1
	MaxDays = 90
)

// dto

type Created struct {
	RentalID    int64
	BookItemID  int64
	BookTitle   string
	StartAt     time.Time
	EndAt       time.Time
	TotalAmount float64
}

// DetailRow / HistoryRow = repository shapes
type DetailRow = rentalrepo.DetailRow
type HistoryRow = rentalrepo.HistoryRow

type ItemStore interface {
	GetItemForUpdate(ctx context.Context, tx *sql.Tx, itemID int64) (*catalogrepo.ItemRow, error)
	DecrementStock(ctx context.Context, tx *sql.Tx, itemID, qty int64) (bool, error)
}

type Repo interface {
	InsertRental(ctx context.Context, tx *sql.Tx, r *model.Rental) error
	Details(ctx context.Context, rentalID int64) (*DetailRow, error)
	ListByUser(ctx context.Context, userID int64) ([]HistoryRow, error)
}

type TxRunner interface {
	RunTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

type Service interface {
	// Create rents one exemplar of the item for days days, decrementing
	// physical stock by one in the same transaction.
	Create(ctx context.Context, userID, itemID int64, days int) (*Created, error)

	Details(ctx context.Context, userID, rentalID int64) (*DetailRow, error)
	ListMine(ctx context.Context, userID int64) ([]HistoryRow, error)
}

// ----- Service implementation -----

type service struct {
	db      TxRunner
	items   ItemStore
	rentals Repo
}

func New(db TxRunner, items ItemStore, rentals Repo) Service {
	return &service{db: db, items: items, rentals: rentals}
}

func (s *service) Create(ctx context.Context, userID, itemID int64, days int) (*Created, error) {
	if days < MinDays || days > MaxDays {
		return nil, makeErr(ErrBadDays, "days must be between %d and %d", MinDays, MaxDays)
	}

	var out *Created
	err := s.db.RunTx(ctx, func(tx *sql.Tx) error {
		item, err := s.items.GetItemForUpdate(ctx, tx, itemID)
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrItemNotFound, "book item %d not found", itemID)
		}
		if err != nil {
			return err
		}

		if !item.AvailableForRent || item.RentPrice == nil {
			return makeErr(ErrNotRentable, "book item %d is not available for rent", itemID)
		}

		// One physical exemplar per rental, regardless of day count.
		if item.Type == model.ItemPhysical {
			if item.StockQuantity == nil || *item.StockQuantity < 1 {
				return makeErr(ErrNoStock, "no stock available for renting book item %d", itemID)
			}
			ok, err := s.items.DecrementStock(ctx, tx, item.ID, 1)
			if err != nil {
				return err
			}
			if !ok {
				return makeErr(ErrNoStock, "no stock available for renting book item %d", itemID)
			}
		}

		start := time.Now().UTC()
		end := start.Add(time.Duration(days) * 24 * time.Hour)
		total := *item.RentPrice * float64(days)

		rental := &model.Rental{
			UserID:      userID,
			BookItemID:  item.ID,
			StartAt:     start,
			EndAt:       end,
			Status:      model.RentalActive,
			TotalAmount: total,
		}
		if err := s.rentals.InsertRental(ctx, tx, rental); err != nil {
			return err
		}

		out = &Created{
			RentalID:    rental.ID,
			BookItemID:  item.ID,
			BookTitle:   item.BookTitle,
			StartAt:     start,
			EndAt:       end,
			TotalAmount: total,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RentalsCreated.Inc()
	return out, nil
}

func (s *service) Details(ctx context.Context, userID, rentalID int64) (*DetailRow, error) {
	d, err := s.rentals.Details(ctx, rentalID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, makeErr(ErrNotFound, "rental %d not found", rentalID)
	}
	if err != nil {
		return nil, err
	}
	if d.UserID != userID {
		return nil, makeErr(ErrNotOwner, "rental %d belongs to another user", rentalID)
	}
	return d, nil
}

func (s *service) ListMine(ctx context.Context, userID int64) ([]HistoryRow, error) {
	return s.rentals.ListByUser(ctx, userID)
}
