package ordersvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/RazvanV12/BookStoreAPI/model"
	catalogrepo "github.com/RazvanV12/BookStoreAPI/repository/catalog"
	orderrepo "github.com/RazvanV12/BookStoreAPI/repository/order"
	"github.com/RazvanV12/BookStoreAPI/util/metrics"
)

// errors used by controllers

type ErrCode string

const (
	ErrEmptyOrder   ErrCode = "EMPTY_ORDER"
	ErrBadQuantity  ErrCode = "BAD_QUANTITY"
	ErrItemNotFound ErrCode = "ITEM_NOT_FOUND"
	ErrNoStock      ErrCode = "NO_STOCK"
	ErrDigitalQty   ErrCode = "DIGITAL_SINGLE_COPY"
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

// dto

type Line struct {
	BookItemID int64
	Quantity   int
}

type Created struct {
	OrderID     int64
	Status      model.OrderStatus
	TotalAmount float64
	CreatedAt   time.Time
}

// LineRow = repository shape
type LineRow = orderrepo.LineRow

type Details struct {
	OrderID     int64
	Status      model.OrderStatus
	TotalAmount float64
	Lines       []LineRow
}

// ItemStore is the catalog access the engine needs inside its transaction.
type ItemStore interface {
	GetItemForUpdate(ctx context.Context, tx *sql.Tx, itemID int64) (*catalogrepo.ItemRow, error)
	DecrementStock(ctx context.Context, tx *sql.Tx, itemID, qty int64) (bool, error)
}

type Repo interface {
	InsertOrder(ctx context.Context, tx *sql.Tx, o *model.Order) error
	InsertLine(ctx context.Context, tx *sql.Tx, l *model.OrderLine) error
	GetOrder(ctx context.Context, orderID int64) (*model.Order, error)
	ListLines(ctx context.Context, orderID int64) ([]LineRow, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
}

// Notifier receives the id of every order that committed as PAID.
type Notifier interface {
	OrderPaid(orderID int64)
}

type TxRunner interface {
	RunTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

type Service interface {
	// Create validates the lines, decrements physical stock and persists the
	// order as PAID, all in one transaction. The notifier fires after commit.
	Create(ctx context.Context, userID int64, lines []Line) (*Created, error)

	Details(ctx context.Context, userID, orderID int64) (*Details, error)
	ListMine(ctx context.Context, userID int64) ([]model.Order, error)
}

// ----- Service implementation -----

type service struct {
	db     TxRunner
	items  ItemStore
	orders Repo
	notify Notifier
}

func New(db TxRunner, items ItemStore, orders Repo, notify Notifier) Service {
	return &service{db: db, items: items, orders: orders, notify: notify}
}

func (s *service) Create(ctx context.Context, userID int64, lines []Line) (*Created, error) {
	if len(lines) == 0 {
		return nil, makeErr(ErrEmptyOrder, "order must contain at least one item")
	}
	for _, ln := range lines {
		if ln.Quantity < 1 {
			return nil, makeErr(ErrBadQuantity, "quantity must be greater than 0")
		}
	}

	var out *Created
	err := s.db.RunTx(ctx, func(tx *sql.Tx) error {
		order := &model.Order{UserID: userID, Status: model.OrderPaid}

		var total float64
		priced := make([]model.OrderLine, 0, len(lines))

		for _, ln := range lines {
			item, err := s.items.GetItemForUpdate(ctx, tx, ln.BookItemID)
			if errors.Is(err, sql.ErrNoRows) {
				return makeErr(ErrItemNotFound, "book item %d not found", ln.BookItemID)
			}
			if err != nil {
				return err
			}

			switch item.Type {
			case model.ItemPhysical:
				ok, err := s.items.DecrementStock(ctx, tx, item.ID, int64(ln.Quantity))
				if err != nil {
					return err
				}
				if !ok {
					return makeErr(ErrNoStock, "not enough stock for book item %d", item.ID)
				}
			case model.ItemDigital:
				if ln.Quantity > 1 {
					return makeErr(ErrDigitalQty, "digital items are single-copy")
				}
			}

			total += item.Price * float64(ln.Quantity)
			priced = append(priced, model.OrderLine{
				BookItemID: item.ID,
				Quantity:   ln.Quantity,
				UnitPrice:  item.Price,
			})
		}

		order.TotalAmount = total
		if err := s.orders.InsertOrder(ctx, tx, order); err != nil {
			return err
		}
		for i := range priced {
			priced[i].OrderID = order.ID
			if err := s.orders.InsertLine(ctx, tx, &priced[i]); err != nil {
				return err
			}
		}

		out = &Created{
			OrderID:     order.ID,
			Status:      order.Status,
			TotalAmount: order.TotalAmount,
			CreatedAt:   order.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersCreated.Inc()

	// After the commit, never before: a signal for an uncommitted order could
	// advance a row that does not exist yet.
	s.notify.OrderPaid(out.OrderID)

	return out, nil
}

func (s *service) Details(ctx context.Context, userID, orderID int64) (*Details, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, makeErr(ErrNotFound, "order %d not found", orderID)
	}
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, makeErr(ErrNotOwner, "order %d belongs to another user", orderID)
	}

	rows, err := s.orders.ListLines(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &Details{
		OrderID:     order.ID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		Lines:       rows,
	}, nil
}

func (s *service) ListMine(ctx context.Context, userID int64) ([]model.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}
