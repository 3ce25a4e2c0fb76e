package ordersvc_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/RazvanV12/BookStoreAPI/model"
	catalogrepo "github.com/RazvanV12/BookStoreAPI/repository/catalog"
	ordersvc "github.com/RazvanV12/BookStoreAPI/service/order"
)

// store is an in-memory stand-in for the catalog and order repositories plus
// the transaction runner. RunTx snapshots state and restores it on error, so
// rollback behavior matches the real thing.
type store struct {
	items  map[int64]*catalogrepo.ItemRow
	orders map[int64]*model.Order
	lines  map[int64][]model.OrderLine
	nextID int64
}

func newStore() *store {
	return &store{
		items:  make(map[int64]*catalogrepo.ItemRow),
		orders: make(map[int64]*model.Order),
		lines:  make(map[int64][]model.OrderLine),
	}
}

func cloneItem(v *catalogrepo.ItemRow) *catalogrepo.ItemRow {
	cp := *v
	if v.StockQuantity != nil {
		n := *v.StockQuantity
		cp.StockQuantity = &n
	}
	if v.RentPrice != nil {
		p := *v.RentPrice
		cp.RentPrice = &p
	}
	return &cp
}

func (s *store) snapshot() *store {
	snap := newStore()
	snap.nextID = s.nextID
	for k, v := range s.items {
		snap.items[k] = cloneItem(v)
	}
	for k, v := range s.orders {
		cp := *v
		snap.orders[k] = &cp
	}
	for k, v := range s.lines {
		snap.lines[k] = append([]model.OrderLine(nil), v...)
	}
	return snap
}

func (s *store) RunTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	snap := s.snapshot()
	if err := fn(nil); err != nil {
		*s = *snap
		return err
	}
	return nil
}

func (s *store) GetItemForUpdate(ctx context.Context, tx *sql.Tx, itemID int64) (*catalogrepo.ItemRow, error) {
	it, ok := s.items[itemID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return cloneItem(it), nil
}

func (s *store) DecrementStock(ctx context.Context, tx *sql.Tx, itemID, qty int64) (bool, error) {
	it, ok := s.items[itemID]
	if !ok || it.StockQuantity == nil || *it.StockQuantity < qty {
		return false, nil
	}
	*it.StockQuantity -= qty
	return true, nil
}

func (s *store) InsertOrder(ctx context.Context, tx *sql.Tx, o *model.Order) error {
	s.nextID++
	o.ID = s.nextID
	o.CreatedAt = time.Now().UTC()
	cp := *o
	s.orders[o.ID] = &cp
	return nil
}

func (s *store) InsertLine(ctx context.Context, tx *sql.Tx, l *model.OrderLine) error {
	s.nextID++
	l.ID = s.nextID
	s.lines[l.OrderID] = append(s.lines[l.OrderID], *l)
	return nil
}

func (s *store) GetOrder(ctx context.Context, orderID int64) (*model.Order, error) {
	o, ok := s.orders[orderID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *o
	return &cp, nil
}

func (s *store) ListLines(ctx context.Context, orderID int64) ([]ordersvc.LineRow, error) {
	var out []ordersvc.LineRow
	for _, l := range s.lines[orderID] {
		title := ""
		if it, ok := s.items[l.BookItemID]; ok {
			title = it.BookTitle
		}
		out = append(out, ordersvc.LineRow{
			BookItemID: l.BookItemID,
			BookTitle:  title,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
		})
	}
	return out, nil
}

func (s *store) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	var out []model.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *store) stock(itemID int64) int64 {
	it := s.items[itemID]
	if it == nil || it.StockQuantity == nil {
		return -1
	}
	return *it.StockQuantity
}

func (s *store) addPhysical(id int64, title string, price float64, stock int64) {
	s.items[id] = &catalogrepo.ItemRow{
		BookItem: model.BookItem{
			ID:            id,
			Type:          model.ItemPhysical,
			Price:         price,
			StockQuantity: &stock,
		},
		BookTitle: title,
	}
}

func (s *store) addDigital(id int64, title string, price float64) {
	format := "EPUB"
	s.items[id] = &catalogrepo.ItemRow{
		BookItem: model.BookItem{
			ID:         id,
			Type:       model.ItemDigital,
			Price:      price,
			FileFormat: &format,
		},
		BookTitle: title,
	}
}

type notifierMock struct {
	orderIDs []int64
}

func (n *notifierMock) OrderPaid(orderID int64) { n.orderIDs = append(n.orderIDs, orderID) }

func setup() (ordersvc.Service, *store, *notifierMock) {
	st := newStore()
	n := &notifierMock{}
	return ordersvc.New(st, st, st, n), st, n
}

// --- tests ---

func TestCreate_HappyCheckout(t *testing.T) {
	svc, st, n := setup()
	st.addPhysical(1, "1984", 5.00, 10)

	out, err := svc.Create(context.Background(), 7, []ordersvc.Line{{BookItemID: 1, Quantity: 2}})
	require.NoError(t, err)
	require.Equal(t, model.OrderPaid, out.Status)
	require.InDelta(t, 10.00, out.TotalAmount, 1e-9)
	require.Equal(t, int64(8), st.stock(1))

	require.Equal(t, []int64{out.OrderID}, n.orderIDs)

	saved := st.orders[out.OrderID]
	require.NotNil(t, saved)
	require.Equal(t, int64(7), saved.UserID)
	require.Len(t, st.lines[out.OrderID], 1)
	require.InDelta(t, 5.00, st.lines[out.OrderID][0].UnitPrice, 1e-9)
}

func TestCreate_EmptyLines(t *testing.T) {
	svc, _, n := setup()

	_, err := svc.Create(context.Background(), 7, nil)
	require.Error(t, err)
	require.Equal(t, ordersvc.ErrEmptyOrder, ordersvc.Code(err))
	require.Empty(t, n.orderIDs)
}

func TestCreate_BadQuantity(t *testing.T) {
	svc, st, _ := setup()
	st.addPhysical(1, "1984", 5.00, 10)

	_, err := svc.Create(context.Background(), 7, []ordersvc.Line{{BookItemID: 1, Quantity: 0}})
	require.Equal(t, ordersvc.ErrBadQuantity, ordersvc.Code(err))
	require.Equal(t, int64(10), st.stock(1))
}

func TestCreate_ItemNotFound(t *testing.T) {
	svc, st, n := setup()

	_, err := svc.Create(context.Background(), 7, []ordersvc.Line{{BookItemID: 99, Quantity: 1}})
	require.Equal(t, ordersvc.ErrItemNotFound, ordersvc.Code(err))
	require.Empty(t, st.orders)
	require.Empty(t, n.orderIDs)
}

func TestCreate_InsufficientStock(t *testing.T) {
	svc, st, n := setup()
	st.addPhysical(2, "Dune", 12.00, 2)

	_, err := svc.Create(context.Background(), 7, []ordersvc.Line{{BookItemID: 2, Quantity: 5}})
	require.Equal(t, ordersvc.ErrNoStock, ordersvc.Code(err))
	require.Equal(t, int64(2), st.stock(2))
	require.Empty(t, st.orders)
	require.Empty(t, n.orderIDs)
}

func TestCreate_DigitalSingleCopy(t *testing.T) {
	svc, st, n := setup()
	st.addDigital(3, "1984 (ebook)", 29.90)

	_, err := svc.Create(context.Background(), 7, []ordersvc.Line{{BookItemID: 3, Quantity: 2}})
	require.Equal(t, ordersvc.ErrDigitalQty, ordersvc.Code(err))
	require.Empty(t, st.orders)
	require.Empty(t, n.orderIDs)

	out, err := svc.Create(context.Background(), 7, []ordersvc.Line{{BookItemID: 3, Quantity: 1}})
	require.NoError(t, err)
	require.InDelta(t, 29.90, out.TotalAmount, 1e-9)
}

func TestCreate_FailedLineRollsBackStock(t *testing.T) {
	svc, st, _ := setup()
	st.addPhysical(1, "1984", 5.00, 10)

	_, err := svc.Create(context.Background(), 7, []ordersvc.Line{
		{BookItemID: 1, Quantity: 3},
		{BookItemID: 42, Quantity: 1},
	})
	require.Equal(t, ordersvc.ErrItemNotFound, ordersvc.Code(err))
	require.Equal(t, int64(10), st.stock(1))
	require.Empty(t, st.orders)
}

func TestCreate_TotalAcrossLines(t *testing.T) {
	svc, st, _ := setup()
	st.addPhysical(1, "1984", 59.90, 15)
	st.addDigital(2, "Crime and Punishment", 24.90)

	out, err := svc.Create(context.Background(), 7, []ordersvc.Line{
		{BookItemID: 1, Quantity: 2},
		{BookItemID: 2, Quantity: 1},
	})
	require.NoError(t, err)
	require.InDelta(t, 2*59.90+24.90, out.TotalAmount, 1e-9)
}

func TestCreate_PriceSnapshot(t *testing.T) {
	svc, st, _ := setup()
	st.addPhysical(1, "1984", 5.00, 10)

	out, err := svc.Create(context.Background(), 7, []ordersvc.Line{{BookItemID: 1, Quantity: 2}})
	require.NoError(t, err)

	// Catalog price changes after checkout; the order keeps the snapshot.
	st.items[1].Price = 99.00

	det, err := svc.Details(context.Background(), 7, out.OrderID)
	require.NoError(t, err)
	require.InDelta(t, 10.00, det.TotalAmount, 1e-9)
	require.Len(t, det.Lines, 1)
	require.InDelta(t, 5.00, det.Lines[0].UnitPrice, 1e-9)
}

func TestCreate_StockNeverNegative(t *testing.T) {
	svc, st, _ := setup()
	st.addPhysical(1, "1984", 5.00, 3)

	_, err := svc.Create(context.Background(), 7, []ordersvc.Line{{BookItemID: 1, Quantity: 2}})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), 8, []ordersvc.Line{{BookItemID: 1, Quantity: 1}})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), 9, []ordersvc.Line{{BookItemID: 1, Quantity: 1}})
	require.Equal(t, ordersvc.ErrNoStock, ordersvc.Code(err))
	require.Equal(t, int64(0), st.stock(1))
}

func TestDetails_Ownership(t *testing.T) {
	svc, st, _ := setup()
	st.addPhysical(1, "1984", 5.00, 10)
	out, err := svc.Create(context.Background(), 7, []ordersvc.Line{{BookItemID: 1, Quantity: 1}})
	require.NoError(t, err)

	_, err = svc.Details(context.Background(), 8, out.OrderID)
	require.Equal(t, ordersvc.ErrNotOwner, ordersvc.Code(err))

	_, err = svc.Details(context.Background(), 7, 9999)
	require.Equal(t, ordersvc.ErrNotFound, ordersvc.Code(err))
}

func TestListMine_OnlyOwnOrders(t *testing.T) {
	svc, st, _ := setup()
	st.addPhysical(1, "1984", 5.00, 10)

	_, err := svc.Create(context.Background(), 7, []ordersvc.Line{{BookItemID: 1, Quantity: 1}})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), 8, []ordersvc.Line{{BookItemID: 1, Quantity: 1}})
	require.NoError(t, err)

	mine, err := svc.ListMine(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, int64(7), mine[0].UserID)
}
