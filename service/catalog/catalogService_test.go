package catalogsvc_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/RazvanV12/BookStoreAPI/model"
	catalogsvc "github.com/RazvanV12/BookStoreAPI/service/catalog"
)

type catalogStore struct {
	books map[int64]*model.Book
	items map[int64][]model.BookItem
}

func newCatalogStore() *catalogStore {
	return &catalogStore{
		books: make(map[int64]*model.Book),
		items: make(map[int64][]model.BookItem),
	}
}

func (s *catalogStore) ListBooks(ctx context.Context) ([]model.Book, error) {
	var out []model.Book
	for _, b := range s.books {
		out = append(out, *b)
	}
	return out, nil
}

func (s *catalogStore) BookByID(ctx context.Context, id int64) (*model.Book, error) {
	b, ok := s.books[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *b
	return &cp, nil
}

func (s *catalogStore) ExistsBook(ctx context.Context, id int64) (bool, error) {
	_, ok := s.books[id]
	return ok, nil
}

func (s *catalogStore) ItemsByBook(ctx context.Context, bookID int64) ([]model.BookItem, error) {
	return s.items[bookID], nil
}

func TestDetail_NotFound(t *testing.T) {
	svc := catalogsvc.New(newCatalogStore())

	_, err := svc.Detail(context.Background(), 42)
	require.ErrorIs(t, err, catalogsvc.ErrBookNotFound)
}

func TestDetail_Found(t *testing.T) {
	st := newCatalogStore()
	st.books[1] = &model.Book{ID: 1, Title: "1984", Author: "George Orwell"}
	svc := catalogsvc.New(st)

	b, err := svc.Detail(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "1984", b.Title)
}

func TestItems_MissingBook(t *testing.T) {
	svc := catalogsvc.New(newCatalogStore())

	_, err := svc.Items(context.Background(), 42)
	require.ErrorIs(t, err, catalogsvc.ErrBookNotFound)
}

func TestItems_ReturnsVariants(t *testing.T) {
	st := newCatalogStore()
	st.books[1] = &model.Book{ID: 1, Title: "1984"}
	stock := int64(15)
	format := "EPUB"
	st.items[1] = []model.BookItem{
		{ID: 10, BookID: 1, Type: model.ItemPhysical, Price: 59.90, StockQuantity: &stock},
		{ID: 11, BookID: 1, Type: model.ItemDigital, Price: 29.90, FileFormat: &format},
	}
	svc := catalogsvc.New(st)

	items, err := svc.Items(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 2)
}

func TestList_Passthrough(t *testing.T) {
	st := newCatalogStore()
	st.books[1] = &model.Book{ID: 1, Title: "1984"}
	st.books[2] = &model.Book{ID: 2, Title: "Crime and Punishment"}
	svc := catalogsvc.New(st)

	books, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 2)
}
