package catalogsvc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/RazvanV12/BookStoreAPI/model"
)

var ErrBookNotFound = errors.New("book not found")

type Repo interface {
	ListBooks(ctx context.Context) ([]model.Book, error)
	BookByID(ctx context.Context, id int64) (*model.Book, error)
	ExistsBook(ctx context.Context, id int64) (bool, error)
	ItemsByBook(ctx context.Context, bookID int64) ([]model.BookItem, error)
}

type Service interface {
	List(ctx context.Context) ([]model.Book, error)
	Detail(ctx context.Context, id int64) (*model.Book, error)
	Items(ctx context.Context, bookID int64) ([]model.BookItem, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) List(ctx context.Context) ([]model.Book, error) { return s.r.ListBooks(ctx) }

func (s *service) Detail(ctx context.Context, id int64) (*model.Book, error) {
	b, err := s.r.BookByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookNotFound
	}
	return b, err
}

func (s *service) Items(ctx context.Context, bookID int64) ([]model.BookItem, error) {
	exists, err := s.r.ExistsBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrBookNotFound
	}
	return s.r.ItemsByBook(ctx, bookID)
}
