package authsvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/RazvanV12/BookStoreAPI/model"
	userrepo "github.com/RazvanV12/BookStoreAPI/repository/user"
	"github.com/RazvanV12/BookStoreAPI/util/hash"
	jwtutil "github.com/RazvanV12/BookStoreAPI/util/jwt"
)

type ErrCode string

const (
	ErrEmailTaken   ErrCode = "EMAIL_TAKEN"
	ErrInvalidCreds ErrCode = "INVALID_CREDENTIALS"
	ErrBadInput     ErrCode = "BAD_INPUT"
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

func makeErr(c ErrCode, msg string) error { return codedError{code: c, msg: msg} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

const tokenTTLHours = 24

type Service interface {
	Register(ctx context.Context, req model.RegisterReq) (*model.User, string, error)
	Login(ctx context.Context, req model.LoginReq) (*model.User, string, error)
}

type service struct {
	ur     userrepo.Repo
	secret string
}

func New(ur userrepo.Repo, secret string) Service { return &service{ur: ur, secret: secret} }

func (s *service) Register(ctx context.Context, req model.RegisterReq) (*model.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.FullName)
	if email == "" || name == "" || len(req.Password) < 6 {
		return nil, "", makeErr(ErrBadInput, "bad input")
	}

	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	u := &model.User{
		Email:        email,
		FullName:     name,
		PasswordHash: hashed,
	}
	if err := s.ur.Create(ctx, u); err != nil {
		if isUniqueViolation(err) {
			return nil, "", makeErr(ErrEmailTaken, "email already registered")
		}
		return nil, "", err
	}

	token, err := jwtutil.Issue(s.secret, u.ID, u.Email, tokenTTLHours)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *service) Login(ctx context.Context, req model.LoginReq) (*model.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, "", makeErr(ErrBadInput, "bad input")
	}

	u, err := s.ur.ByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", makeErr(ErrInvalidCreds, "invalid email or password")
	}
	if err != nil {
		return nil, "", err
	}
	if !hash.Check(u.PasswordHash, req.Password) {
		return nil, "", makeErr(ErrInvalidCreds, "invalid email or password")
	}

	token, err := jwtutil.Issue(s.secret, u.ID, u.Email, tokenTTLHours)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
