package ordersvc

import (
	"context"
	"log/slog"
	"time"

	"github.com/RazvanV12/BookStoreAPI/model"
)

type StuckRepo interface {
	ListStuck(ctx context.Context, before time.Time) ([]model.Order, error)
}

// Sweeper reports orders that stopped advancing, for out-of-band inspection.
// It never mutates order state.
type Sweeper struct {
	r      StuckRepo
	maxAge time.Duration
	log    *slog.Logger
}

func NewSweeper(r StuckRepo, maxAge time.Duration, log *slog.Logger) *Sweeper {
	return &Sweeper{r: r, maxAge: maxAge, log: log}
}

func (s *Sweeper) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().UTC().Add(-s.maxAge)
	orders, err := s.r.ListStuck(ctx, cutoff)
	if err != nil {
		s.log.Error("stuck order sweep failed", "err", err)
		return
	}
	for _, o := range orders {
		s.log.Warn("order stuck",
			"order_id", o.ID, "status", o.Status, "created_at", o.CreatedAt)
	}
	if len(orders) > 0 {
		s.log.Info("stuck order sweep done", "count", len(orders))
	}
}
