package ordersvc

import (
	"context"
	"log/slog"
	"time"

	"github.com/RazvanV12/BookStoreAPI/model"
	"github.com/RazvanV12/BookStoreAPI/util/metrics"
)

// StatusRepo is the single write the workflow performs: a compare-and-set on
// the order status, its own transaction, independent of the creating one.
type StatusRepo interface {
	AdvanceStatus(ctx context.Context, orderID int64, expected, next model.OrderStatus) (bool, error)
}

// Workflow advances a paid order to SHIPPING and then DELIVERED after fixed
// delays. Each step is idempotent: duplicate signals spawn duplicate timers,
// but only the first attempt to observe the expected state writes anything.
// A failed step is logged and abandoned; no retries.
type Workflow struct {
	r     StatusRepo
	delay time.Duration
	log   *slog.Logger
}

func NewWorkflow(r StatusRepo, delay time.Duration, log *slog.Logger) *Workflow {
	return &Workflow{r: r, delay: delay, log: log}
}

// OrderPaid schedules the two transitions for orderID and returns immediately.
// Timers hold no goroutine for the delay duration.
func (w *Workflow) OrderPaid(orderID int64) {
	time.AfterFunc(w.delay, func() {
		w.Advance(orderID, model.OrderPaid, model.OrderShipping)
		time.AfterFunc(w.delay, func() {
			w.Advance(orderID, model.OrderShipping, model.OrderDelivered)
		})
	})
}

// Advance attempts one transition. It reports whether the write happened; a
// skipped or failed transition is a no-op for the order.
func (w *Workflow) Advance(orderID int64, expected, next model.OrderStatus) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	moved, err := w.r.AdvanceStatus(ctx, orderID, expected, next)
	if err != nil {
		metrics.OrderTransitions.WithLabelValues(string(next), "error").Inc()
		w.log.Error("order status advance failed",
			"order_id", orderID, "from", expected, "to", next, "err", err)
		return false
	}
	if !moved {
		metrics.OrderTransitions.WithLabelValues(string(next), "skipped").Inc()
		w.log.Warn("order status advance skipped",
			"order_id", orderID, "from", expected, "to", next)
		return false
	}
	metrics.OrderTransitions.WithLabelValues(string(next), "applied").Inc()
	w.log.Info("order status advanced",
		"order_id", orderID, "from", expected, "to", next)
	return true
}
