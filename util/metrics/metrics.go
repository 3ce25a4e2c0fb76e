package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	OrdersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bookstore",
		Name:      "orders_created_total",
		Help:      "Total number of orders created.",
	})
	RentalsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "bookstore",
		Name:      "rentals_created_total",
		Help:      "Total number of rentals created.",
	})
	OrderTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bookstore",
		Name:      "order_status_transitions_total",
		Help:      "Order status transition attempts by target state and outcome.",
	}, []string{"to", "outcome"})
)

func init() {
	prometheus.MustRegister(OrdersCreated, RentalsCreated, OrderTransitions)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
