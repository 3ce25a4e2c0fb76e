// model/order.go
package model

import "time"

type OrderStatus string

const (
	OrderPaid      OrderStatus = "PAID"
	OrderShipping  OrderStatus = "SHIPPING"
	OrderDelivered OrderStatus = "DELIVERED"
)

type Order struct {
	ID          int64       `json:"id"`
	UserID      int64       `json:"user_id"`
	Status      OrderStatus `json:"status"`
	TotalAmount float64     `json:"total_amount"`
	CreatedAt   time.Time   `json:"created_at"`
}

// OrderLine captures the unit price at order time, not a live reference.
type OrderLine struct {
	ID         int64   `json:"id"`
	OrderID    int64   `json:"order_id"`
	BookItemID int64   `json:"book_item_id"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
}
