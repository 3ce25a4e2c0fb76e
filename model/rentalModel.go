// model/rental.go
package model

import "time"

type RentalStatus string

const (
	RentalActive RentalStatus = "ACTIVE"
)

type Rental struct {
	ID          int64        `json:"id"`
	UserID      int64        `json:"user_id"`
	BookItemID  int64        `json:"book_item_id"`
	StartAt     time.Time    `json:"start_at"`
	EndAt       time.Time    `json:"end_at"`
	Status      RentalStatus `json:"status"`
	TotalAmount float64      `json:"total_amount"`
}
