package order

type CreateOrderLineReq struct {
	BookItemID int64 `json:"book_item_id" validate:"required,gt=0"`
	Quantity   int   `json:"quantity" validate:"required,min=1"`
}

type CreateOrderReq struct {
	Items []CreateOrderLineReq `json:"items" validate:"required,min=1,dive"`
}
