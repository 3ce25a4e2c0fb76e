package rental

type CreateRentalReq struct {
	BookItemID int64 `json:"book_item_id" validate:"required,gt=0"`
	Days       int   `json:"days" validate:"required,min=1,max=90"`
}
