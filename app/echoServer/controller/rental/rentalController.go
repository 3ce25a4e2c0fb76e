package rental

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	rentalsvc "github.com/RazvanV12/BookStoreAPI/service/rental"
)

type Controller struct {
	Svc rentalsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/rentals
func (h *Controller) Create(c echo.Context) error {
	var req CreateRentalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.Create(c.Request().Context(), uid, req.BookItemID, req.Days)
	if err != nil {
		switch rentalsvc.Code(err) {
		case rentalsvc.ErrBadDays:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		case rentalsvc.ErrItemNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
		case rentalsvc.ErrNotRentable, rentalsvc.ErrNoStock:
			return c.JSON(http.StatusConflict, echo.Map{"message": err.Error()})
		default:
			h.Log.Error("rental create", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"rental_id":    out.RentalID,
		"book_item_id": out.BookItemID,
		"book_title":   out.BookTitle,
		"start_at":     out.StartAt,
		"end_at":       out.EndAt,
		"total_amount": out.TotalAmount,
	})
}

// GET /v1/rentals/me
func (h *Controller) Mine(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	rows, err := h.Svc.ListMine(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("rental list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/rentals/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.Details(c.Request().Context(), uid, id)
	if err != nil {
		switch rentalsvc.Code(err) {
		case rentalsvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "rental not found"})
		case rentalsvc.ErrNotOwner:
			return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
		default:
			h.Log.Error("rental detail", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	return c.JSON(http.StatusOK, out)
}
