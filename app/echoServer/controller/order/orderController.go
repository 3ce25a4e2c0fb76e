package order

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	ordersvc "github.com/RazvanV12/BookStoreAPI/service/order"
)

type Controller struct {
	Svc ordersvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/orders
func (h *Controller) Create(c echo.Context) error {
	var req CreateOrderReq
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

	lines := make([]ordersvc.Line, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, ordersvc.Line{BookItemID: it.BookItemID, Quantity: it.Quantity})
	}

	out, err := h.Svc.Create(c.Request().Context(), uid, lines)
	if err != nil {
		switch ordersvc.Code(err) {
		case ordersvc.ErrEmptyOrder, ordersvc.ErrBadQuantity:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		case ordersvc.ErrItemNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
		case ordersvc.ErrNoStock, ordersvc.ErrDigitalQty:
			return c.JSON(http.StatusConflict, echo.Map{"message": err.Error()})
		default:
			h.Log.Error("order create", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"order_id":     out.OrderID,
		"status":       out.Status,
		"total_amount": out.TotalAmount,
		"created_at":   out.CreatedAt,
	})
}

// GET /v1/orders/me
func (h *Controller) Mine(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	rows, err := h.Svc.ListMine(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("order list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/orders/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.Details(c.Request().Context(), uid, id)
	if err != nil {
		switch ordersvc.Code(err) {
		case ordersvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "order not found"})
		case ordersvc.ErrNotOwner:
			return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
		default:
			h.Log.Error("order detail", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"order_id":     out.OrderID,
		"status":       out.Status,
		"total_amount": out.TotalAmount,
		"items":        out.Lines,
	})
}
