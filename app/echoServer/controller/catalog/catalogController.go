package catalog

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	catalogsvc "github.com/RazvanV12/BookStoreAPI/service/catalog"
)

type Controller struct {
	Svc catalogsvc.Service
	Log *slog.Logger
}

// GET /v1/books
func (h *Controller) List(c echo.Context) error {
	books, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("book list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": books})
}

// GET /v1/books/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	book, err := h.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, catalogsvc.ErrBookNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		}
		h.Log.Error("book detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, book)
}

// GET /v1/books/:id/items
func (h *Controller) Items(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	items, err := h.Svc.Items(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, catalogsvc.ErrBookNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		}
		h.Log.Error("book items", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": items})
}
