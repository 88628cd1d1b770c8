package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/harena/myshop/internal/events"
	"github.com/harena/myshop/internal/models"
	"github.com/harena/myshop/internal/store"
)

type CartHandler struct {
	Store     *store.Store
	JWTSecret []byte
	Producer  *events.Producer
}

func (h *CartHandler) GetCart(c echo.Context) error {
	userID, err := GetID(c, h.JWTSecret)
	if err != nil {
		return err
	}

	entries, err := h.Store.CartForUser(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, entries)
}

// AddToCart reserves stock into the caller's cart. The total comes from
// the client, which owns the price * quantity computation.
func (h *CartHandler) AddToCart(c echo.Context) error {
	userID, err := GetID(c, h.JWTSecret)
	if err != nil {
		return err
	}

	var req struct {
		ArticleID uint    `json:"article_id"`
		Quantity  int     `json:"quantity"`
		Total     float64 `json:"total"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	entryID, err := h.Store.ReserveToCart(c.Request().Context(), req.ArticleID, req.Quantity, req.Total, userID)
	switch {
	case errors.Is(err, store.ErrArticleNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "article not found")
	case errors.Is(err, store.ErrInsufficientStock):
		return echo.NewHTTPError(http.StatusConflict, "insufficient stock")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publish(c, h.Producer, fmt.Sprint(userID), map[string]any{
		"type":      "stock_reserved",
		"userID":    userID,
		"articleID": req.ArticleID,
		"quantity":  req.Quantity,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"id":         entryID,
		"article_id": req.ArticleID,
		"quantity":   req.Quantity,
		"total":      req.Total,
	})
}

// MakeOrder turns the caller's cart into a commande with one line per
// entry, then clears the cart. The store operations stay independent;
// this wrapper only sequences them.
func (h *CartHandler) MakeOrder(c echo.Context) error {
	userID, err := GetID(c, h.JWTSecret)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	entries, err := h.Store.CartForUser(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if len(entries) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "no items in cart")
	}

	var total float64
	for _, entry := range entries {
		total += entry.Total
	}

	date := time.Now().UTC().Format("2006-01-02 15:04:05")
	orderID, err := h.Store.CreateOrder(ctx, userID, date, total)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	lines := make([]models.CommandeLine, 0, len(entries))
	for _, entry := range entries {
		lineID, err := h.Store.AddOrderLine(ctx, orderID, entry.ArticleID, entry.Quantity, entry.Total)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		lines = append(lines, models.CommandeLine{
			ID:         lineID,
			CommandeID: orderID,
			ArticleID:  entry.ArticleID,
			Quantity:   entry.Quantity,
			Total:      entry.Total,
		})
	}

	if err := h.Store.ClearCart(ctx, userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publish(c, h.Producer, fmt.Sprint(userID), map[string]any{
		"type":    "order_created",
		"userID":  userID,
		"orderID": orderID,
		"total":   total,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"order_id": orderID,
		"date":     date,
		"total":    total,
		"lines":    lines,
	})
}

func (h *CartHandler) GetOrders(c echo.Context) error {
	userID, err := GetID(c, h.JWTSecret)
	if err != nil {
		return err
	}

	orders, err := h.Store.OrdersForUser(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, orders)
}
