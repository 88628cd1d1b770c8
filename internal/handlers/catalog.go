package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/harena/myshop/internal/events"
	"github.com/harena/myshop/internal/store"
)

type CatalogHandler struct {
	Store    *store.Store
	Producer *events.Producer
}

// CreateArticle adds a catalog item. Attribute validation lives in the
// input form, not here; the payload goes to the store as received.
func (h *CatalogHandler) CreateArticle(c echo.Context) error {
	var req struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
		Stock int     `json:"stock"`
		Photo string  `json:"photo"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.Store.AddArticle(c.Request().Context(), req.Name, req.Price, req.Stock, req.Photo); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publish(c, h.Producer, req.Name, map[string]any{
		"type": "article_created",
		"name": req.Name,
	})

	return c.JSON(http.StatusOK, echo.Map{"name": req.Name, "stock": req.Stock})
}

func (h *CatalogHandler) GetArticle(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	article, err := h.Store.Article(c.Request().Context(), uint(id))
	if errors.Is(err, store.ErrArticleNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "article not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, article)
}

func (h *CatalogHandler) GetArticles(c echo.Context) error {
	articles, err := h.Store.Articles(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, articles)
}
