package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func (env *testEnv) loginCookie(t *testing.T, userID uint) *http.Cookie {
	t.Helper()
	token, err := SignAccessToken(userID, env.JWTSecret)
	require.NoError(t, err)
	return &http.Cookie{Name: "accessToken", Value: token, Path: "/"}
}

func (env *testEnv) seedArticle(t *testing.T, name string, price float64, stock int) uint {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, env.Store.AddArticle(ctx, name, price, stock, name+".png"))
	articles, err := env.Store.Articles(ctx)
	require.NoError(t, err)
	return articles[len(articles)-1].ID
}

func TestAddToCart(t *testing.T) {
	env := newTestEnv(t)
	articleID := env.seedArticle(t, "Widget", 9.99, 5)
	ck := env.loginCookie(t, 1)

	rec, c := env.doJSONRequest(t, http.MethodPost, "/api/v1/cart", map[string]any{
		"article_id": articleID,
		"quantity":   3,
		"total":      29.97,
	}, ck)
	require.NoError(t, env.Cart.AddToCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	article, err := env.Store.Article(context.Background(), articleID)
	require.NoError(t, err)
	require.Equal(t, 2, article.Stock)
}

func TestAddToCartInsufficientStock(t *testing.T) {
	env := newTestEnv(t)
	articleID := env.seedArticle(t, "Widget", 9.99, 2)
	ck := env.loginCookie(t, 1)

	_, c := env.doJSONRequest(t, http.MethodPost, "/api/v1/cart", map[string]any{
		"article_id": articleID,
		"quantity":   3,
		"total":      29.97,
	}, ck)
	err := env.Cart.AddToCart(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusConflict, he.Code)

	article, err := env.Store.Article(context.Background(), articleID)
	require.NoError(t, err)
	require.Equal(t, 2, article.Stock)
}

func TestAddToCartUnknownArticle(t *testing.T) {
	env := newTestEnv(t)
	ck := env.loginCookie(t, 1)

	_, c := env.doJSONRequest(t, http.MethodPost, "/api/v1/cart", map[string]any{
		"article_id": 42,
		"quantity":   1,
		"total":      9.99,
	}, ck)
	err := env.Cart.AddToCart(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusNotFound, he.Code)
}

func TestGetCartRequiresToken(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(t, http.MethodGet, "/api/v1/cart", nil)
	err := env.Cart.GetCart(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestMakeOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	articleID := env.seedArticle(t, "Widget", 9.99, 10)
	ck := env.loginCookie(t, 1)

	_, err := env.Store.ReserveToCart(ctx, articleID, 3, 29.97, 1)
	require.NoError(t, err)
	_, err = env.Store.ReserveToCart(ctx, articleID, 2, 19.98, 1)
	require.NoError(t, err)

	rec, c := env.doJSONRequest(t, http.MethodPost, "/api/v1/cart/order", nil, ck)
	require.NoError(t, env.Cart.MakeOrder(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		OrderID uint    `json:"order_id"`
		Total   float64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotZero(t, resp.OrderID)
	require.InDelta(t, 49.95, resp.Total, 0.001)

	lines, err := env.Store.OrderLines(ctx, resp.OrderID)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	entries, err := env.Store.CartForUser(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, entries)

	// ordering consumed the cart but not additional stock
	article, err := env.Store.Article(ctx, articleID)
	require.NoError(t, err)
	require.Equal(t, 5, article.Stock)
}

func TestMakeOrderEmptyCart(t *testing.T) {
	env := newTestEnv(t)
	ck := env.loginCookie(t, 1)

	_, c := env.doJSONRequest(t, http.MethodPost, "/api/v1/cart/order", nil, ck)
	err := env.Cart.MakeOrder(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, he.Code)
}
