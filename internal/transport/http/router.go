package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/harena/myshop/internal/handlers"
)

type Deps struct {
	AuthHandler    *handlers.AuthHandler
	CatalogHandler *handlers.CatalogHandler
	CartHandler    *handlers.CartHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/login", d.AuthHandler.Login)

	articles := v1.Group("/articles")
	articles.POST("", d.CatalogHandler.CreateArticle)
	articles.GET("", d.CatalogHandler.GetArticles)
	articles.GET("/:id", d.CatalogHandler.GetArticle)

	cart := v1.Group("/cart")
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.POST("/order", d.CartHandler.MakeOrder)

	v1.GET("/orders", d.CartHandler.GetOrders)
}
