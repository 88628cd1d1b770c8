package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/harena/myshop/internal/events"
	"github.com/harena/myshop/internal/store"
)

type AuthHandler struct {
	Store     *store.Store
	JWTSecret []byte
	Producer  *events.Producer
}

// Register creates a user with the credentials as given. The store keeps
// passwords as opaque text and allows duplicate emails, so this wrapper
// adds nothing on top.
func (h *AuthHandler) Register(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.Store.RegisterUser(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	publish(c, h.Producer, fmt.Sprint(id), map[string]any{
		"type":   "user_registered",
		"userID": id,
		"email":  req.Email,
	})

	return c.JSON(http.StatusOK, echo.Map{"id": id, "email": req.Email})
}

// Login authenticates by exact credential match and sets the access
// cookie the cart routes read.
func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.Store.Authenticate(c.Request().Context(), req.Email, req.Password)
	if errors.Is(err, store.ErrCredentialMismatch) {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	accessExp := time.Now().Add(15 * time.Minute)
	token, err := SignAccessToken(id, h.JWTSecret)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not create token")
	}
	c.SetCookie(CreateCookie("accessToken", token, "/", accessExp))

	publish(c, h.Producer, fmt.Sprint(id), map[string]any{
		"type":   "user_logged_in",
		"userID": id,
	})

	return c.JSON(http.StatusOK, echo.Map{"user_id": id, "access_token": token})
}
