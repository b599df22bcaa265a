// Package stubserver is an in-process rendition of the storefront backend
// used by integration tests. It implements the remote contract the client
// depends on — including the asymmetry that remove and clear acknowledge
// without returning a snapshot — and owns all price arithmetic, so tests
// can verify the client never recomputes money locally.
package stubserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// Server bundles the echo instance with its backing store. Serve it with
// httptest.NewServer(srv.Echo) in tests.
type Server struct {
	Echo  *echo.Echo
	Store *Store
}

func New(jwtSecret string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Validator = newValidator()
	e.HTTPErrorHandler = httpErrorHandler

	store := NewStore()
	h := &handlers{store: store, secret: jwtSecret}
	auth := authMiddleware(jwtSecret)

	e.POST("/api/auth/register", h.Register)
	e.POST("/api/auth/login", h.Login)
	e.GET("/api/auth/profile", h.Profile, auth)

	e.GET("/api/cart", h.GetCart, auth)
	e.POST("/api/cart/items", h.AddItem, auth)
	e.PATCH("/api/cart/items/:id", h.UpdateItem, auth)
	e.DELETE("/api/cart/items/:id", h.RemoveItem, auth)
	e.DELETE("/api/cart/items", h.ClearCart, auth)
	e.POST("/api/cart/confirm", h.ConfirmCart, auth)

	return &Server{Echo: e, Store: store}
}

// httpErrorHandler renders every error in the canonical envelope:
// {"error": "<message>"}.
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code, msg := resolveError(err)
	_ = c.JSON(code, map[string]string{"error": msg})
}

func resolveError(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, errInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, errUserExists):
		return http.StatusConflict, err.Error()
	case errors.Is(err, errUserNotFound), errors.Is(err, errPresentationGone), errors.Is(err, errItemNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, errInvalidQuantity), errors.Is(err, errUnknownLocation), errors.Is(err, errEmptyCart):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, errOutOfStock):
		return http.StatusConflict, err.Error()
	}

	return http.StatusInternalServerError, "internal server error"
}
