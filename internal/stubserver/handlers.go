package stubserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/thedeposit/storefront-client/internal/core/domain"
)

type handlers struct {
	store  *Store
	secret string
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type addItemRequest struct {
	PresentationID int64           `json:"presentation_id" validate:"required,gt=0"`
	Quantity       decimal.Decimal `json:"quantity"`
	Note           string          `json:"note"`
}

type updateItemRequest struct {
	Quantity *decimal.Decimal `json:"quantity"`
	Note     *string          `json:"note"`
}

type cartResponse struct {
	Message string       `json:"message"`
	Cart    *domain.Cart `json:"cart"`
}

type confirmRequest struct {
	FulfillmentLocationID int64  `json:"fulfillment_location_id" validate:"required,gt=0"`
	Notes                 string `json:"notes"`
}

type confirmResponse struct {
	Message     string          `json:"message"`
	OrderID     int64           `json:"order_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

func (h *handlers) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.store.CreateUser(req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}
	token, err := issueToken(h.secret, user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, authResponse{Token: token, User: user})
}

func (h *handlers) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.store.Authenticate(req.Email, req.Password)
	if err != nil {
		return err
	}
	token, err := issueToken(h.secret, user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

func (h *handlers) Profile(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	user, err := h.store.User(userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]*domain.User{"user": user})
}

func (h *handlers) GetCart(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.store.Cart(userID))
}

func (h *handlers) AddItem(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cart, err := h.store.AddItem(userID, req.PresentationID, req.Quantity, req.Note)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, cartResponse{Message: "item added", Cart: cart})
}

func (h *handlers) UpdateItem(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	itemID, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	cart, err := h.store.UpdateItem(userID, itemID, req.Quantity, req.Note)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cartResponse{Message: "item updated", Cart: cart})
}

func (h *handlers) RemoveItem(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	itemID, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.store.RemoveItem(userID, itemID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "item removed"})
}

func (h *handlers) ClearCart(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	h.store.ClearCart(userID)
	return c.JSON(http.StatusOK, map[string]string{"message": "cart cleared"})
}

func (h *handlers) ConfirmCart(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req confirmRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	orderID, total, err := h.store.ConfirmCart(userID, req.FulfillmentLocationID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, confirmResponse{
		Message:     "cart confirmed",
		OrderID:     orderID,
		TotalAmount: total,
	})
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid item id")
	}
	return id, nil
}
