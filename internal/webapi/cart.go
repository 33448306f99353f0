package webapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type cartPayload struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
}

type cartUpdatePayload struct {
	Quantity int `json:"quantity"`
}

func (s *Server) registerCartRoutes(g *echo.Group) {
	g.GET("/cart", s.getCart)
	g.POST("/cart", s.addToCart)
	g.PUT("/cart/:id", s.updateCartItem)
	g.DELETE("/cart/:id", s.removeFromCart)
	g.DELETE("/cart", s.clearCart)
}

func (s *Server) getCart(c echo.Context) error {
	entries, err := s.store.GetCartItems(c.Request().Context(), currentUserID(c))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query cart", err.Error())
	}
	return ok(c, entries)
}

func (s *Server) addToCart(c echo.Context) error {
	var payload cartPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart item", nil)
	}
	productID, err := strconv.ParseInt(payload.ProductID, 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid product ID", nil)
	}
	ctx := c.Request().Context()
	if _, err := s.store.GetProduct(ctx, productID); errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}

	item, err := s.store.AddToCart(ctx, currentUserID(c), productID, payload.Quantity)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to add to cart", err.Error())
	}
	return created(c, item)
}

func (s *Server) updateCartItem(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid cart item ID", nil)
	}
	var payload cartUpdatePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart update", nil)
	}
	if err := s.store.UpdateCartItem(c.Request().Context(), currentUserID(c), id, payload.Quantity); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update cart item", err.Error())
	}
	return noContent(c)
}

func (s *Server) removeFromCart(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid cart item ID", nil)
	}
	if err := s.store.RemoveFromCart(c.Request().Context(), currentUserID(c), id); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to remove cart item", err.Error())
	}
	return noContent(c)
}

func (s *Server) clearCart(c echo.Context) error {
	if err := s.store.ClearCart(c.Request().Context(), currentUserID(c)); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to clear cart", err.Error())
	}
	return noContent(c)
}
