package webapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/vroomify/vroom/internal/domain"
	"gorm.io/gorm"
)

type orderPayload struct {
	ProductID       string                 `json:"product_id" validate:"required"`
	Quantity        int                    `json:"quantity"`
	PaymentMethod   string                 `json:"payment_method"`
	ShippingAddress domain.ShippingAddress `json:"shipping_address"`
}

type orderStatusPayload struct {
	Status string `json:"status" validate:"required"`
}

func (s *Server) registerOrderRoutes(g *echo.Group) {
	g.POST("/orders", s.createOrder)
	g.GET("/orders", s.listMyOrders)
	g.GET("/orders/sales", s.listMySales)
	g.GET("/orders/:id", s.getOrder)
	g.PUT("/orders/:id/status", s.updateOrderStatus)
}

func (s *Server) createOrder(c echo.Context) error {
	var payload orderPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse order", err.Error())
	}
	productID, err := strconv.ParseInt(payload.ProductID, 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid product ID", nil)
	}
	if strings.TrimSpace(payload.ShippingAddress.Street) == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Shipping address is required", nil)
	}

	order := domain.Order{
		BuyerID:         currentUserID(c),
		ProductID:       productID,
		Quantity:        payload.Quantity,
		PaymentMethod:   strings.TrimSpace(payload.PaymentMethod),
		ShippingAddress: payload.ShippingAddress,
	}
	err = s.store.CreateOrder(c.Request().Context(), &order)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create order", err.Error())
	}
	return created(c, order)
}

func (s *Server) listMyOrders(c echo.Context) error {
	page, pageSize := parsePagination(c)
	orders, err := s.store.GetUserOrders(c.Request().Context(), currentUserID(c), pageSize, (page-1)*pageSize)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", err.Error())
	}
	return ok(c, orders)
}

func (s *Server) listMySales(c echo.Context) error {
	page, pageSize := parsePagination(c)
	orders, err := s.store.GetSellerOrders(c.Request().Context(), currentUserID(c), pageSize, (page-1)*pageSize)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query sales", err.Error())
	}
	return ok(c, orders)
}

func (s *Server) getOrder(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	order, err := s.store.GetOrder(c.Request().Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Order not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query order", err.Error())
	}
	uid := currentUserID(c)
	if order.BuyerID != uid && order.SellerID != uid {
		return fail(c, http.StatusForbidden, "FORBIDDEN", "Not a party to this order", nil)
	}
	return ok(c, order)
}

// updateOrderStatus lets either party set any known status; the status graph
// is not enforced beyond membership in the accepted set.
func (s *Server) updateOrderStatus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	var payload orderStatusPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse status", nil)
	}
	status := strings.ToLower(strings.TrimSpace(payload.Status))
	if !domain.ValidOrderStatus(status) {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unknown order status", nil)
	}

	ctx := c.Request().Context()
	order, err := s.store.GetOrder(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Order not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query order", err.Error())
	}
	uid := currentUserID(c)
	if order.BuyerID != uid && order.SellerID != uid {
		return fail(c, http.StatusForbidden, "FORBIDDEN", "Not a party to this order", nil)
	}

	if err := s.store.UpdateOrderStatus(ctx, id, status); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update order status", err.Error())
	}
	updated, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to reload order", err.Error())
	}
	return ok(c, updated)
}
