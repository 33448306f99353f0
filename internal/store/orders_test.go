package store

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/vroomify/vroom/internal/domain"
)

func TestCreateOrderDenormalizesSellerAndTotal(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seller := createTestUser(t, s, "seller")
	buyer := createTestUser(t, s, "buyer")
	product := createTestProduct(t, s, seller.ID, "lamp")

	order := &domain.Order{BuyerID: buyer.ID, ProductID: product.ID, Quantity: 3}
	require.NoError(t, s.CreateOrder(ctx, order))

	require.Equal(t, seller.ID, order.SellerID)
	require.True(t, order.TotalAmount.Equal(decimal.NewFromInt(30)))
	require.Equal(t, domain.OrderStatusPending, order.Status)
	require.Equal(t, "cash_on_delivery", order.PaymentMethod)
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	s := newTestStore(t)
	buyer := createTestUser(t, s, "buyer")

	order := &domain.Order{BuyerID: buyer.ID, ProductID: 9999, Quantity: 1}
	require.Error(t, s.CreateOrder(context.Background(), order))
}

func TestUpdateOrderStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seller := createTestUser(t, s, "seller")
	buyer := createTestUser(t, s, "buyer")
	product := createTestProduct(t, s, seller.ID, "lamp")

	order := &domain.Order{BuyerID: buyer.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, s.CreateOrder(ctx, order))

	// any member of the status set is accepted, in any sequence
	require.NoError(t, s.UpdateOrderStatus(ctx, order.ID, domain.OrderStatusDelivered))
	require.NoError(t, s.UpdateOrderStatus(ctx, order.ID, domain.OrderStatusConfirmed))

	loaded, err := s.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusConfirmed, loaded.Status)

	require.Error(t, s.UpdateOrderStatus(ctx, order.ID, "refunded"))
}

func TestGetUserAndSellerOrders(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seller := createTestUser(t, s, "seller")
	buyer := createTestUser(t, s, "buyer")
	product := createTestProduct(t, s, seller.ID, "lamp")

	for i := 0; i < 3; i++ {
		order := &domain.Order{BuyerID: buyer.ID, ProductID: product.ID, Quantity: 1}
		require.NoError(t, s.CreateOrder(ctx, order))
	}

	purchases, err := s.GetUserOrders(ctx, buyer.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, purchases, 3)

	sales, err := s.GetSellerOrders(ctx, seller.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, sales, 3)

	none, err := s.GetUserOrders(ctx, seller.ID, 10, 0)
	require.NoError(t, err)
	require.Empty(t, none)
}
