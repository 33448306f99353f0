package store

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vroomify/vroom/internal/domain"
	"github.com/vroomify/vroom/pkg/common"
)

// CreateOrder persists a single-product order. The seller is denormalized
// from the product owner and the total is derived from the current price
// when the caller did not supply one.
func (s *Store) CreateOrder(ctx context.Context, order *domain.Order) error {
	product, err := s.GetProduct(ctx, order.ProductID)
	if err != nil {
		return err
	}
	if order.Quantity <= 0 {
		order.Quantity = 1
	}
	now := time.Now()
	if order.ID == 0 {
		order.ID = common.UUIDint64()
	}
	order.SellerID = product.UserID
	if order.TotalAmount.IsZero() {
		order.TotalAmount = product.Price.Mul(decimal.NewFromInt(int64(order.Quantity)))
	}
	if order.Status == "" {
		order.Status = domain.OrderStatusPending
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = "cash_on_delivery"
	}
	order.CreatedAt = now
	order.UpdatedAt = now
	return s.db.WithContext(ctx).Create(order).Error
}

func (s *Store) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	var order domain.Order
	err := s.db.WithContext(ctx).First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetUserOrders returns orders placed by userID as buyer, newest first.
func (s *Store) GetUserOrders(ctx context.Context, userID int64, limit, offset int) ([]domain.Order, error) {
	var orders []domain.Order
	err := s.db.WithContext(ctx).
		Where("buyer_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(normalizeLimit(limit)).Offset(offset).
		Find(&orders).Error
	return orders, err
}

// GetSellerOrders returns orders received by userID as seller, newest first.
func (s *Store) GetSellerOrders(ctx context.Context, userID int64, limit, offset int) ([]domain.Order, error) {
	var orders []domain.Order
	err := s.db.WithContext(ctx).
		Where("seller_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(normalizeLimit(limit)).Offset(offset).
		Find(&orders).Error
	return orders, err
}

// UpdateOrderStatus accepts any member of the status set; transitions
// between statuses are deliberately unrestricted.
func (s *Store) UpdateOrderStatus(ctx context.Context, id int64, status string) error {
	if !domain.ValidOrderStatus(status) {
		return fmt.Errorf("unknown order status %q", status)
	}
	return s.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}
