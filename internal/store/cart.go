package store

import (
	"context"
	"errors"
	"time"

	"github.com/vroomify/vroom/internal/domain"
	"github.com/vroomify/vroom/pkg/common"
	"gorm.io/gorm"
)

// AddToCart merges on duplicate: if a row for (user, product) already
// exists its quantity is incremented by the requested amount, otherwise a
// new row is inserted. Returns the resulting row either way.
func (s *Store) AddToCart(ctx context.Context, userID, productID int64, quantity int) (*domain.CartItem, error) {
	if quantity <= 0 {
		quantity = 1
	}
	var item domain.CartItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			now := time.Now()
			item = domain.CartItem{
				ID:        common.UUIDint64(),
				UserID:    userID,
				ProductID: productID,
				Quantity:  quantity,
				CreatedAt: now,
				UpdatedAt: now,
			}
			return tx.Create(&item).Error
		case err != nil:
			return err
		}

		if err := tx.Model(&domain.CartItem{}).Where("id = ?", item.ID).Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", quantity),
			"updated_at": time.Now(),
		}).Error; err != nil {
			return err
		}
		return tx.First(&item, item.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// CartEntry is a cart row joined with its product for display.
type CartEntry struct {
	domain.CartItem
	Product *domain.Product `json:"product,omitempty"`
}

func (s *Store) GetCartItems(ctx context.Context, userID int64) ([]CartEntry, error) {
	var items []domain.CartItem
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []CartEntry{}, nil
	}

	productIDs := make([]int64, 0, len(items))
	for _, it := range items {
		productIDs = append(productIDs, it.ProductID)
	}
	var products []domain.Product
	if err := s.db.WithContext(ctx).Where("id IN ?", productIDs).Find(&products).Error; err != nil {
		return nil, err
	}
	byID := make(map[int64]*domain.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	entries := make([]CartEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, CartEntry{CartItem: it, Product: byID[it.ProductID]})
	}
	return entries, nil
}

// UpdateCartItem sets an absolute quantity; zero or less removes the row.
func (s *Store) UpdateCartItem(ctx context.Context, userID, itemID int64, quantity int) error {
	if quantity <= 0 {
		return s.db.WithContext(ctx).
			Where("id = ? AND user_id = ?", itemID, userID).
			Delete(&domain.CartItem{}).Error
	}
	return s.db.WithContext(ctx).Model(&domain.CartItem{}).
		Where("id = ? AND user_id = ?", itemID, userID).
		Updates(map[string]interface{}{
			"quantity":   quantity,
			"updated_at": time.Now(),
		}).Error
}

func (s *Store) RemoveFromCart(ctx context.Context, userID, itemID int64) error {
	return s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&domain.CartItem{}).Error
}

func (s *Store) ClearCart(ctx context.Context, userID int64) error {
	return s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&domain.CartItem{}).Error
}
