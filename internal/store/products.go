package store

import (
	"context"
	"time"

	"github.com/vroomify/vroom/internal/domain"
	"github.com/vroomify/vroom/pkg/common"
	"gorm.io/gorm"
)

func (s *Store) CreateProduct(ctx context.Context, product *domain.Product) error {
	now := time.Now()
	if product.ID == 0 {
		product.ID = common.UUIDint64()
	}
	product.LikesCount = 0
	product.SharesCount = 0
	product.CommentsCount = 0
	product.ViewsCount = 0
	product.CreatedAt = now
	product.UpdatedAt = now
	return s.db.WithContext(ctx).Create(product).Error
}

func (s *Store) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	err := s.db.WithContext(ctx).First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProducts returns available products newest first. Secondary order on id
// keeps page boundaries stable when creation timestamps collide.
func (s *Store) GetProducts(ctx context.Context, limit, offset int) ([]domain.Product, error) {
	var products []domain.Product
	err := s.db.WithContext(ctx).
		Where("available = ?", true).
		Order("created_at DESC, id DESC").
		Limit(normalizeLimit(limit)).Offset(offset).
		Find(&products).Error
	return products, err
}

func (s *Store) GetUserProducts(ctx context.Context, userID int64, limit, offset int) ([]domain.Product, error) {
	var products []domain.Product
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(normalizeLimit(limit)).Offset(offset).
		Find(&products).Error
	return products, err
}

func (s *Store) UpdateProduct(ctx context.Context, id int64, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	return s.db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", id).Updates(updates).Error
}

// DeleteProduct removes the product together with its likes, bookmarks,
// comments and cart rows so no dangling edges remain.
func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		steps := []*gorm.DB{
			tx.Where("product_id = ?", id).Delete(&domain.ProductLike{}),
			tx.Where("product_id = ?", id).Delete(&domain.ProductBookmark{}),
			tx.Where("product_id = ?", id).Delete(&domain.Comment{}),
			tx.Where("product_id = ?", id).Delete(&domain.CartItem{}),
			tx.Where("id = ?", id).Delete(&domain.Product{}),
		}
		for _, step := range steps {
			if step.Error != nil {
				return step.Error
			}
		}
		return nil
	})
}

// SearchProducts matches query against title and description
// case-insensitively, then narrows to products whose hashtag set intersects
// hashtags when the list is non-empty. No relevance ranking: newest first.
func (s *Store) SearchProducts(ctx context.Context, query string, hashtags []string, limit, offset int) ([]domain.Product, error) {
	db := s.db.WithContext(ctx).Model(&domain.Product{}).Where("available = ?", true)
	if query != "" {
		db = icontains(db, query, "title", "description")
	}

	var products []domain.Product
	if len(hashtags) == 0 {
		err := db.Order("created_at DESC, id DESC").
			Limit(normalizeLimit(limit)).Offset(offset).
			Find(&products).Error
		return products, err
	}

	// Hashtags live in a serialized JSON column, so the tag intersection is
	// applied in memory after the text match.
	var candidates []domain.Product
	if err := db.Order("created_at DESC, id DESC").Find(&candidates).Error; err != nil {
		return nil, err
	}
	want := hashtagSet(hashtags)
	max := normalizeLimit(limit)
	skipped := 0
	for _, p := range candidates {
		if !intersects(want, p.Hashtags) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		products = append(products, p)
		if len(products) >= max {
			break
		}
	}
	return products, nil
}

// GetTrendingProducts is a pure sort by likes then views, no decay.
func (s *Store) GetTrendingProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	var products []domain.Product
	err := s.db.WithContext(ctx).
		Where("available = ?", true).
		Order("likes_count DESC, views_count DESC, id DESC").
		Limit(normalizeLimit(limit)).
		Find(&products).Error
	return products, err
}

func (s *Store) IncrementProductViews(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Model(&domain.Product{}).
		Where("id = ?", id).
		Update("views_count", gorm.Expr("views_count + 1")).Error
}

func (s *Store) IncrementProductShares(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Model(&domain.Product{}).
		Where("id = ?", id).
		Update("shares_count", gorm.Expr("shares_count + 1")).Error
}
