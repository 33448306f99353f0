package store

import (
	"context"
	"time"

	"github.com/vroomify/vroom/internal/domain"
	"github.com/vroomify/vroom/pkg/common"
	"gorm.io/gorm"
)

func (s *Store) CreateVroom(ctx context.Context, vroom *domain.Vroom) error {
	now := time.Now()
	if vroom.ID == 0 {
		vroom.ID = common.UUIDint64()
	}
	vroom.FollowersCount = 0
	vroom.ViewsCount = 0
	vroom.CreatedAt = now
	vroom.UpdatedAt = now
	return s.db.WithContext(ctx).Create(vroom).Error
}

func (s *Store) GetVroom(ctx context.Context, id int64) (*domain.Vroom, error) {
	var vroom domain.Vroom
	err := s.db.WithContext(ctx).First(&vroom, id).Error
	if err != nil {
		return nil, err
	}
	return &vroom, nil
}

// GetUserVroom returns the storefront owned by userID.
func (s *Store) GetUserVroom(ctx context.Context, userID int64) (*domain.Vroom, error) {
	var vroom domain.Vroom
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&vroom).Error
	if err != nil {
		return nil, err
	}
	return &vroom, nil
}

func (s *Store) GetVrooms(ctx context.Context, limit, offset int) ([]domain.Vroom, error) {
	var vrooms []domain.Vroom
	err := s.db.WithContext(ctx).
		Where("active = ?", true).
		Order("created_at DESC, id DESC").
		Limit(normalizeLimit(limit)).Offset(offset).
		Find(&vrooms).Error
	return vrooms, err
}

func (s *Store) UpdateVroom(ctx context.Context, id int64, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	return s.db.WithContext(ctx).Model(&domain.Vroom{}).Where("id = ?", id).Updates(updates).Error
}

// GetVroomProducts derives the storefront's listing at read time: all
// available products owned by the vroom's owner. There is no stored
// vroom-product relation.
func (s *Store) GetVroomProducts(ctx context.Context, vroomID int64, limit, offset int) ([]domain.Product, error) {
	vroom, err := s.GetVroom(ctx, vroomID)
	if err != nil {
		return nil, err
	}
	var products []domain.Product
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND available = ?", vroom.UserID, true).
		Order("created_at DESC, id DESC").
		Limit(normalizeLimit(limit)).Offset(offset).
		Find(&products).Error
	return products, err
}

// FollowVroom inserts the edge and bumps the follower counter in one
// transaction.
func (s *Store) FollowVroom(ctx context.Context, userID, vroomID int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Create(&domain.VroomFollow{
			ID:        common.UUIDint64(),
			UserID:    userID,
			VroomID:   vroomID,
			CreatedAt: time.Now(),
		}).Error
		if err != nil {
			return err
		}
		return tx.Model(&domain.Vroom{}).Where("id = ?", vroomID).
			Update("followers_count", gorm.Expr("followers_count + 1")).Error
	})
}

func (s *Store) UnfollowVroom(ctx context.Context, userID, vroomID int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND vroom_id = ?", userID, vroomID).
			Delete(&domain.VroomFollow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&domain.Vroom{}).Where("id = ? AND followers_count > 0", vroomID).
			Update("followers_count", gorm.Expr("followers_count - 1")).Error
	})
}

func (s *Store) IsFollowingVroom(ctx context.Context, userID, vroomID int64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&domain.VroomFollow{}).
		Where("user_id = ? AND vroom_id = ?", userID, vroomID).
		Count(&count).Error
	return count > 0, err
}

func (s *Store) GetFollowedVrooms(ctx context.Context, userID int64, limit, offset int) ([]domain.Vroom, error) {
	var vrooms []domain.Vroom
	err := s.db.WithContext(ctx).
		Joins("JOIN vroom_follows ON vroom_follows.vroom_id = vrooms.id").
		Where("vroom_follows.user_id = ?", userID).
		Order("vroom_follows.created_at DESC").
		Limit(normalizeLimit(limit)).Offset(offset).
		Find(&vrooms).Error
	return vrooms, err
}

func (s *Store) IncrementVroomViews(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Model(&domain.Vroom{}).
		Where("id = ?", id).
		Update("views_count", gorm.Expr("views_count + 1")).Error
}
