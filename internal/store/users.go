package store

import (
	"context"
	"time"

	"github.com/vroomify/vroom/internal/domain"
	"github.com/vroomify/vroom/pkg/common"
	"gorm.io/gorm"
)

func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	now := time.Now()
	if user.ID == 0 {
		user.ID = common.UUIDint64()
	}
	if user.Status == "" {
		user.Status = common.ENABLED
	}
	user.CreatedAt = now
	user.UpdatedAt = now
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *Store) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies profile field updates; counters and credentials are
// managed by their own operations.
func (s *Store) UpdateUser(ctx context.Context, id int64, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	return s.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(updates).Error
}

// DeleteUser removes the user and everything hanging off it: owned products
// and vrooms, edges in both directions, comments, cart rows, orders as buyer
// or seller, messages sent or received, and sessions. Runs as one
// transaction so a partial cascade never survives.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var productIDs []int64
		if err := tx.Model(&domain.Product{}).Where("user_id = ?", id).Pluck("id", &productIDs).Error; err != nil {
			return err
		}

		if len(productIDs) > 0 {
			if err := tx.Where("product_id IN ?", productIDs).Delete(&domain.ProductLike{}).Error; err != nil {
				return err
			}
			if err := tx.Where("product_id IN ?", productIDs).Delete(&domain.ProductBookmark{}).Error; err != nil {
				return err
			}
			if err := tx.Where("product_id IN ?", productIDs).Delete(&domain.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("product_id IN ?", productIDs).Delete(&domain.CartItem{}).Error; err != nil {
				return err
			}
		}

		var vroomIDs []int64
		if err := tx.Model(&domain.Vroom{}).Where("user_id = ?", id).Pluck("id", &vroomIDs).Error; err != nil {
			return err
		}
		if len(vroomIDs) > 0 {
			if err := tx.Where("vroom_id IN ?", vroomIDs).Delete(&domain.VroomFollow{}).Error; err != nil {
				return err
			}
		}

		steps := []*gorm.DB{
			tx.Where("user_id = ?", id).Delete(&domain.ProductLike{}),
			tx.Where("user_id = ?", id).Delete(&domain.ProductBookmark{}),
			tx.Where("user_id = ?", id).Delete(&domain.Comment{}),
			tx.Where("user_id = ?", id).Delete(&domain.CartItem{}),
			tx.Where("user_id = ?", id).Delete(&domain.VroomFollow{}),
			tx.Where("follower_id = ? OR following_id = ?", id, id).Delete(&domain.Follow{}),
			tx.Where("buyer_id = ? OR seller_id = ?", id, id).Delete(&domain.Order{}),
			tx.Where("sender_id = ? OR receiver_id = ?", id, id).Delete(&domain.Message{}),
			tx.Where("user_id = ?", id).Delete(&domain.Session{}),
			tx.Where("user_id = ?", id).Delete(&domain.Vroom{}),
			tx.Where("user_id = ?", id).Delete(&domain.Product{}),
			tx.Where("id = ?", id).Delete(&domain.User{}),
		}
		for _, step := range steps {
			if step.Error != nil {
				return step.Error
			}
		}
		return nil
	})
}

// FollowUser inserts the follower -> following edge and recomputes both
// parties' counters from live counts. The unique index rejects a duplicate
// edge; callers are expected to check IsFollowingUser first.
func (s *Store) FollowUser(ctx context.Context, followerID, followingID int64) error {
	err := s.db.WithContext(ctx).Create(&domain.Follow{
		ID:          common.UUIDint64(),
		FollowerID:  followerID,
		FollowingID: followingID,
		CreatedAt:   time.Now(),
	}).Error
	if err != nil {
		return err
	}
	return s.refreshFollowCounts(ctx, followerID, followingID)
}

func (s *Store) UnfollowUser(ctx context.Context, followerID, followingID int64) error {
	err := s.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&domain.Follow{}).Error
	if err != nil {
		return err
	}
	return s.refreshFollowCounts(ctx, followerID, followingID)
}

func (s *Store) IsFollowingUser(ctx context.Context, followerID, followingID int64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&domain.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

// refreshFollowCounts rewrites both users' follower/following counters from
// count queries. Costlier than a bump but immune to drift.
func (s *Store) refreshFollowCounts(ctx context.Context, userIDs ...int64) error {
	db := s.db.WithContext(ctx)
	for _, uid := range userIDs {
		var followers, following int64
		if err := db.Model(&domain.Follow{}).Where("following_id = ?", uid).Count(&followers).Error; err != nil {
			return err
		}
		if err := db.Model(&domain.Follow{}).Where("follower_id = ?", uid).Count(&following).Error; err != nil {
			return err
		}
		err := db.Model(&domain.User{}).Where("id = ?", uid).Updates(map[string]interface{}{
			"followers_count": followers,
			"following_count": following,
		}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) GetFollowers(ctx context.Context, userID int64, limit, offset int) ([]domain.User, error) {
	var users []domain.User
	err := s.db.WithContext(ctx).
		Joins("JOIN user_follows ON user_follows.follower_id = users.id").
		Where("user_follows.following_id = ?", userID).
		Order("user_follows.created_at DESC").
		Limit(normalizeLimit(limit)).Offset(offset).
		Find(&users).Error
	return users, err
}

func (s *Store) GetFollowing(ctx context.Context, userID int64, limit, offset int) ([]domain.User, error) {
	var users []domain.User
	err := s.db.WithContext(ctx).
		Joins("JOIN user_follows ON user_follows.following_id = users.id").
		Where("user_follows.follower_id = ?", userID).
		Order("user_follows.created_at DESC").
		Limit(normalizeLimit(limit)).Offset(offset).
		Find(&users).Error
	return users, err
}

// SearchUsers matches username or realname case-insensitively.
func (s *Store) SearchUsers(ctx context.Context, query string, limit, offset int) ([]domain.User, error) {
	var users []domain.User
	db := s.db.WithContext(ctx).Model(&domain.User{})
	if query != "" {
		db = icontains(db, query, "username", "realname")
	}
	err := db.Order("created_at DESC, id DESC").
		Limit(normalizeLimit(limit)).Offset(offset).
		Find(&users).Error
	return users, err
}
