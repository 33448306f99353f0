package store

import (
	"context"
	"time"

	"github.com/vroomify/vroom/internal/domain"
	"github.com/vroomify/vroom/pkg/common"
)

// ReconcileProductCounters rewrites each product's like/comment counters
// from the true edge counts and reports how many rows were corrected.
// Counter bumps are transactional with their edges, but this sweep catches
// drift from older data or manual surgery.
func (s *Store) ReconcileProductCounters(ctx context.Context) (int64, error) {
	db := s.db.WithContext(ctx)

	var ids []int64
	if err := db.Model(&domain.Product{}).Pluck("id", &ids).Error; err != nil {
		return 0, err
	}

	var fixed int64
	for _, id := range ids {
		var likes, comments int64
		if err := db.Model(&domain.ProductLike{}).Where("product_id = ?", id).Count(&likes).Error; err != nil {
			return fixed, err
		}
		if err := db.Model(&domain.Comment{}).Where("product_id = ?", id).Count(&comments).Error; err != nil {
			return fixed, err
		}
		res := db.Model(&domain.Product{}).
			Where("id = ? AND (likes_count <> ? OR comments_count <> ?)", id, likes, comments).
			Updates(map[string]interface{}{
				"likes_count":    likes,
				"comments_count": comments,
			})
		if res.Error != nil {
			return fixed, res.Error
		}
		fixed += res.RowsAffected
	}
	return fixed, nil
}

// ReconcileVroomCounters does the same sweep for vroom follower counts.
func (s *Store) ReconcileVroomCounters(ctx context.Context) (int64, error) {
	db := s.db.WithContext(ctx)

	var ids []int64
	if err := db.Model(&domain.Vroom{}).Pluck("id", &ids).Error; err != nil {
		return 0, err
	}

	var fixed int64
	for _, id := range ids {
		var followers int64
		if err := db.Model(&domain.VroomFollow{}).Where("vroom_id = ?", id).Count(&followers).Error; err != nil {
			return fixed, err
		}
		res := db.Model(&domain.Vroom{}).
			Where("id = ? AND followers_count <> ?", id, followers).
			Update("followers_count", followers)
		if res.Error != nil {
			return fixed, res.Error
		}
		fixed += res.RowsAffected
	}
	return fixed, nil
}

// CreateSession records a login session.
func (s *Store) CreateSession(ctx context.Context, session *domain.Session) error {
	if session.ID == 0 {
		session.ID = common.UUIDint64()
	}
	session.CreatedAt = time.Now()
	return s.db.WithContext(ctx).Create(session).Error
}

func (s *Store) DeleteSession(ctx context.Context, token string) error {
	return s.db.WithContext(ctx).Where("token = ?", token).Delete(&domain.Session{}).Error
}

// PurgeExpiredSessions drops sessions past their expiry.
func (s *Store) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&domain.Session{})
	return res.RowsAffected, res.Error
}
