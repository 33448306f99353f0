package store

import (
	"context"
	"time"

	"github.com/vroomify/vroom/internal/domain"
	"github.com/vroomify/vroom/pkg/common"
	"gorm.io/gorm"
)

// LikeProduct inserts the like edge and bumps the product counter inside one
// transaction, so the counter can not drift from the edge count on a partial
// failure. The unique index rejects a double like.
func (s *Store) LikeProduct(ctx context.Context, userID, productID int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Create(&domain.ProductLike{
			ID:        common.UUIDint64(),
			UserID:    userID,
			ProductID: productID,
			CreatedAt: time.Now(),
		}).Error
		if err != nil {
			return err
		}
		return tx.Model(&domain.Product{}).Where("id = ?", productID).
			Update("likes_count", gorm.Expr("likes_count + 1")).Error
	})
}

// UnlikeProduct tolerates a missing edge: the counter only moves when a row
// was actually deleted.
func (s *Store) UnlikeProduct(ctx context.Context, userID, productID int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND product_id = ?", userID, productID).
			Delete(&domain.ProductLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&domain.Product{}).Where("id = ? AND likes_count > 0", productID).
			Update("likes_count", gorm.Expr("likes_count - 1")).Error
	})
}

func (s *Store) IsProductLiked(ctx context.Context, userID, productID int64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&domain.ProductLike{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	return count > 0, err
}

func (s *Store) BookmarkProduct(ctx context.Context, userID, productID int64) error {
	return s.db.WithContext(ctx).Create(&domain.ProductBookmark{
		ID:        common.UUIDint64(),
		UserID:    userID,
		ProductID: productID,
		CreatedAt: time.Now(),
	}).Error
}

func (s *Store) UnbookmarkProduct(ctx context.Context, userID, productID int64) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&domain.ProductBookmark{}).Error
}

func (s *Store) IsProductBookmarked(ctx context.Context, userID, productID int64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&domain.ProductBookmark{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	return count > 0, err
}

func (s *Store) GetLikedProducts(ctx context.Context, userID int64, limit, offset int) ([]domain.Product, error) {
	var products []domain.Product
	err := s.db.WithContext(ctx).
		Joins("JOIN product_likes ON product_likes.product_id = products.id").
		Where("product_likes.user_id = ?", userID).
		Order("product_likes.created_at DESC").
		Limit(normalizeLimit(limit)).Offset(offset).
		Find(&products).Error
	return products, err
}

func (s *Store) GetBookmarkedProducts(ctx context.Context, userID int64, limit, offset int) ([]domain.Product, error) {
	var products []domain.Product
	err := s.db.WithContext(ctx).
		Joins("JOIN product_bookmarks ON product_bookmarks.product_id = products.id").
		Where("product_bookmarks.user_id = ?", userID).
		Order("product_bookmarks.created_at DESC").
		Limit(normalizeLimit(limit)).Offset(offset).
		Find(&products).Error
	return products, err
}

// CreateComment inserts the comment and bumps the product counter. Replies
// bump the same counter: every comment counts once regardless of nesting.
func (s *Store) CreateComment(ctx context.Context, comment *domain.Comment) error {
	now := time.Now()
	if comment.ID == 0 {
		comment.ID = common.UUIDint64()
	}
	comment.CreatedAt = now
	comment.UpdatedAt = now
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Product{}).Where("id = ?", comment.ProductID).
			Update("comments_count", gorm.Expr("comments_count + 1")).Error
	})
}

func (s *Store) DeleteComment(ctx context.Context, userID, commentID int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment domain.Comment
		if err := tx.Where("id = ? AND user_id = ?", commentID, userID).First(&comment).Error; err != nil {
			return err
		}
		if err := tx.Delete(&domain.Comment{}, comment.ID).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Product{}).Where("id = ? AND comments_count > 0", comment.ProductID).
			Update("comments_count", gorm.Expr("comments_count - 1")).Error
	})
}

// CommentView is a comment joined with its author and one level of replies.
type CommentView struct {
	domain.Comment
	User    *domain.User  `json:"user,omitempty"`
	Replies []CommentView `json:"replies,omitempty"`
}

// GetProductComments returns top-level comments newest first, each carrying
// its direct replies. Deeper nesting may exist in storage but is not
// traversed.
func (s *Store) GetProductComments(ctx context.Context, productID int64, limit, offset int) ([]CommentView, error) {
	db := s.db.WithContext(ctx)

	var roots []domain.Comment
	err := db.Where("product_id = ? AND parent_id IS NULL", productID).
		Order("created_at DESC, id DESC").
		Limit(normalizeLimit(limit)).Offset(offset).
		Find(&roots).Error
	if err != nil {
		return nil, err
	}
	if len(roots) == 0 {
		return []CommentView{}, nil
	}

	rootIDs := make([]int64, 0, len(roots))
	for _, c := range roots {
		rootIDs = append(rootIDs, c.ID)
	}
	var replies []domain.Comment
	err = db.Where("parent_id IN ?", rootIDs).
		Order("created_at ASC, id ASC").
		Find(&replies).Error
	if err != nil {
		return nil, err
	}

	userIDs := make([]int64, 0, len(roots)+len(replies))
	for _, c := range roots {
		userIDs = append(userIDs, c.UserID)
	}
	for _, c := range replies {
		userIDs = append(userIDs, c.UserID)
	}
	authors, err := s.usersByID(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	byParent := make(map[int64][]CommentView)
	for _, r := range replies {
		byParent[*r.ParentID] = append(byParent[*r.ParentID], CommentView{
			Comment: r,
			User:    authors[r.UserID],
		})
	}

	views := make([]CommentView, 0, len(roots))
	for _, c := range roots {
		views = append(views, CommentView{
			Comment: c,
			User:    authors[c.UserID],
			Replies: byParent[c.ID],
		})
	}
	return views, nil
}

// usersByID loads a set of users keyed by id for read-time joins.
func (s *Store) usersByID(ctx context.Context, ids []int64) (map[int64]*domain.User, error) {
	out := make(map[int64]*domain.User)
	if len(ids) == 0 {
		return out, nil
	}
	var users []domain.User
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for i := range users {
		out[users[i].ID] = &users[i]
	}
	return out, nil
}
