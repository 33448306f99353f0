package store

import (
	"context"
	"sort"
	"strings"

	"github.com/vroomify/vroom/internal/domain"
)

// HashtagCount is one entry of the trending hashtag table.
type HashtagCount struct {
	Tag   string `json:"tag"`
	Count int64  `json:"count"`
}

// GetTrendingHashtags counts hashtag frequency over every available
// product in memory and returns the top entries. Recomputed from scratch on
// every call; no incremental maintenance, no cache.
func (s *Store) GetTrendingHashtags(ctx context.Context, limit int) ([]HashtagCount, error) {
	var products []domain.Product
	err := s.db.WithContext(ctx).
		Select("hashtags").
		Where("available = ?", true).
		Find(&products).Error
	if err != nil {
		return nil, err
	}

	freq := make(map[string]int64)
	for _, p := range products {
		for _, tag := range p.Hashtags {
			tag = strings.ToLower(strings.TrimSpace(tag))
			if tag != "" {
				freq[tag]++
			}
		}
	}

	counts := make([]HashtagCount, 0, len(freq))
	for tag, n := range freq {
		counts = append(counts, HashtagCount{Tag: tag, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Tag < counts[j].Tag
	})

	max := normalizeLimit(limit)
	if len(counts) > max {
		counts = counts[:max]
	}
	return counts, nil
}

// GetRecommendedProducts accumulates the hashtags of products the user has
// liked or bookmarked and returns available products with an intersecting
// tag set, most liked first. A user with no interactions gets exactly the
// trending list for the same limit. Set intersection is the whole model;
// there is no weighting.
func (s *Store) GetRecommendedProducts(ctx context.Context, userID int64, limit int) ([]domain.Product, error) {
	liked, err := s.GetLikedProducts(ctx, userID, MaxPageSize, 0)
	if err != nil {
		return nil, err
	}
	bookmarked, err := s.GetBookmarkedProducts(ctx, userID, MaxPageSize, 0)
	if err != nil {
		return nil, err
	}

	var tags []string
	for _, p := range liked {
		tags = append(tags, p.Hashtags...)
	}
	for _, p := range bookmarked {
		tags = append(tags, p.Hashtags...)
	}
	want := hashtagSet(tags)
	if len(want) == 0 {
		return s.GetTrendingProducts(ctx, limit)
	}

	var candidates []domain.Product
	err = s.db.WithContext(ctx).
		Where("available = ?", true).
		Order("likes_count DESC, views_count DESC, id DESC").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	max := normalizeLimit(limit)
	products := make([]domain.Product, 0, max)
	for _, p := range candidates {
		if !intersects(want, p.Hashtags) {
			continue
		}
		products = append(products, p)
		if len(products) >= max {
			break
		}
	}
	return products, nil
}
