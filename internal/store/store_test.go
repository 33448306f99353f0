package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/vroomify/vroom/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestStore opens a fresh in-memory sqlite database, migrated and
// destroyed with the test.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Tables...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewStore(db)
}

func createTestUser(t *testing.T, s *Store, username string) *domain.User {
	t.Helper()
	user := &domain.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
	}
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user
}

func createTestProduct(t *testing.T, s *Store, ownerID int64, title string, hashtags ...string) *domain.Product {
	t.Helper()
	product := &domain.Product{
		UserID:    ownerID,
		Title:     title,
		Price:     decimal.NewFromInt(10),
		Hashtags:  hashtags,
		Available: true,
	}
	require.NoError(t, s.CreateProduct(context.Background(), product))
	return product
}

func TestCreateUserDefaults(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "alice")

	require.NotZero(t, user.ID)
	require.Equal(t, "enabled", user.Status)
	require.False(t, user.CreatedAt.IsZero())

	loaded, err := s.GetUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, user.ID, loaded.ID)
}

func TestGetUserNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetUser(context.Background(), 12345)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestNormalizeLimit(t *testing.T) {
	require.Equal(t, DefaultPageSize, normalizeLimit(0))
	require.Equal(t, DefaultPageSize, normalizeLimit(-5))
	require.Equal(t, 7, normalizeLimit(7))
	require.Equal(t, MaxPageSize, normalizeLimit(10000))
}

func TestHashtagSetIntersects(t *testing.T) {
	set := hashtagSet([]string{"Vintage", " shoes ", "", "vintage"})
	require.Len(t, set, 2)
	require.True(t, intersects(set, []string{"SHOES"}))
	require.False(t, intersects(set, []string{"hats"}))
}

func seedProducts(t *testing.T, s *Store, owner int64, n int) []*domain.Product {
	t.Helper()
	out := make([]*domain.Product, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, createTestProduct(t, s, owner, fmt.Sprintf("item-%02d", i)))
	}
	return out
}
