package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vroomify/vroom/internal/domain"
)

func TestGetProductsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice")
	seeded := seedProducts(t, s, alice.ID, 5)

	products, err := s.GetProducts(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, products, 5)
	require.Equal(t, seeded[4].ID, products[0].ID)
	require.Equal(t, seeded[0].ID, products[4].ID)
}

func TestGetProductsSkipsUnavailable(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice")
	visible := createTestProduct(t, s, alice.ID, "lamp")
	hidden := createTestProduct(t, s, alice.ID, "rug")
	require.NoError(t, s.UpdateProduct(ctx, hidden.ID, map[string]interface{}{"available": false}))

	products, err := s.GetProducts(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, visible.ID, products[0].ID)
}

func TestSearchProductsQueryAndHashtags(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice")
	match := createTestProduct(t, s, alice.ID, "Vintage Shoes", "vintage", "shoes")
	createTestProduct(t, s, alice.ID, "Running Shoes", "sport")
	createTestProduct(t, s, alice.ID, "Vintage Lamp", "vintage")

	products, err := s.SearchProducts(ctx, "shoe", []string{"vintage"}, 10, 0)
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, match.ID, products[0].ID)
}

func TestSearchProductsCaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice")
	createTestProduct(t, s, alice.ID, "Vintage Shoes")

	products, err := s.SearchProducts(ctx, "SHOES", nil, 10, 0)
	require.NoError(t, err)
	require.Len(t, products, 1)
}

func TestGetTrendingProductsOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice")
	low := createTestProduct(t, s, alice.ID, "low")
	high := createTestProduct(t, s, alice.ID, "high")
	mid := createTestProduct(t, s, alice.ID, "mid")

	require.NoError(t, s.UpdateProduct(ctx, high.ID, map[string]interface{}{"likes_count": 9}))
	require.NoError(t, s.UpdateProduct(ctx, mid.ID, map[string]interface{}{"likes_count": 4}))
	require.NoError(t, s.UpdateProduct(ctx, low.ID, map[string]interface{}{"likes_count": 1}))

	products, err := s.GetTrendingProducts(ctx, 2)
	require.NoError(t, err)
	require.Len(t, products, 2)
	require.Equal(t, high.ID, products[0].ID)
	require.Equal(t, mid.ID, products[1].ID)
}

func TestIncrementProductViewsAndShares(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice")
	product := createTestProduct(t, s, alice.ID, "lamp")

	require.NoError(t, s.IncrementProductViews(ctx, product.ID))
	require.NoError(t, s.IncrementProductViews(ctx, product.ID))
	require.NoError(t, s.IncrementProductShares(ctx, product.ID))

	loaded, err := s.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, loaded.ViewsCount)
	require.EqualValues(t, 1, loaded.SharesCount)
}

func TestDeleteProductCascadesEdges(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	product := createTestProduct(t, s, alice.ID, "lamp")

	require.NoError(t, s.LikeProduct(ctx, bob.ID, product.ID))
	require.NoError(t, s.BookmarkProduct(ctx, bob.ID, product.ID))
	require.NoError(t, s.CreateComment(ctx, &domain.Comment{ProductID: product.ID, UserID: bob.ID, Content: "nice"}))
	_, err := s.AddToCart(ctx, bob.ID, product.ID, 1)
	require.NoError(t, err)

	require.NoError(t, s.DeleteProduct(ctx, product.ID))

	_, err = s.GetProduct(ctx, product.ID)
	require.Error(t, err)
	for _, model := range []interface{}{&domain.ProductLike{}, &domain.ProductBookmark{}, &domain.Comment{}, &domain.CartItem{}} {
		var n int64
		require.NoError(t, s.DB().Model(model).Count(&n).Error)
		require.Zero(t, n)
	}
}

func TestGetUserProducts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	createTestProduct(t, s, alice.ID, "lamp")
	createTestProduct(t, s, bob.ID, "rug")

	products, err := s.GetUserProducts(ctx, alice.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, "lamp", products[0].Title)
}
