package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vroomify/vroom/internal/domain"
)

func TestFollowUnfollowVisibility(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")

	require.NoError(t, s.FollowUser(ctx, alice.ID, bob.ID))

	following, err := s.IsFollowingUser(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.True(t, following)

	require.NoError(t, s.UnfollowUser(ctx, alice.ID, bob.ID))

	following, err = s.IsFollowingUser(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.False(t, following)
}

func TestFollowRecomputesCounters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	carol := createTestUser(t, s, "carol")

	require.NoError(t, s.FollowUser(ctx, alice.ID, bob.ID))
	require.NoError(t, s.FollowUser(ctx, carol.ID, bob.ID))

	bobLoaded, err := s.GetUser(ctx, bob.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, bobLoaded.FollowersCount)
	require.EqualValues(t, 0, bobLoaded.FollowingCount)

	aliceLoaded, err := s.GetUser(ctx, alice.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, aliceLoaded.FollowingCount)

	require.NoError(t, s.UnfollowUser(ctx, alice.ID, bob.ID))
	bobLoaded, err = s.GetUser(ctx, bob.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, bobLoaded.FollowersCount)
}

func TestGetFollowersAndFollowing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	carol := createTestUser(t, s, "carol")

	require.NoError(t, s.FollowUser(ctx, alice.ID, bob.ID))
	require.NoError(t, s.FollowUser(ctx, alice.ID, carol.ID))
	require.NoError(t, s.FollowUser(ctx, carol.ID, bob.ID))

	followers, err := s.GetFollowers(ctx, bob.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, followers, 2)

	following, err := s.GetFollowing(ctx, alice.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, following, 2)
}

func TestDeleteUserCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")

	product := createTestProduct(t, s, alice.ID, "lamp", "vintage")
	bobProduct := createTestProduct(t, s, bob.ID, "chair")

	vroom := &domain.Vroom{UserID: alice.ID, Name: "alice store", Active: true}
	require.NoError(t, s.CreateVroom(ctx, vroom))

	require.NoError(t, s.FollowUser(ctx, alice.ID, bob.ID))
	require.NoError(t, s.FollowUser(ctx, bob.ID, alice.ID))
	require.NoError(t, s.FollowVroom(ctx, bob.ID, vroom.ID))
	require.NoError(t, s.LikeProduct(ctx, bob.ID, product.ID))
	require.NoError(t, s.LikeProduct(ctx, alice.ID, bobProduct.ID))
	require.NoError(t, s.BookmarkProduct(ctx, alice.ID, bobProduct.ID))
	require.NoError(t, s.CreateComment(ctx, &domain.Comment{ProductID: bobProduct.ID, UserID: alice.ID, Content: "hi"}))
	_, err := s.AddToCart(ctx, alice.ID, bobProduct.ID, 1)
	require.NoError(t, err)

	order := &domain.Order{BuyerID: alice.ID, ProductID: bobProduct.ID, Quantity: 1}
	require.NoError(t, s.CreateOrder(ctx, order))
	sale := &domain.Order{BuyerID: bob.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, s.CreateOrder(ctx, sale))

	require.NoError(t, s.SendMessage(ctx, &domain.Message{SenderID: alice.ID, ReceiverID: bob.ID, Content: "hello"}))
	require.NoError(t, s.SendMessage(ctx, &domain.Message{SenderID: bob.ID, ReceiverID: alice.ID, Content: "hey"}))

	require.NoError(t, s.DeleteUser(ctx, alice.ID))

	_, err = s.GetUser(ctx, alice.ID)
	require.Error(t, err)

	counts := map[string]interface{}{
		"products":          &domain.Product{},
		"vrooms":            &domain.Vroom{},
		"follows":           &domain.Follow{},
		"vroom follows":     &domain.VroomFollow{},
		"likes":             &domain.ProductLike{},
		"bookmarks":         &domain.ProductBookmark{},
		"comments":          &domain.Comment{},
		"cart items":        &domain.CartItem{},
		"orders":            &domain.Order{},
		"messages":          &domain.Message{},
	}
	for name, model := range counts {
		var n int64
		require.NoError(t, s.DB().Model(model).Count(&n).Error)
		switch name {
		case "products":
			// only bob's product survives
			require.EqualValues(t, 1, n, name)
		default:
			require.Zero(t, n, name)
		}
	}
}

func TestSearchUsersCaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	createTestUser(t, s, "alice")
	createTestUser(t, s, "bob")

	users, err := s.SearchUsers(ctx, "ALI", 10, 0)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, "alice", users[0].Username)
}
