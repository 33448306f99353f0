package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vroomify/vroom/internal/domain"
)

func createTestVroom(t *testing.T, s *Store, ownerID int64, name string) *domain.Vroom {
	t.Helper()
	vroom := &domain.Vroom{UserID: ownerID, Name: name, Active: true}
	require.NoError(t, s.CreateVroom(context.Background(), vroom))
	return vroom
}

func TestFollowVroomBumpsCounter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	vroom := createTestVroom(t, s, alice.ID, "alice store")

	require.NoError(t, s.FollowVroom(ctx, bob.ID, vroom.ID))

	following, err := s.IsFollowingVroom(ctx, bob.ID, vroom.ID)
	require.NoError(t, err)
	require.True(t, following)

	loaded, err := s.GetVroom(ctx, vroom.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, loaded.FollowersCount)

	// duplicate follow hits the unique index and leaves the counter alone
	require.Error(t, s.FollowVroom(ctx, bob.ID, vroom.ID))
	loaded, err = s.GetVroom(ctx, vroom.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, loaded.FollowersCount)
}

func TestUnfollowVroomWithoutFollowIsNoop(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	vroom := createTestVroom(t, s, alice.ID, "alice store")

	require.NoError(t, s.UnfollowVroom(ctx, bob.ID, vroom.ID))

	loaded, err := s.GetVroom(ctx, vroom.ID)
	require.NoError(t, err)
	require.Zero(t, loaded.FollowersCount)
}

func TestFollowUnfollowVroomRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	vroom := createTestVroom(t, s, alice.ID, "alice store")

	require.NoError(t, s.FollowVroom(ctx, bob.ID, vroom.ID))
	require.NoError(t, s.UnfollowVroom(ctx, bob.ID, vroom.ID))

	following, err := s.IsFollowingVroom(ctx, bob.ID, vroom.ID)
	require.NoError(t, err)
	require.False(t, following)

	loaded, err := s.GetVroom(ctx, vroom.ID)
	require.NoError(t, err)
	require.Zero(t, loaded.FollowersCount)
}

func TestGetVroomProductsDerivedFromOwner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	vroom := createTestVroom(t, s, alice.ID, "alice store")

	visible := createTestProduct(t, s, alice.ID, "lamp")
	hidden := createTestProduct(t, s, alice.ID, "rug")
	require.NoError(t, s.UpdateProduct(ctx, hidden.ID, map[string]interface{}{"available": false}))
	createTestProduct(t, s, bob.ID, "stool")

	products, err := s.GetVroomProducts(ctx, vroom.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, visible.ID, products[0].ID)
}

func TestGetFollowedVrooms(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	carol := createTestUser(t, s, "carol")

	first := createTestVroom(t, s, alice.ID, "alice store")
	second := createTestVroom(t, s, bob.ID, "bob store")

	require.NoError(t, s.FollowVroom(ctx, carol.ID, first.ID))
	require.NoError(t, s.FollowVroom(ctx, carol.ID, second.ID))

	vrooms, err := s.GetFollowedVrooms(ctx, carol.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, vrooms, 2)
}

func TestGetUserVroom(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice")
	vroom := createTestVroom(t, s, alice.ID, "alice store")

	loaded, err := s.GetUserVroom(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, vroom.ID, loaded.ID)

	bob := createTestUser(t, s, "bob")
	_, err = s.GetUserVroom(ctx, bob.ID)
	require.Error(t, err)
}
