package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vroomify/vroom/internal/domain"
)

func sendTestMessage(t *testing.T, s *Store, from, to int64, content string) {
	t.Helper()
	err := s.SendMessage(context.Background(), &domain.Message{
		SenderID:   from,
		ReceiverID: to,
		Content:    content,
	})
	require.NoError(t, err)
}

func TestGetMessagesCoversBothDirections(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	carol := createTestUser(t, s, "carol")

	sendTestMessage(t, s, alice.ID, bob.ID, "hi bob")
	sendTestMessage(t, s, bob.ID, alice.ID, "hi alice")
	sendTestMessage(t, s, carol.ID, alice.ID, "unrelated")

	thread, err := s.GetMessages(ctx, alice.ID, bob.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, thread, 2)
}

func TestMarkMessagesRead(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")

	sendTestMessage(t, s, bob.ID, alice.ID, "one")
	sendTestMessage(t, s, bob.ID, alice.ID, "two")
	sendTestMessage(t, s, alice.ID, bob.ID, "reply")

	unread, err := s.UnreadMessageCount(ctx, alice.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, unread)

	require.NoError(t, s.MarkMessagesRead(ctx, alice.ID, bob.ID))

	unread, err = s.UnreadMessageCount(ctx, alice.ID)
	require.NoError(t, err)
	require.Zero(t, unread)

	// the reply to bob stays unread on his side
	unread, err = s.UnreadMessageCount(ctx, bob.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, unread)
}

func TestGetUserConversationsFoldsPerPeer(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	carol := createTestUser(t, s, "carol")

	sendTestMessage(t, s, alice.ID, bob.ID, "first to bob")
	sendTestMessage(t, s, bob.ID, alice.ID, "bob answers")
	sendTestMessage(t, s, carol.ID, alice.ID, "carol says hi")
	sendTestMessage(t, s, carol.ID, alice.ID, "carol again")

	conversations, err := s.GetUserConversations(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, conversations, 2)

	// newest activity first: carol's thread, then bob's
	require.Equal(t, carol.ID, conversations[0].PeerID)
	require.Equal(t, "carol again", conversations[0].LastMessage.Content)
	require.EqualValues(t, 2, conversations[0].UnreadCount)
	require.NotNil(t, conversations[0].Peer)
	require.Equal(t, "carol", conversations[0].Peer.Username)

	require.Equal(t, bob.ID, conversations[1].PeerID)
	require.Equal(t, "bob answers", conversations[1].LastMessage.Content)
	require.EqualValues(t, 1, conversations[1].UnreadCount)
}

func TestGetUserConversationsEmpty(t *testing.T) {
	s := newTestStore(t)
	alice := createTestUser(t, s, "alice")

	conversations, err := s.GetUserConversations(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Empty(t, conversations)
}
