package store

import (
	"context"
	"time"

	"github.com/vroomify/vroom/internal/domain"
	"github.com/vroomify/vroom/pkg/common"
)

func (s *Store) SendMessage(ctx context.Context, msg *domain.Message) error {
	if msg.ID == 0 {
		msg.ID = common.UUIDint64()
	}
	msg.Read = false
	msg.CreatedAt = time.Now()
	return s.db.WithContext(ctx).Create(msg).Error
}

// GetMessages returns the two-way thread between userID and peerID, newest
// first. Freshness is the client's problem: it polls.
func (s *Store) GetMessages(ctx context.Context, userID, peerID int64, limit, offset int) ([]domain.Message, error) {
	var messages []domain.Message
	err := s.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, peerID, peerID, userID).
		Order("created_at DESC, id DESC").
		Limit(normalizeLimit(limit)).Offset(offset).
		Find(&messages).Error
	return messages, err
}

// MarkMessagesRead flags everything peerID sent to userID as read.
func (s *Store) MarkMessagesRead(ctx context.Context, userID, peerID int64) error {
	return s.db.WithContext(ctx).Model(&domain.Message{}).
		Where("receiver_id = ? AND sender_id = ? AND is_read = ?", userID, peerID, false).
		Update("is_read", true).Error
}

// GetUserConversations folds the user's messages, newest first, into one
// entry per counterpart; the most recent message becomes the preview and a
// count query per counterpart supplies the unread figure. O(messages) with
// an extra query per distinct peer, fine at this scale.
func (s *Store) GetUserConversations(ctx context.Context, userID int64) ([]domain.Conversation, error) {
	db := s.db.WithContext(ctx)

	var messages []domain.Message
	err := db.Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC, id DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]bool)
	conversations := make([]domain.Conversation, 0)
	for _, msg := range messages {
		peerID := msg.SenderID
		if peerID == userID {
			peerID = msg.ReceiverID
		}
		if seen[peerID] {
			continue
		}
		seen[peerID] = true

		var unread int64
		err = db.Model(&domain.Message{}).
			Where("receiver_id = ? AND sender_id = ? AND is_read = ?", userID, peerID, false).
			Count(&unread).Error
		if err != nil {
			return nil, err
		}

		conversations = append(conversations, domain.Conversation{
			PeerID:      peerID,
			LastMessage: msg,
			UnreadCount: unread,
			UpdatedAt:   msg.CreatedAt,
		})
	}

	peerIDs := make([]int64, 0, len(conversations))
	for _, c := range conversations {
		peerIDs = append(peerIDs, c.PeerID)
	}
	peers, err := s.usersByID(ctx, peerIDs)
	if err != nil {
		return nil, err
	}
	for i := range conversations {
		conversations[i].Peer = peers[conversations[i].PeerID]
	}
	return conversations, nil
}

// UnreadMessageCount is the total number of unread messages for a user.
func (s *Store) UnreadMessageCount(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&domain.Message{}).
		Where("receiver_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}
