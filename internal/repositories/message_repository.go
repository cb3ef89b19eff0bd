package repositories

import (
	"context"
	"sort"

	"github.com/anonto42/friendbook/backend/internal/models"
	"github.com/anonto42/friendbook/backend/internal/store"
)

// MessageRepository defines the interface for direct message operations
type MessageRepository interface {
	CreateMessage(ctx context.Context, message *models.Message) error
	ReadThread(ctx context.Context, userID, peerID string) ([]models.Message, error)
	GetMessagesForUser(userID string) ([]models.Message, error)
}

// SnapshotMessageRepository implements MessageRepository over the messages snapshot
type SnapshotMessageRepository struct {
	messages *store.Collection[models.Message]
}

// NewSnapshotMessageRepository opens the messages collection
func NewSnapshotMessageRepository(ctx context.Context, s store.SnapshotStore) (*SnapshotMessageRepository, error) {
	col, err := store.Open[models.Message](ctx, s, store.MessagesCollection)
	if err != nil {
		return nil, err
	}
	return &SnapshotMessageRepository{messages: col}, nil
}

func (r *SnapshotMessageRepository) CreateMessage(ctx context.Context, message *models.Message) error {
	return r.messages.Update(ctx, func(messages []models.Message) ([]models.Message, error) {
		return append(messages, *message), nil
	})
}

// ReadThread returns the messages between userID and peerID, oldest first,
// and marks the ones addressed to userID as read in the same write.
func (r *SnapshotMessageRepository) ReadThread(ctx context.Context, userID, peerID string) ([]models.Message, error) {
	var thread []models.Message
	err := r.messages.Update(ctx, func(messages []models.Message) ([]models.Message, error) {
		thread = thread[:0]
		changed := false
		for i := range messages {
			m := &messages[i]
			if !m.Between(userID, peerID) {
				continue
			}
			if m.ReceiverID == userID && !m.Read {
				m.Read = true
				changed = true
			}
			thread = append(thread, *m)
		}
		if !changed {
			return nil, store.ErrNoChange
		}
		return messages, nil
	})
	if err != nil {
		return nil, err
	}
	if thread == nil {
		thread = []models.Message{}
	}
	sort.SliceStable(thread, func(i, j int) bool {
		return thread[i].CreatedAt.Before(thread[j].CreatedAt)
	})
	return thread, nil
}

// GetMessagesForUser returns every message sent or received by userID, in insertion order
func (r *SnapshotMessageRepository) GetMessagesForUser(userID string) ([]models.Message, error) {
	result := []models.Message{}
	err := r.messages.View(func(messages []models.Message) error {
		for _, m := range messages {
			if m.SenderID == userID || m.ReceiverID == userID {
				result = append(result, m)
			}
		}
		return nil
	})
	return result, err
}
