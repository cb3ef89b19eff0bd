package repositories

import (
	"context"
	"sort"

	"github.com/anonto42/friendbook/backend/internal/models"
	"github.com/anonto42/friendbook/backend/internal/store"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotifications(ctx context.Context, notifications []models.Notification) error
	GetByRecipientID(recipientID string) ([]models.Notification, error)
	GetUnreadCount(recipientID string) (int, error)
	MarkAsRead(ctx context.Context, notificationID, recipientID string) error
	MarkAllAsRead(ctx context.Context, recipientID string) error
}

// SnapshotNotificationRepository implements NotificationRepository over the notifications snapshot
type SnapshotNotificationRepository struct {
	notifications *store.Collection[models.Notification]
}

// NewSnapshotNotificationRepository opens the notifications collection
func NewSnapshotNotificationRepository(ctx context.Context, s store.SnapshotStore) (*SnapshotNotificationRepository, error) {
	col, err := store.Open[models.Notification](ctx, s, store.NotificationsCollection)
	if err != nil {
		return nil, err
	}
	return &SnapshotNotificationRepository{notifications: col}, nil
}

func (r *SnapshotNotificationRepository) CreateNotifications(ctx context.Context, notifications []models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return r.notifications.Update(ctx, func(existing []models.Notification) ([]models.Notification, error) {
		return append(existing, notifications...), nil
	})
}

// GetByRecipientID sorts at read time, newest first; ties keep insertion order
func (r *SnapshotNotificationRepository) GetByRecipientID(recipientID string) ([]models.Notification, error) {
	result := []models.Notification{}
	err := r.notifications.View(func(notifications []models.Notification) error {
		for _, n := range notifications {
			if n.RecipientID == recipientID {
				result = append(result, n)
			}
		}
		return nil
	})
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, err
}

func (r *SnapshotNotificationRepository) GetUnreadCount(recipientID string) (int, error) {
	count := 0
	err := r.notifications.View(func(notifications []models.Notification) error {
		for _, n := range notifications {
			if n.RecipientID == recipientID && !n.IsRead {
				count++
			}
		}
		return nil
	})
	return count, err
}

// MarkAsRead ignores notifications that are missing or belong to someone else
func (r *SnapshotNotificationRepository) MarkAsRead(ctx context.Context, notificationID, recipientID string) error {
	return r.notifications.Update(ctx, func(notifications []models.Notification) ([]models.Notification, error) {
		for i := range notifications {
			n := &notifications[i]
			if n.ID == notificationID && n.RecipientID == recipientID && !n.IsRead {
				n.IsRead = true
				return notifications, nil
			}
		}
		return nil, store.ErrNoChange
	})
}

func (r *SnapshotNotificationRepository) MarkAllAsRead(ctx context.Context, recipientID string) error {
	return r.notifications.Update(ctx, func(notifications []models.Notification) ([]models.Notification, error) {
		changed := false
		for i := range notifications {
			n := &notifications[i]
			if n.RecipientID == recipientID && !n.IsRead {
				n.IsRead = true
				changed = true
			}
		}
		if !changed {
			return nil, store.ErrNoChange
		}
		return notifications, nil
	})
}
