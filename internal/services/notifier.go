package services

import (
	"context"
	"time"

	"github.com/anonto42/friendbook/backend/internal/models"
	"github.com/anonto42/friendbook/backend/internal/realtime"
	"github.com/anonto42/friendbook/backend/internal/repositories"
)

// Notifier turns one write event into one notification per recipient
type Notifier struct {
	notifications repositories.NotificationRepository
	publisher     realtime.Publisher
	now           func() time.Time
	newID         func() string
}

func notificationMessage(kind models.NotificationType, actorName string) string {
	switch kind {
	case models.NotificationPost:
		return actorName + " created a new post"
	case models.NotificationLike:
		return actorName + " liked your post"
	case models.NotificationComment:
		return actorName + " commented on your post"
	case models.NotificationFriendRequest:
		return actorName + " sent you a friend request"
	case models.NotificationFriendAccept:
		return actorName + " accepted your friend request"
	}
	return actorName
}

// Notify writes the notifications in a single update and pushes each to its
// recipient. The actor is never notified and recipients are deduplicated.
func (n *Notifier) Notify(ctx context.Context, actor *models.User, kind models.NotificationType, postID string, recipients ...string) ([]models.Notification, error) {
	seen := map[string]bool{actor.ID: true}
	now := n.now()
	batch := make([]models.Notification, 0, len(recipients))
	for _, id := range recipients {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		batch = append(batch, models.Notification{
			ID:          n.newID(),
			RecipientID: id,
			Type:        kind,
			ActorID:     actor.ID,
			ActorName:   actor.Name,
			Message:     notificationMessage(kind, actor.Name),
			PostID:      postID,
			CreatedAt:   now,
		})
	}
	if len(batch) == 0 {
		return batch, nil
	}
	if err := n.notifications.CreateNotifications(ctx, batch); err != nil {
		return nil, err
	}
	for _, notif := range batch {
		n.publisher.Publish(notif.RecipientID, realtime.Event{Type: realtime.EventNewNotification, Payload: notif})
	}
	return batch, nil
}

// NotificationService is the read side of notifications
type NotificationService struct {
	notifications repositories.NotificationRepository
}

// List returns the user's notifications, newest first
func (s *NotificationService) List(userID string) ([]models.Notification, error) {
	return s.notifications.GetByRecipientID(userID)
}

func (s *NotificationService) UnreadCount(userID string) (int, error) {
	return s.notifications.GetUnreadCount(userID)
}

// MarkRead is a no-op for notifications that are missing or not the user's
func (s *NotificationService) MarkRead(ctx context.Context, id, userID string) error {
	return s.notifications.MarkAsRead(ctx, id, userID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.notifications.MarkAllAsRead(ctx, userID)
}
