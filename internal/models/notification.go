package models

import "time"

type NotificationType string

const (
	NotificationPost          NotificationType = "post"
	NotificationLike          NotificationType = "like"
	NotificationComment       NotificationType = "comment"
	NotificationFriendRequest NotificationType = "friend_request"
	NotificationFriendAccept  NotificationType = "friend_accept"
)

// Notification is a recipient-scoped record created as a side effect of another write
type Notification struct {
	ID          string           `json:"id"`
	RecipientID string           `json:"recipient_id"`
	Type        NotificationType `json:"type"`
	ActorID     string           `json:"actor_id"`
	ActorName   string           `json:"actor_name"`
	Message     string           `json:"message"`
	PostID      string           `json:"post_id,omitempty"`
	IsRead      bool             `json:"is_read"`
	CreatedAt   time.Time        `json:"created_at"`
}
