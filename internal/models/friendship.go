package models

import "time"

// FriendshipStatus represents the status of a friend request
type FriendshipStatus string

const (
	FriendshipStatusPending  FriendshipStatus = "pending"
	FriendshipStatusAccepted FriendshipStatus = "accepted"
	FriendshipStatusRejected FriendshipStatus = "rejected"
)

// FriendRequest is the edge between two users. At most one exists per
// unordered pair, whatever its status.
type FriendRequest struct {
	ID         string           `json:"id"`
	SenderID   string           `json:"sender_id"`
	ReceiverID string           `json:"receiver_id"`
	Status     FriendshipStatus `json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
}

// Connects reports whether the edge joins a and b in either direction
func (f *FriendRequest) Connects(a, b string) bool {
	return (f.SenderID == a && f.ReceiverID == b) || (f.SenderID == b && f.ReceiverID == a)
}

// Other returns the endpoint of the edge that is not userID
func (f *FriendRequest) Other(userID string) string {
	if f.SenderID == userID {
		return f.ReceiverID
	}
	return f.SenderID
}

// PendingFriendRequest is an incoming request with the sender attached
type PendingFriendRequest struct {
	FriendRequest
	User UserCompact `json:"user"`
}

// CreateFriendRequest defines the request body for sending a friend request
type CreateFriendRequest struct {
	FriendID string `json:"friend_id" validate:"required"`
}

// RespondFriendRequest defines the request body for accepting/rejecting a friend request
type RespondFriendRequest struct {
	Action string `json:"action" validate:"required,oneof=accept reject"`
}
