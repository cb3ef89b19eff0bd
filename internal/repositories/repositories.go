package repositories

import (
	"context"
	"fmt"

	"github.com/anonto42/friendbook/backend/internal/store"
)

// Set bundles one repository per collection
type Set struct {
	Users         UserRepository
	Posts         PostRepository
	Friendships   FriendshipRepository
	Messages      MessageRepository
	Notifications NotificationRepository
}

// Open loads every collection from s
func Open(ctx context.Context, s store.SnapshotStore) (*Set, error) {
	users, err := NewSnapshotUserRepository(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("open users: %w", err)
	}
	posts, err := NewSnapshotPostRepository(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("open posts: %w", err)
	}
	friendships, err := NewSnapshotFriendshipRepository(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("open friends: %w", err)
	}
	messages, err := NewSnapshotMessageRepository(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("open messages: %w", err)
	}
	notifications, err := NewSnapshotNotificationRepository(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("open notifications: %w", err)
	}
	return &Set{
		Users:         users,
		Posts:         posts,
		Friendships:   friendships,
		Messages:      messages,
		Notifications: notifications,
	}, nil
}
