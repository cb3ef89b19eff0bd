// Package store persists whole-collection snapshots and owns the in-memory
// copy of each collection.
package store

import "context"

// Collection names, one snapshot each
const (
	UsersCollection         = "users"
	PostsCollection         = "posts"
	FriendsCollection       = "friends"
	MessagesCollection      = "messages"
	NotificationsCollection = "notifications"
)

// SnapshotStore loads and saves one blob per collection. Load returns
// (nil, nil) when the collection has never been saved. Save must replace the
// previous snapshot atomically.
type SnapshotStore interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
}
