package repositories

import (
	"context"
	"fmt"

	"github.com/anonto42/friendbook/backend/internal/models"
	"github.com/anonto42/friendbook/backend/internal/store"
)

// FriendshipRepository defines the interface for friendship data operations
type FriendshipRepository interface {
	SendFriendRequest(ctx context.Context, req *models.FriendRequest) error
	GetUserPendingFriendRequests(userID string) ([]models.FriendRequest, error)
	GetUserFriendIDs(userID string) ([]string, error)
	AreFriends(a, b string) (bool, error)
	RespondFriendRequest(ctx context.Context, id, receiverID string, status models.FriendshipStatus) (*models.FriendRequest, bool, error)
}

// SnapshotFriendshipRepository implements FriendshipRepository over the friends snapshot
type SnapshotFriendshipRepository struct {
	friends *store.Collection[models.FriendRequest]
}

// NewSnapshotFriendshipRepository opens the friends collection
func NewSnapshotFriendshipRepository(ctx context.Context, s store.SnapshotStore) (*SnapshotFriendshipRepository, error) {
	col, err := store.Open[models.FriendRequest](ctx, s, store.FriendsCollection)
	if err != nil {
		return nil, err
	}
	return &SnapshotFriendshipRepository{friends: col}, nil
}

// SendFriendRequest stores a new pending request. Any existing edge between
// the pair, whatever its status or direction, is a conflict.
func (r *SnapshotFriendshipRepository) SendFriendRequest(ctx context.Context, req *models.FriendRequest) error {
	return r.friends.Update(ctx, func(edges []models.FriendRequest) ([]models.FriendRequest, error) {
		for _, e := range edges {
			if e.Connects(req.SenderID, req.ReceiverID) {
				return nil, fmt.Errorf("%w: friend request already exists", models.ErrConflict)
			}
		}
		req.Status = models.FriendshipStatusPending
		return append(edges, *req), nil
	})
}

// GetUserPendingFriendRequests retrieves all pending friend requests addressed to a user
func (r *SnapshotFriendshipRepository) GetUserPendingFriendRequests(userID string) ([]models.FriendRequest, error) {
	requests := []models.FriendRequest{}
	err := r.friends.View(func(edges []models.FriendRequest) error {
		for _, e := range edges {
			if e.ReceiverID == userID && e.Status == models.FriendshipStatusPending {
				requests = append(requests, e)
			}
		}
		return nil
	})
	return requests, err
}

// GetUserFriendIDs returns the other endpoint of every accepted edge touching userID
func (r *SnapshotFriendshipRepository) GetUserFriendIDs(userID string) ([]string, error) {
	ids := []string{}
	err := r.friends.View(func(edges []models.FriendRequest) error {
		for _, e := range edges {
			if e.Status != models.FriendshipStatusAccepted {
				continue
			}
			if e.SenderID == userID || e.ReceiverID == userID {
				ids = append(ids, e.Other(userID))
			}
		}
		return nil
	})
	return ids, err
}

// AreFriends reports whether an accepted edge joins a and b
func (r *SnapshotFriendshipRepository) AreFriends(a, b string) (bool, error) {
	friends := false
	err := r.friends.View(func(edges []models.FriendRequest) error {
		for _, e := range edges {
			if e.Status == models.FriendshipStatusAccepted && e.Connects(a, b) {
				friends = true
				return nil
			}
		}
		return nil
	})
	return friends, err
}

// RespondFriendRequest moves a request addressed to receiverID to status.
// The boolean is false when the request already had that status. A request
// that was already decided the other way is a conflict.
func (r *SnapshotFriendshipRepository) RespondFriendRequest(ctx context.Context, id, receiverID string, status models.FriendshipStatus) (*models.FriendRequest, bool, error) {
	var result models.FriendRequest
	changed := false
	err := r.friends.Update(ctx, func(edges []models.FriendRequest) ([]models.FriendRequest, error) {
		for i := range edges {
			e := &edges[i]
			if e.ID != id {
				continue
			}
			if e.ReceiverID != receiverID {
				break
			}
			result = *e
			switch e.Status {
			case status:
				return nil, store.ErrNoChange
			case models.FriendshipStatusPending:
				e.Status = status
				result = *e
				changed = true
				return edges, nil
			default:
				return nil, fmt.Errorf("%w: friend request already %s", models.ErrConflict, e.Status)
			}
		}
		return nil, fmt.Errorf("%w: friend request", models.ErrNotFound)
	})
	if err != nil {
		return nil, false, err
	}
	return &result, changed, nil
}
