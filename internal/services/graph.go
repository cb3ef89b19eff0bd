package services

import (
	"context"
	"fmt"
	"time"

	"github.com/anonto42/friendbook/backend/internal/models"
	"github.com/anonto42/friendbook/backend/internal/realtime"
	"github.com/anonto42/friendbook/backend/internal/repositories"
)

// FriendAction is the answer to a friend request
type FriendAction string

const (
	FriendAccept FriendAction = "accept"
	FriendReject FriendAction = "reject"
)

// GraphService runs the friend-request lifecycle
type GraphService struct {
	users       repositories.UserRepository
	friendships repositories.FriendshipRepository
	notifier    *Notifier
	publisher   realtime.Publisher
	now         func() time.Time
	newID       func() string
}

// RequestFriend creates a pending edge from requester to recipient and
// notifies the recipient
func (s *GraphService) RequestFriend(ctx context.Context, requesterID, recipientID string) (*models.FriendRequest, error) {
	if requesterID == recipientID {
		return nil, fmt.Errorf("%w: cannot send a friend request to yourself", models.ErrValidation)
	}
	requester, err := s.users.GetUserByID(requesterID)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.GetUserByID(recipientID); err != nil {
		return nil, fmt.Errorf("%w: receiver user", models.ErrNotFound)
	}

	req := &models.FriendRequest{
		ID:         s.newID(),
		SenderID:   requesterID,
		ReceiverID: recipientID,
		Status:     models.FriendshipStatusPending,
		CreatedAt:  s.now(),
	}
	if err := s.friendships.SendFriendRequest(ctx, req); err != nil {
		return nil, err
	}

	if _, err := s.notifier.Notify(ctx, requester, models.NotificationFriendRequest, "", recipientID); err != nil {
		return nil, err
	}
	s.publisher.Publish(recipientID, realtime.Event{
		Type:    realtime.EventFriendRequest,
		Payload: models.PendingFriendRequest{FriendRequest: *req, User: requester.ToCompact()},
	})
	return req, nil
}

// RespondFriend accepts or rejects a request addressed to responder.
// Accepting mirrors the friendship into both adjacency lists and notifies
// the requester. Repeating the same answer changes nothing.
func (s *GraphService) RespondFriend(ctx context.Context, edgeID, responderID string, action FriendAction) (*models.FriendRequest, error) {
	var status models.FriendshipStatus
	switch action {
	case FriendAccept:
		status = models.FriendshipStatusAccepted
	case FriendReject:
		status = models.FriendshipStatusRejected
	default:
		return nil, fmt.Errorf("%w: action must be accept or reject", models.ErrValidation)
	}

	edge, changed, err := s.friendships.RespondFriendRequest(ctx, edgeID, responderID, status)
	if err != nil {
		return nil, err
	}
	if status != models.FriendshipStatusAccepted {
		return edge, nil
	}

	// adjacency insert is idempotent, so a repeated accept also repairs it
	if err := s.users.AddFriends(ctx, edge.SenderID, edge.ReceiverID); err != nil {
		return nil, err
	}
	if !changed {
		return edge, nil
	}
	responder, err := s.users.GetUserByID(responderID)
	if err != nil {
		return nil, err
	}
	if _, err := s.notifier.Notify(ctx, responder, models.NotificationFriendAccept, "", edge.SenderID); err != nil {
		return nil, err
	}
	return edge, nil
}

// AreFriends is true iff an accepted edge joins a and b
func (s *GraphService) AreFriends(a, b string) (bool, error) {
	return s.friendships.AreFriends(a, b)
}

// FriendIDs lists the ids reachable from userID over accepted edges
func (s *GraphService) FriendIDs(userID string) ([]string, error) {
	return s.friendships.GetUserFriendIDs(userID)
}

// ListFriends returns the accepted friends of userID
func (s *GraphService) ListFriends(userID string) ([]models.UserCompact, error) {
	ids, err := s.friendships.GetUserFriendIDs(userID)
	if err != nil {
		return nil, err
	}
	users, err := s.users.GetUsersByIDs(ids)
	if err != nil {
		return nil, err
	}
	friends := make([]models.UserCompact, 0, len(ids))
	for _, id := range ids {
		if u, ok := users[id]; ok {
			friends = append(friends, u.ToCompact())
		}
	}
	return friends, nil
}

// PendingRequests returns incoming pending requests with their senders
func (s *GraphService) PendingRequests(userID string) ([]models.PendingFriendRequest, error) {
	requests, err := s.friendships.GetUserPendingFriendRequests(userID)
	if err != nil {
		return nil, err
	}
	senderIDs := make([]string, len(requests))
	for i, r := range requests {
		senderIDs[i] = r.SenderID
	}
	senders, err := s.users.GetUsersByIDs(senderIDs)
	if err != nil {
		return nil, err
	}
	result := make([]models.PendingFriendRequest, 0, len(requests))
	for _, r := range requests {
		sender := senders[r.SenderID]
		result = append(result, models.PendingFriendRequest{FriendRequest: r, User: sender.ToCompact()})
	}
	return result, nil
}
