package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/anonto42/friendbook/backend/internal/models"
	"github.com/anonto42/friendbook/backend/internal/realtime"
	"github.com/anonto42/friendbook/backend/internal/repositories"
)

// MessageService handles direct messages between two users
type MessageService struct {
	messages  repositories.MessageRepository
	users     repositories.UserRepository
	publisher realtime.Publisher
	now       func() time.Time
	newID     func() string
}

// Send stores an unread message and pushes it to the live sessions of both
// parties
func (s *MessageService) Send(ctx context.Context, senderID, receiverID, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: message text is required", models.ErrValidation)
	}
	if senderID == receiverID {
		return nil, fmt.Errorf("%w: cannot message yourself", models.ErrValidation)
	}
	if _, err := s.users.GetUserByID(receiverID); err != nil {
		return nil, fmt.Errorf("%w: receiver user", models.ErrNotFound)
	}

	msg := &models.Message{
		ID:         s.newID(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       text,
		CreatedAt:  s.now(),
	}
	if err := s.messages.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	event := realtime.Event{Type: realtime.EventNewMessage, Payload: *msg}
	s.publisher.Publish(receiverID, event)
	s.publisher.Publish(senderID, event)
	return msg, nil
}

// Thread returns the messages between userID and peerID, oldest first.
// Opening the thread marks everything peerID sent to userID as read.
func (s *MessageService) Thread(ctx context.Context, userID, peerID string) ([]models.Message, error) {
	return s.messages.ReadThread(ctx, userID, peerID)
}

// Conversations summarises every peer userID has exchanged messages with:
// the latest message and how many from that peer are still unread. Most
// recent conversation first.
func (s *MessageService) Conversations(userID string) ([]models.Conversation, error) {
	messages, err := s.messages.GetMessagesForUser(userID)
	if err != nil {
		return nil, err
	}

	byPeer := make(map[string]*models.Conversation)
	var order []string
	for _, m := range messages {
		peer := m.SenderID
		if peer == userID {
			peer = m.ReceiverID
		}
		conv, ok := byPeer[peer]
		if !ok {
			conv = &models.Conversation{User: models.UserCompact{ID: peer}, LastMessage: m}
			byPeer[peer] = conv
			order = append(order, peer)
		} else if m.CreatedAt.After(conv.LastMessage.CreatedAt) {
			conv.LastMessage = m
		}
		if m.ReceiverID == userID && !m.Read {
			conv.UnreadCount++
		}
	}

	peers, err := s.users.GetUsersByIDs(order)
	if err != nil {
		return nil, err
	}
	result := make([]models.Conversation, 0, len(order))
	for _, id := range order {
		conv := byPeer[id]
		if u, ok := peers[id]; ok {
			conv.User = u.ToCompact()
		}
		result = append(result, *conv)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].LastMessage.CreatedAt.After(result[j].LastMessage.CreatedAt)
	})
	return result, nil
}
