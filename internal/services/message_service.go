package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/repository"
	"github.com/google/uuid"
)

type MessageService struct {
	messages repository.MessageRepository
	users    repository.UserRepository
	metrics  *metrics.Metrics
	now      func() time.Time
}

func NewMessageService(messages repository.MessageRepository, users repository.UserRepository, m *metrics.Metrics) *MessageService {
	return &MessageService{messages: messages, users: users, metrics: m, now: time.Now}
}

// SendMessage stores a message stamped with the current time. Content is not
// validated; both participants must exist.
func (s *MessageService) SendMessage(ctx context.Context, req *dto.SendMessageRequest) (*models.Message, error) {
	for _, id := range []uuid.UUID{req.SenderID, req.ReceiverID} {
		if _, err := s.users.FindByID(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, fmt.Errorf("failed to find user: %w", err)
		}
	}

	msg := models.Message{
		ID:         uuid.New(),
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
		// Matches the microsecond precision of the timestamp column.
		Timestamp: s.now().UTC().Truncate(time.Microsecond),
	}

	if err := s.messages.Create(ctx, &msg); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	s.metrics.MessageSent()
	return &msg, nil
}

// GetConversation returns the messages exchanged between a and b in either
// direction, oldest first. The result never depends on argument order and is
// empty, not nil, when the users never talked.
func (s *MessageService) GetConversation(ctx context.Context, a, b uuid.UUID) ([]models.Message, error) {
	msgs, err := s.messages.FindBetween(ctx, a, b)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	if msgs == nil {
		msgs = []models.Message{}
	}
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].Timestamp.Before(msgs[j].Timestamp)
	})
	return msgs, nil
}

// ListConversations returns one summary per conversation partner carrying the
// latest message, most recent conversation first.
func (s *MessageService) ListConversations(ctx context.Context, userID uuid.UUID) ([]dto.ConversationSummary, error) {
	msgs, err := s.messages.FindInvolving(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}

	summaries := []dto.ConversationSummary{}
	seen := make(map[uuid.UUID]bool)
	for _, m := range msgs {
		partner := m.ReceiverID
		if partner == userID {
			partner = m.SenderID
		}
		if seen[partner] {
			continue
		}
		seen[partner] = true

		summary := dto.ConversationSummary{
			PartnerID:     partner,
			LastMessage:   m.Content,
			LastMessageAt: m.Timestamp,
		}
		if user, err := s.users.FindByID(ctx, partner); err == nil {
			summary.PartnerUsername = user.Username
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to find user: %w", err)
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
