package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/domain"
	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/ports"
)

// MessagingService handles direct messages between two users. Participant
// names on chats and messages are snapshots taken when written.
type MessagingService struct {
	chats  ports.ChatRepository
	users  ports.UserRepository
	policy Policy
	now    func() time.Time
	logger zerolog.Logger
}

func NewMessagingService(chats ports.ChatRepository, users ports.UserRepository, logger zerolog.Logger) *MessagingService {
	return &MessagingService{chats: chats, users: users, now: time.Now, logger: logger}
}

// Compose opens a new chat with receiverID and posts body as its first
// message. Existing chats between the same pair are not reused.
func (s *MessagingService) Compose(ctx context.Context, actor domain.Actor, receiverID uint, body string) (*domain.Chat, error) {
	if err := s.policy.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("message body is required: %w", domain.ErrValidation)
	}
	if receiverID == actor.ID {
		return nil, fmt.Errorf("cannot message yourself: %w", domain.ErrValidation)
	}

	sender, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	receiver, err := s.users.FindByID(ctx, receiverID)
	if err != nil {
		return nil, err
	}

	chat, err := s.chats.CreateWithMessage(ctx,
		&domain.Chat{
			SenderID:     sender.ID,
			SenderName:   sender.Name,
			ReceiverID:   receiver.ID,
			ReceiverName: receiver.Name,
		},
		&domain.Message{
			AuthorName: sender.Name,
			Body:       body,
			DatePosted: domain.FormatDatePosted(s.now()),
		},
	)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Uint("chat_id", chat.ID).Uint("sender_id", sender.ID).Uint("receiver_id", receiver.ID).Msg("chat composed")
	return chat, nil
}

func (s *MessagingService) AppendMessage(ctx context.Context, actor domain.Actor, chatID uint, body string) (*domain.Message, error) {
	if err := s.policy.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	chat, err := s.chats.FindByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanAccessChat(actor, chat); err != nil {
		return nil, err
	}
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("message body is required: %w", domain.ErrValidation)
	}

	return s.chats.AppendMessage(ctx, &domain.Message{
		ChatID:     chatID,
		AuthorName: actor.Name,
		Body:       body,
		DatePosted: domain.FormatDatePosted(s.now()),
	})
}

func (s *MessagingService) ListMyChats(ctx context.Context, actor domain.Actor) ([]*domain.Chat, error) {
	if err := s.policy.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	return s.chats.ListByParticipant(ctx, actor.ID)
}

func (s *MessagingService) GetChat(ctx context.Context, actor domain.Actor, chatID uint) (*domain.Chat, error) {
	if err := s.policy.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	chat, err := s.chats.FindByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanAccessChat(actor, chat); err != nil {
		return nil, err
	}
	return chat, nil
}
