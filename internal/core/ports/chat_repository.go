package ports

import (
	"context"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/domain"
)

// ChatRepository defines persistence operations for chats and messages.
type ChatRepository interface {
	// CreateWithMessage inserts a new chat and its first message atomically.
	CreateWithMessage(ctx context.Context, chat *domain.Chat, first *domain.Message) (*domain.Chat, error)
	// FindByID returns the chat with its messages in insertion order.
	FindByID(ctx context.Context, id uint) (*domain.Chat, error)
	AppendMessage(ctx context.Context, msg *domain.Message) (*domain.Message, error)
	// ListByParticipant returns chats where userID is either participant.
	ListByParticipant(ctx context.Context, userID uint) ([]*domain.Chat, error)
}
