package ports

import (
	"context"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/domain"
)

type MessagingService interface {
	// Compose always opens a new chat, even when the pair already has one.
	Compose(ctx context.Context, actor domain.Actor, receiverID uint, body string) (*domain.Chat, error)
	AppendMessage(ctx context.Context, actor domain.Actor, chatID uint, body string) (*domain.Message, error)
	ListMyChats(ctx context.Context, actor domain.Actor) ([]*domain.Chat, error)
	GetChat(ctx context.Context, actor domain.Actor, chatID uint) (*domain.Chat, error)
}
