package sqldb

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/domain"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// CreateWithMessage inserts a chat and its opening message in one transaction.
func (r *ChatRepository) CreateWithMessage(ctx context.Context, chat *domain.Chat, first *domain.Message) (*domain.Chat, error) {
	if chat.SenderID == chat.ReceiverID {
		return nil, fmt.Errorf("chat needs two distinct participants: %w", domain.ErrValidation)
	}
	rec := &chatRecord{
		SenderID:     chat.SenderID,
		SenderName:   chat.SenderName,
		ReceiverID:   chat.ReceiverID,
		ReceiverName: chat.ReceiverName,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Messages").Create(rec).Error; err != nil {
			return fmt.Errorf("insert chat: %w", err)
		}
		msg := messageRecord{ChatID: rec.ID, AuthorName: first.AuthorName, Body: first.Body, DatePosted: first.DatePosted}
		if err := tx.Create(&msg).Error; err != nil {
			return fmt.Errorf("insert message: %w", err)
		}
		rec.Messages = []messageRecord{msg}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec.toDomain(), nil
}

func (r *ChatRepository) FindByID(ctx context.Context, id uint) (*domain.Chat, error) {
	var rec chatRecord
	err := r.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB { return db.Order("messages.id") }).
		First(&rec, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrChatNotFound
		}
		return nil, err
	}
	return rec.toDomain(), nil
}

func (r *ChatRepository) AppendMessage(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	rec := &messageRecord{ChatID: msg.ChatID, AuthorName: msg.AuthorName, Body: msg.Body, DatePosted: msg.DatePosted}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	return rec.toDomain(), nil
}

// ListByParticipant returns chats without their messages.
func (r *ChatRepository) ListByParticipant(ctx context.Context, userID uint) ([]*domain.Chat, error) {
	var recs []chatRecord
	err := r.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("id").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Chat, 0, len(recs))
	for i := range recs {
		out = append(out, recs[i].toDomain())
	}
	return out, nil
}
