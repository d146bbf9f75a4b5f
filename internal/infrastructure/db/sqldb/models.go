package sqldb

import (
	"time"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/domain"
)

type userRecord struct {
	ID              uint   `gorm:"primaryKey"`
	Email           string `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash    string `gorm:"size:255;not null"`
	Name            string `gorm:"size:255;not null"`
	PayoutAccountID string `gorm:"size:255;not null"`
	Role            string `gorm:"size:16;not null;default:member"`
	CreatedAt       time.Time
}

func (userRecord) TableName() string { return "users" }

func (r *userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:              r.ID,
		Email:           r.Email,
		PasswordHash:    r.PasswordHash,
		Name:            r.Name,
		PayoutAccountID: r.PayoutAccountID,
		Role:            domain.Role(r.Role),
		CreatedAt:       r.CreatedAt,
	}
}

type productRecord struct {
	ID          uint           `gorm:"primaryKey"`
	OwnerID     uint           `gorm:"not null;index"`
	Title       string         `gorm:"size:250;not null;uniqueIndex"`
	Price       string         `gorm:"size:32;not null"`
	Stock       int            `gorm:"not null;default:0"`
	Description string         `gorm:"type:text;not null"`
	ImageURL    string         `gorm:"size:512"`
	DatePosted  string         `gorm:"size:64;not null"`
	Reviews     []reviewRecord `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (productRecord) TableName() string { return "products" }

func (r *productRecord) toDomain() *domain.Product {
	return &domain.Product{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Title:       r.Title,
		Price:       r.Price,
		Stock:       r.Stock,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		DatePosted:  r.DatePosted,
	}
}

func newProductRecord(p *domain.Product) *productRecord {
	return &productRecord{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Title:       p.Title,
		Price:       p.Price,
		Stock:       p.Stock,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		DatePosted:  p.DatePosted,
	}
}

type reviewRecord struct {
	ID        uint   `gorm:"primaryKey"`
	ProductID uint   `gorm:"not null;index"`
	AuthorID  uint   `gorm:"not null;index"`
	Text      string `gorm:"type:text;not null"`
}

func (reviewRecord) TableName() string { return "reviews" }

func (r *reviewRecord) toDomain() *domain.Review {
	return &domain.Review{ID: r.ID, ProductID: r.ProductID, AuthorID: r.AuthorID, Text: r.Text}
}

type chatRecord struct {
	ID           uint            `gorm:"primaryKey"`
	SenderID     uint            `gorm:"not null;index"`
	SenderName   string          `gorm:"size:255;not null"`
	ReceiverID   uint            `gorm:"not null;index"`
	ReceiverName string          `gorm:"size:255;not null"`
	Messages     []messageRecord `gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE"`
}

func (chatRecord) TableName() string { return "chats" }

func (r *chatRecord) toDomain() *domain.Chat {
	c := &domain.Chat{
		ID:           r.ID,
		SenderID:     r.SenderID,
		SenderName:   r.SenderName,
		ReceiverID:   r.ReceiverID,
		ReceiverName: r.ReceiverName,
	}
	for i := range r.Messages {
		c.Messages = append(c.Messages, *r.Messages[i].toDomain())
	}
	return c
}

type messageRecord struct {
	ID         uint   `gorm:"primaryKey"`
	ChatID     uint   `gorm:"not null;index"`
	AuthorName string `gorm:"size:255;not null"`
	Body       string `gorm:"type:text;not null"`
	DatePosted string `gorm:"size:64;not null"`
}

func (messageRecord) TableName() string { return "messages" }

func (r *messageRecord) toDomain() *domain.Message {
	return &domain.Message{ID: r.ID, ChatID: r.ChatID, AuthorName: r.AuthorName, Body: r.Body, DatePosted: r.DatePosted}
}
