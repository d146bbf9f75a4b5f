package domain

// Chat is a conversation between two users. The participant names are a
// display snapshot taken when the chat was composed and are not refreshed
// when a user later changes their name.
type Chat struct {
	ID           uint      `json:"id"`
	SenderID     uint      `json:"sender_id"`
	SenderName   string    `json:"sender_name"`
	ReceiverID   uint      `json:"receiver_id"`
	ReceiverName string    `json:"receiver_name"`
	Messages     []Message `json:"messages,omitempty"`
}

// HasParticipant reports whether userID is one of the two chat members.
func (c *Chat) HasParticipant(userID uint) bool {
	return userID != 0 && (c.SenderID == userID || c.ReceiverID == userID)
}

// Message is one entry in a chat. AuthorName is a snapshot, not a user link.
type Message struct {
	ID         uint   `json:"id"`
	ChatID     uint   `json:"chat_id"`
	AuthorName string `json:"author_name"`
	Body       string `json:"body"`
	DatePosted string `json:"date_posted"`
}
