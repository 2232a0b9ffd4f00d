package model

import "time"

type Chat struct {
	ID     string `json:"id" gorm:"primaryKey"`
	UserID string `json:"user_id" gorm:"index;not null"`

	Title string `json:"title" gorm:"size:200;default:Nueva conversación"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"index"`

	Messages []ChatMessage `json:"messages" gorm:"constraint:OnDelete:CASCADE"`
}

// ChatMessage rows are replaced wholesale on every chat save, so their
// CreatedAt ordering is the single source of message order.
type ChatMessage struct {
	ID     string `json:"id" gorm:"primaryKey"`
	ChatID string `json:"chat_id" gorm:"index:idx_chat_created;not null"`

	Role        string `json:"role" gorm:"size:20;not null"`
	MessageType string `json:"message_type" gorm:"size:20;default:text"`

	Text     string `json:"text"`
	ImageURL string `json:"image_url,omitempty"`
	ImageAlt string `json:"image_alt,omitempty" gorm:"size:500"`

	AnimalMentioned *string `json:"animal_mentioned,omitempty" gorm:"size:100"`

	CreatedAt time.Time `json:"created_at" gorm:"index:idx_chat_created"`
}
