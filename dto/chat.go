package dto

import (
	"time"

	"github.com/criss159/fauna-kids/model"
)

type ChatMessageInput struct {
	Role        string `json:"role" validate:"required,oneof=user assistant"`
	MessageType string `json:"message_type" validate:"omitempty,oneof=text image"`
	Text        string `json:"text"`
	ImageURL    string `json:"image_url"`
	ImageAlt    string `json:"image_alt" validate:"max=500"`
}

// SaveChatRequest carries the full message list. Saving replaces every
// stored message of the chat; it is not an append.
type SaveChatRequest struct {
	ChatID   *string            `json:"chat_id"`
	Title    string             `json:"title" validate:"max=200"`
	Messages []ChatMessageInput `json:"messages" validate:"dive"`
}

func (r SaveChatRequest) Validate() error {
	return GetValidator().Struct(r)
}

type SaveChatResponse struct {
	ChatID  *string     `json:"chat_id"`
	Chat    *model.Chat `json:"chat,omitempty"`
	Message string      `json:"message,omitempty"`
}

type ChatSummary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	MessageCount int       `json:"message_count"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type AnimalExploredResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	TimesExplored   int       `json:"times_explored"`
	IsFavorite      bool      `json:"is_favorite"`
	FirstExploredAt time.Time `json:"first_explored_at"`
	LastExploredAt  time.Time `json:"last_explored_at"`
}
