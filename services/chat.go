package services

import (
	"github.com/criss159/fauna-kids/dto"
	"github.com/criss159/fauna-kids/lexicon"
	"github.com/criss159/fauna-kids/model"
	"github.com/criss159/fauna-kids/shared"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
)

// ChatService persists explorer conversations. Guests can chat but
// nothing of theirs is stored; their save and list calls succeed as
// defined no-ops so the client never needs a separate code path.
type ChatService struct {
	context.DefaultService

	sqlSvc      *PostgresService
	progressSvc *ProgressService
}

const CHAT_SVC = "chat_svc"

func (svc ChatService) Id() string {
	return CHAT_SVC
}

func (svc *ChatService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ChatService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.progressSvc = svc.Service(PROGRESS_SVC).(*ProgressService)
	return nil
}

// SaveChat stores the full message list, replacing whatever the chat
// held before. A chat id that does not exist or belongs to another user
// starts a fresh chat rather than failing.
func (svc *ChatService) SaveChat(userID string, isGuest bool, req dto.SaveChatRequest) (*dto.SaveChatResponse, error) {
	if isGuest {
		return &dto.SaveChatResponse{
			ChatID:  nil,
			Message: "Guest chats are not saved",
		}, nil
	}

	title := req.Title
	if title == "" {
		title = "Nueva conversación"
	}

	var chat *model.Chat
	if req.ChatID != nil && *req.ChatID != "" {
		existing, err := svc.sqlSvc.GetChat(*req.ChatID, userID)
		if err == nil {
			chat = existing
		} else if !IsNotFound(err) {
			return nil, shared.NewInternalError(err, "Failed to load chat")
		}
	}

	if chat == nil {
		created, err := svc.sqlSvc.CreateChat(&model.Chat{UserID: userID, Title: title})
		if err != nil {
			return nil, shared.NewInternalError(err, "Failed to create chat")
		}
		chat = created
	}

	messages := make([]model.ChatMessage, 0, len(req.Messages))
	animals := make([]string, 0, 2)
	for _, in := range req.Messages {
		messageType := in.MessageType
		if messageType == "" {
			messageType = shared.MessageTypeText
		}

		msg := model.ChatMessage{
			Role:        in.Role,
			MessageType: messageType,
			Text:        in.Text,
			ImageURL:    in.ImageURL,
			ImageAlt:    in.ImageAlt,
		}
		// Every message is scanned, assistant replies included; that is
		// where animal names usually appear.
		if animal := lexicon.DetectAnimal(in.Text); animal != "" {
			msg.AnimalMentioned = &animal
			animals = append(animals, animal)
		}
		messages = append(messages, msg)
	}

	if err := svc.sqlSvc.ReplaceChatMessages(chat.ID, title, messages); err != nil {
		return nil, shared.NewInternalError(err, "Failed to save chat")
	}

	for _, animal := range animals {
		svc.progressSvc.RegisterAnimalExplored(userID, animal)
	}
	svc.progressSvc.RegisterSessionCompleted(userID)

	saved, err := svc.sqlSvc.GetChatWithMessages(chat.ID, userID)
	if err != nil {
		log.WithError(err).WithField("chat_id", chat.ID).Warn("Failed to reload saved chat")
		saved = chat
	}

	return &dto.SaveChatResponse{
		ChatID:  &chat.ID,
		Chat:    saved,
		Message: "Chat guardado",
	}, nil
}

// ListChats returns the user's chats newest-first. Guests get an empty
// list, not an error.
func (svc *ChatService) ListChats(userID string, isGuest bool) ([]dto.ChatSummary, error) {
	if isGuest {
		return []dto.ChatSummary{}, nil
	}

	chats, err := svc.sqlSvc.ListChats(userID)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to list chats")
	}

	out := make([]dto.ChatSummary, 0, len(chats))
	for _, chat := range chats {
		count, err := svc.sqlSvc.CountMessagesInChat(chat.ID)
		if err != nil {
			return nil, shared.NewInternalError(err, "Failed to list chats")
		}
		out = append(out, dto.ChatSummary{
			ID:           chat.ID,
			Title:        chat.Title,
			MessageCount: int(count),
			UpdatedAt:    chat.UpdatedAt,
		})
	}
	return out, nil
}

func (svc *ChatService) GetChat(userID string, isGuest bool, chatID string) (*model.Chat, error) {
	if isGuest {
		return nil, shared.NewForbiddenError(nil, "Guests cannot load saved chats")
	}

	chat, err := svc.sqlSvc.GetChatWithMessages(chatID, userID)
	if err != nil {
		if IsNotFound(err) {
			return nil, shared.NewNotFoundError(err, "Chat not found")
		}
		return nil, shared.NewInternalError(err, "Failed to load chat")
	}
	return chat, nil
}

func (svc *ChatService) DeleteChat(userID string, isGuest bool, chatID string) error {
	if isGuest {
		return shared.NewForbiddenError(nil, "Guests cannot delete saved chats")
	}

	if err := svc.sqlSvc.DeleteChat(chatID, userID); err != nil {
		if IsNotFound(err) {
			return shared.NewNotFoundError(err, "Chat not found")
		}
		return shared.NewInternalError(err, "Failed to delete chat")
	}
	return nil
}
