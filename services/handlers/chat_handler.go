package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/criss159/fauna-kids/dto"
	"github.com/criss159/fauna-kids/shared"
)

type ChatHandler struct {
	chatSvc     ChatServiceInterface
	progressSvc ProgressServiceInterface
}

func NewChatHandler(chatSvc ChatServiceInterface, progressSvc ProgressServiceInterface) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc, progressSvc: progressSvc}
}

// @Summary Save a chat
// @Description Replace the chat's messages with the submitted list; guests get a successful no-op
// @Tags chats
// @Accept json
// @Produce json
// @Security Bearer
// @Param saveRequest body dto.SaveChatRequest true "Chat with full message list"
// @Success 200 {object} shared.Response{data=dto.SaveChatResponse}
// @Router /api/v1/explorer/chats/save [post]
func (h *ChatHandler) SaveChat(c *fiber.Ctx) error {
	var req dto.SaveChatRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "JSON inválido")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	userID, isGuest := requestIdentity(c)
	resp, err := h.chatSvc.SaveChat(userID, isGuest, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary List chats
// @Description The user's chats newest-first; guests get an empty list
// @Tags chats
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=[]dto.ChatSummary}
// @Router /api/v1/explorer/chats [get]
func (h *ChatHandler) ListChats(c *fiber.Ctx) error {
	userID, isGuest := requestIdentity(c)
	chats, err := h.chatSvc.ListChats(userID, isGuest)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", chats)
}

// @Summary Get a chat
// @Description One chat with its messages in order
// @Tags chats
// @Produce json
// @Security Bearer
// @Param chatId path string true "Chat ID"
// @Success 200 {object} shared.Response{data=model.Chat}
// @Router /api/v1/explorer/chats/{chatId} [get]
func (h *ChatHandler) GetChat(c *fiber.Ctx) error {
	userID, isGuest := requestIdentity(c)
	chat, err := h.chatSvc.GetChat(userID, isGuest, c.Params("chatId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", chat)
}

// @Summary Delete a chat
// @Tags chats
// @Produce json
// @Security Bearer
// @Param chatId path string true "Chat ID"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/explorer/chats/{chatId} [delete]
func (h *ChatHandler) DeleteChat(c *fiber.Ctx) error {
	userID, isGuest := requestIdentity(c)
	if err := h.chatSvc.DeleteChat(userID, isGuest, c.Params("chatId")); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Chat deleted", nil)
}

// @Summary Explored animals
// @Description Every animal the user has asked about, most recent first
// @Tags chats
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=[]dto.AnimalExploredResponse}
// @Router /api/v1/explorer/animals [get]
func (h *ChatHandler) GetAnimals(c *fiber.Ctx) error {
	userID, isGuest := requestIdentity(c)
	if isGuest {
		return shared.ResponseJSON(c, http.StatusOK, "Success", []dto.AnimalExploredResponse{})
	}

	animals, err := h.progressSvc.GetAnimalsExplored(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", animals)
}
