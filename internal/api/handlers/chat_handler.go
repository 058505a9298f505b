package handlers

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"Go-Recipe-Chat/domain"
	"Go-Recipe-Chat/entities"
	"Go-Recipe-Chat/internal/api/presenters"
	"Go-Recipe-Chat/internal/utils/logger"
	"Go-Recipe-Chat/pkg/chat"
)

type (
	ChatHandler interface {
		GetChat(c *fiber.Ctx) error
		GetUserChats(c *fiber.Ctx) error
		CreateChat(c *fiber.Ctx) error
		GetMessages(c *fiber.Ctx) error
		SendMessage(c *fiber.Ctx) error
		MarkAsRead(c *fiber.Ctx) error
	}

	// MessagePublisher pushes a stored message to the chat's live sockets.
	MessagePublisher interface {
		PublishMessage(ctx context.Context, message *entities.Message) error
	}

	chatHandler struct {
		chatService chat.ChatService
		publisher   MessagePublisher
		validator   *validator.Validate
		log         *logger.Logger
	}
)

func NewChatHandler(chatService chat.ChatService, publisher MessagePublisher, validator *validator.Validate, log *logger.Logger) ChatHandler {
	return &chatHandler{
		chatService: chatService,
		publisher:   publisher,
		validator:   validator,
		log:         log.With("handler", "ChatHandler"),
	}
}

func (h *chatHandler) GetChat(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetChat, err)
	}

	res, err := h.chatService.GetChat(c.Context(), id)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedGetChat, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetChat)
}

func (h *chatHandler) GetUserChats(c *fiber.Ctx) error {
	uid := strings.TrimSpace(c.Params("userId"))
	if uid == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetChats, domain.InvalidArgument("userId is required"))
	}

	res, err := h.chatService.GetUserChats(c.Context(), uid)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedGetChats, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetChats)
}

func (h *chatHandler) CreateChat(c *fiber.Ctx) error {
	req := new(domain.CreateChatRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateChat, err)
	}

	res, err := h.chatService.CreateChat(c.Context(), *req)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedCreateChat, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateChat)
}

func (h *chatHandler) GetMessages(c *fiber.Ctx) error {
	chatID, err := paramID(c, "chatId")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetMessages, err)
	}

	res, err := h.chatService.GetChatMessages(c.Context(), chatID)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedGetMessages, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMessages)
}

func (h *chatHandler) SendMessage(c *fiber.Ctx) error {
	chatID, err := paramID(c, "chatId")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSendMessage, err)
	}
	req := new(domain.SendMessageRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.ChatID = chatID
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSendMessage, err)
	}

	res, err := h.chatService.SendMessage(c.Context(), *req)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedSendMessage, err)
	}
	if h.publisher != nil {
		if err := h.publisher.PublishMessage(c.Context(), res); err != nil {
			h.log.Warn("publish message", "chatId", res.ChatID, "messageId", res.ID, "error", err)
		}
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessSendMessage)
}

func (h *chatHandler) MarkAsRead(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedMarkAsRead, err)
	}

	res, err := h.chatService.MarkMessageRead(c.Context(), id)
	if err != nil {
		return presenters.FailResponse(c, domain.MessageFailedMarkAsRead, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessMarkAsRead)
}
