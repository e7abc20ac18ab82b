package handlers

import (
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// MessageHandler serves the message routes. All of them run behind
// JWTProtected and only act on behalf of the token subject.
type MessageHandler struct {
	messageService *services.MessageService
}

func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// Send stores a message from the caller. sender_id may be omitted; when present
// it must name the caller.
func (h *MessageHandler) Send(c *fiber.Ctx) error {
	callerID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.SenderID == uuid.Nil {
		req.SenderID = callerID
	}
	if req.SenderID != callerID {
		return forbidden(c, "Cannot send messages as another user")
	}
	if req.ReceiverID == uuid.Nil {
		return badRequest(c, "receiver_id is required")
	}

	msg, err := h.messageService.SendMessage(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err, "send message")
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

// Conversation returns the history between user1 and user2. The caller must be
// one of them.
func (h *MessageHandler) Conversation(c *fiber.Ctx) error {
	callerID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	a, errA := uuid.Parse(c.Query("user1"))
	b, errB := uuid.Parse(c.Query("user2"))
	if errA != nil || errB != nil {
		return badRequest(c, "user1 and user2 must be valid user ids")
	}
	if callerID != a && callerID != b {
		return forbidden(c, "Cannot read another user's conversation")
	}

	msgs, err := h.messageService.GetConversation(c.UserContext(), a, b)
	if err != nil {
		return respondError(c, err, "get conversation")
	}
	return c.JSON(msgs)
}

func (h *MessageHandler) Conversations(c *fiber.Ctx) error {
	callerID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	userID := callerID
	if raw := c.Query("user_id"); raw != "" {
		if userID, err = uuid.Parse(raw); err != nil {
			return badRequest(c, "user_id must be a valid user id")
		}
	}
	if userID != callerID {
		return forbidden(c, "Cannot list another user's conversations")
	}

	summaries, err := h.messageService.ListConversations(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err, "list conversations")
	}
	return c.JSON(summaries)
}
