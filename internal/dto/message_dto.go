package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendMessageRequest struct {
	SenderID   uuid.UUID `json:"sender_id"`
	ReceiverID uuid.UUID `json:"receiver_id"`
	Content    string    `json:"content"`
}

type ConversationSummary struct {
	PartnerID       uuid.UUID `json:"partner_id"`
	PartnerUsername string    `json:"partner_username"`
	LastMessage     string    `json:"last_message"`
	LastMessageAt   time.Time `json:"last_message_at"`
}
