package repository

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

func (r *GormMessageRepository) Create(ctx context.Context, msg *models.Message) error {
	err := r.db.WithContext(ctx).Omit("Sender", "Receiver").Create(msg).Error
	return translate("create message", err)
}

func (r *GormMessageRepository) FindBetween(ctx context.Context, a, b uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a).
		Order("timestamp ASC").
		Find(&messages).Error
	if err != nil {
		return nil, translate("find conversation", err)
	}
	return messages, nil
}

func (r *GormMessageRepository) FindInvolving(ctx context.Context, userID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("timestamp DESC").
		Find(&messages).Error
	if err != nil {
		return nil, translate("find messages for user", err)
	}
	return messages, nil
}
