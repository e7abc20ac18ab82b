package repository

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/models"
	"gorm.io/gorm"
)

type GormSystemLogRepository struct {
	db *gorm.DB
}

func NewSystemLogRepository(db *gorm.DB) *GormSystemLogRepository {
	return &GormSystemLogRepository{db: db}
}

func (r *GormSystemLogRepository) CreateBatch(ctx context.Context, logs []models.SystemLog) error {
	return translate("store system logs", r.db.WithContext(ctx).CreateInBatches(logs, 50).Error)
}

func (r *GormSystemLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	if result.Error != nil {
		return 0, translate("prune system logs", result.Error)
	}
	return result.RowsAffected, nil
}
