package repository

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

func (r *GormProfileRepository) Create(ctx context.Context, profile *models.RoommateProfile) error {
	err := r.db.WithContext(ctx).Omit("User").Create(profile).Error
	return translate("create roommate profile", err)
}

func (r *GormProfileRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*models.RoommateProfile, error) {
	var profile models.RoommateProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, translate("find roommate profile", err)
	}
	return &profile, nil
}

func (r *GormProfileRepository) Save(ctx context.Context, profile *models.RoommateProfile) error {
	err := r.db.WithContext(ctx).Omit("User").Save(profile).Error
	return translate("update roommate profile", err)
}

func (r *GormProfileRepository) FindOthers(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.RoommateProfile, error) {
	var profiles []models.RoommateProfile
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id <> ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&profiles).Error
	if err != nil {
		return nil, translate("list roommate profiles", err)
	}
	return profiles, nil
}
