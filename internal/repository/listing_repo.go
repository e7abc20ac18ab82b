package repository

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormListingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) *GormListingRepository {
	return &GormListingRepository{db: db}
}

// Create inserts the listing without touching the owner row.
func (r *GormListingRepository) Create(ctx context.Context, listing *models.Listing) error {
	err := r.db.WithContext(ctx).Omit("Owner").Create(listing).Error
	return translate("create listing", err)
}

func (r *GormListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	var listing models.Listing
	if err := r.db.WithContext(ctx).Preload("Owner").First(&listing, "id = ?", id).Error; err != nil {
		return nil, translate("find listing", err)
	}
	return &listing, nil
}

func (r *GormListingRepository) FindAll(ctx context.Context) ([]models.Listing, error) {
	var listings []models.Listing
	if err := r.db.WithContext(ctx).Preload("Owner").Order("created_at DESC").Find(&listings).Error; err != nil {
		return nil, translate("list listings", err)
	}
	return listings, nil
}

func (r *GormListingRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Listing, error) {
	var listings []models.Listing
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&listings).Error
	if err != nil {
		return nil, translate("list listings by owner", err)
	}
	return listings, nil
}
