package repository

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormSavedListingRepository struct {
	db *gorm.DB
}

func NewSavedListingRepository(db *gorm.DB) *GormSavedListingRepository {
	return &GormSavedListingRepository{db: db}
}

func (r *GormSavedListingRepository) Create(ctx context.Context, saved *models.SavedListing) error {
	err := r.db.WithContext(ctx).Omit("User", "Listing").Create(saved).Error
	return translate("save listing", err)
}

func (r *GormSavedListingRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]models.SavedListing, error) {
	var saved []models.SavedListing
	err := r.db.WithContext(ctx).
		Preload("Listing.Owner").
		Where("user_id = ?", userID).
		Order("saved_at DESC").
		Find(&saved).Error
	if err != nil {
		return nil, translate("list saved listings", err)
	}
	return saved, nil
}

func (r *GormSavedListingRepository) FindByUserAndListing(ctx context.Context, userID, listingID uuid.UUID) (*models.SavedListing, error) {
	var saved models.SavedListing
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		First(&saved).Error
	if err != nil {
		return nil, translate("find saved listing", err)
	}
	return &saved, nil
}

// Delete removes a saved listing owned by userID. A missing or foreign row
// yields ErrNotFound.
func (r *GormSavedListingRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.SavedListing{})
	if result.Error != nil {
		return translate("delete saved listing", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
