package repository

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

func (r *GormReviewRepository) Create(ctx context.Context, review *models.PropertyReview) error {
	err := r.db.WithContext(ctx).Omit("User", "Listing").Create(review).Error
	return translate("create review", err)
}

func (r *GormReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.PropertyReview, error) {
	var review models.PropertyReview
	if err := r.db.WithContext(ctx).Preload("User").First(&review, "id = ?", id).Error; err != nil {
		return nil, translate("find review", err)
	}
	return &review, nil
}

func (r *GormReviewRepository) FindByListing(ctx context.Context, listingID uuid.UUID) ([]models.PropertyReview, error) {
	var reviews []models.PropertyReview
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("listing_id = ?", listingID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, translate("list reviews", err)
	}
	return reviews, nil
}

func (r *GormReviewRepository) ExistsByUserAndListing(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PropertyReview{}).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Count(&count).Error
	if err != nil {
		return false, translate("count reviews", err)
	}
	return count > 0, nil
}

func (r *GormReviewRepository) Save(ctx context.Context, review *models.PropertyReview) error {
	err := r.db.WithContext(ctx).Omit("User", "Listing").Save(review).Error
	return translate("update review", err)
}

func (r *GormReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PropertyReview{}, "id = ?", id)
	if result.Error != nil {
		return translate("delete review", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
