package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/repository"
	"github.com/google/uuid"
)

type ReviewService struct {
	reviews  repository.ReviewRepository
	listings repository.ListingRepository
}

func NewReviewService(reviews repository.ReviewRepository, listings repository.ListingRepository) *ReviewService {
	return &ReviewService{reviews: reviews, listings: listings}
}

func (s *ReviewService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateReviewRequest) (*models.PropertyReview, error) {
	if err := validateRating(req.Rating); err != nil {
		return nil, err
	}

	if _, err := s.listings.FindByID(ctx, req.ListingID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to find listing: %w", err)
	}

	exists, err := s.reviews.ExistsByUserAndListing(ctx, userID, req.ListingID)
	if err != nil {
		return nil, fmt.Errorf("failed to check review: %w", err)
	}
	if exists {
		return nil, ErrAlreadyReviewed
	}

	review := models.PropertyReview{
		ID:        uuid.New(),
		UserID:    userID,
		ListingID: req.ListingID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.reviews.Create(ctx, &review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyReviewed
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return &review, nil
}

func (s *ReviewService) ListByListing(ctx context.Context, listingID uuid.UUID) ([]models.PropertyReview, error) {
	reviews, err := s.reviews.FindByListing(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// Update changes the rating and/or comment of a review the user wrote.
func (s *ReviewService) Update(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateReviewRequest) (*models.PropertyReview, error) {
	if err := validateRating(req.Rating); err != nil {
		return nil, err
	}

	review, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if req.Rating != nil {
		review.Rating = req.Rating
	}
	if req.Comment != nil {
		review.Comment = req.Comment
	}

	if err := s.reviews.Save(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.findOwned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.reviews.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}

// findOwned hides reviews written by someone else behind ErrReviewNotFound.
func (s *ReviewService) findOwned(ctx context.Context, userID, id uuid.UUID) (*models.PropertyReview, error) {
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to find review: %w", err)
	}
	if review.UserID != userID {
		return nil, ErrReviewNotFound
	}
	return review, nil
}

func validateRating(rating *int) error {
	if rating != nil && (*rating < 1 || *rating > 5) {
		return invalid("rating must be between 1 and 5")
	}
	return nil
}
