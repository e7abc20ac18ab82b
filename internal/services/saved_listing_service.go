package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/repository"
	"github.com/google/uuid"
)

type SavedListingService struct {
	saved    repository.SavedListingRepository
	listings repository.ListingRepository
}

func NewSavedListingService(saved repository.SavedListingRepository, listings repository.ListingRepository) *SavedListingService {
	return &SavedListingService{saved: saved, listings: listings}
}

func (s *SavedListingService) Save(ctx context.Context, userID, listingID uuid.UUID) (*models.SavedListing, error) {
	listing, err := s.listings.FindByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to find listing: %w", err)
	}

	saved := models.SavedListing{
		ID:        uuid.New(),
		UserID:    userID,
		ListingID: listingID,
		SavedAt:   time.Now().UTC(),
	}
	if err := s.saved.Create(ctx, &saved); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadySaved
		}
		return nil, fmt.Errorf("failed to save listing: %w", err)
	}

	saved.Listing = *listing
	return &saved, nil
}

func (s *SavedListingService) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.SavedListing, error) {
	saved, err := s.saved.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved listings: %w", err)
	}
	return saved, nil
}

// Get returns the user's saved entry for a listing, if any.
func (s *SavedListingService) Get(ctx context.Context, userID, listingID uuid.UUID) (*models.SavedListing, error) {
	saved, err := s.saved.FindByUserAndListing(ctx, userID, listingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSavedListingNotFound
		}
		return nil, fmt.Errorf("failed to find saved listing: %w", err)
	}
	return saved, nil
}

func (s *SavedListingService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.saved.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSavedListingNotFound
		}
		return fmt.Errorf("failed to delete saved listing: %w", err)
	}
	return nil
}
