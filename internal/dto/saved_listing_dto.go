package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/models"
	"github.com/google/uuid"
)

type SaveListingRequest struct {
	ListingID uuid.UUID `json:"listing_id"`
}

type SavedListingResponse struct {
	ID      uuid.UUID       `json:"id"`
	SavedAt time.Time       `json:"saved_at"`
	Listing ListingResponse `json:"listing"`
}

func NewSavedListingResponse(s *models.SavedListing) SavedListingResponse {
	return SavedListingResponse{
		ID:      s.ID,
		SavedAt: s.SavedAt,
		Listing: NewListingResponse(&s.Listing),
	}
}
