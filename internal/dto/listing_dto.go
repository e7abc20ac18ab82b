package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for availability dates.
const DateLayout = "2006-01-02"

type CreateListingRequest struct {
	OwnerUserID    uuid.UUID       `json:"owner_user_id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	PropertyType   string          `json:"property_type"`
	Location       string          `json:"location"`
	RentPrice      decimal.Decimal `json:"rent_price"`
	LeaseDuration  int             `json:"lease_duration"`
	AvailStart     string          `json:"avail_start"`
	AvailEnd       string          `json:"avail_end"`
	Image          *string         `json:"image,omitempty"`
	IsSublease     bool            `json:"is_sublease"`
	SubleaseReason string          `json:"sublease_reason,omitempty"`
}

type ListingResponse struct {
	ID             uuid.UUID       `json:"id"`
	OwnerUserID    uuid.UUID       `json:"owner_user_id"`
	Kind           string          `json:"kind"`
	IsSublease     bool            `json:"is_sublease"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	PropertyType   string          `json:"property_type"`
	Location       string          `json:"location"`
	RentPrice      decimal.Decimal `json:"rent_price"`
	LeaseDuration  int             `json:"lease_duration"`
	AvailStart     string          `json:"avail_start"`
	AvailEnd       string          `json:"avail_end"`
	Image          *string         `json:"image,omitempty"`
	SubleaseReason *string         `json:"sublease_reason,omitempty"`
	Owner          *UserResponse   `json:"owner,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

func NewListingResponse(l *models.Listing) ListingResponse {
	resp := ListingResponse{
		ID:            l.ID,
		OwnerUserID:   l.OwnerID,
		Kind:          string(l.Kind),
		IsSublease:    l.IsSublease(),
		Title:         l.Title,
		Description:   l.Description,
		PropertyType:  l.PropertyType,
		Location:      l.Location,
		RentPrice:     l.RentPrice,
		LeaseDuration: l.LeaseDuration,
		AvailStart:    time.Time(l.AvailStart).Format(DateLayout),
		AvailEnd:      time.Time(l.AvailEnd).Format(DateLayout),
		Image:         l.Image,
		CreatedAt:     l.CreatedAt,
	}
	if l.IsSublease() {
		resp.SubleaseReason = l.SubleaseReason
	}
	// Owner is only set when the association was loaded.
	if l.Owner.ID != uuid.Nil {
		owner := NewUserResponse(&l.Owner)
		resp.Owner = &owner
	}
	return resp
}

func NewListingResponses(listings []models.Listing) []ListingResponse {
	out := make([]ListingResponse, 0, len(listings))
	for i := range listings {
		out = append(out, NewListingResponse(&listings[i]))
	}
	return out
}
