package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/events"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Limits follow the listings table columns.
const (
	maxTitleLength          = 255
	maxPropertyTypeLength   = 50
	maxLocationLength       = 255
	maxSubleaseReasonLength = 500
	rentPriceScale          = 2
)

// rent_price is decimal(10,2).
var maxRentPrice = decimal.New(1, 8)

type ListingService struct {
	listings repository.ListingRepository
	users    repository.UserRepository
	events   events.Publisher
	metrics  *metrics.Metrics
}

func NewListingService(
	listings repository.ListingRepository,
	users repository.UserRepository,
	publisher events.Publisher,
	m *metrics.Metrics,
) *ListingService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &ListingService{listings: listings, users: users, events: publisher, metrics: m}
}

// CreateListing validates the request, resolves the owner and stores either a
// standard or a sublease listing. Nothing is written when validation or the
// owner lookup fails.
func (s *ListingService) CreateListing(ctx context.Context, req *dto.CreateListingRequest) (*models.Listing, error) {
	listing, err := buildListing(req)
	if err != nil {
		return nil, err
	}

	owner, err := s.users.FindByID(ctx, req.OwnerUserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find owner: %w", err)
	}

	if err := s.listings.Create(ctx, listing); err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}
	listing.Owner = *owner

	s.metrics.ListingCreated(string(listing.Kind))
	if err := s.events.Publish(ctx, events.SubjectListingCreated, events.ListingCreated{
		ListingID:  listing.ID,
		OwnerID:    listing.OwnerID,
		Kind:       string(listing.Kind),
		Title:      listing.Title,
		Location:   listing.Location,
		RentPrice:  listing.RentPrice.StringFixed(2),
		OccurredAt: time.Now().UTC(),
	}); err != nil {
		slog.Warn("failed to publish event", "subject", events.SubjectListingCreated, "listing_id", listing.ID, "error", err)
	}

	return listing, nil
}

func buildListing(req *dto.CreateListingRequest) (*models.Listing, error) {
	title := strings.TrimSpace(req.Title)
	propertyType := strings.TrimSpace(req.PropertyType)
	location := strings.TrimSpace(req.Location)

	switch {
	case req.OwnerUserID == uuid.Nil:
		return nil, invalid("owner_user_id is required")
	case title == "":
		return nil, invalid("title is required")
	case utf8.RuneCountInString(title) > maxTitleLength:
		return nil, invalid("title must be at most %d characters", maxTitleLength)
	case propertyType == "":
		return nil, invalid("property_type is required")
	case utf8.RuneCountInString(propertyType) > maxPropertyTypeLength:
		return nil, invalid("property_type must be at most %d characters", maxPropertyTypeLength)
	case location == "":
		return nil, invalid("location is required")
	case utf8.RuneCountInString(location) > maxLocationLength:
		return nil, invalid("location must be at most %d characters", maxLocationLength)
	case req.RentPrice.IsNegative():
		return nil, invalid("rent_price must not be negative")
	case !req.RentPrice.LessThan(maxRentPrice):
		return nil, invalid("rent_price must be less than %s", maxRentPrice.String())
	case !req.RentPrice.Equal(req.RentPrice.Round(rentPriceScale)):
		return nil, invalid("rent_price must have at most %d decimal places", rentPriceScale)
	case req.LeaseDuration <= 0:
		return nil, invalid("lease_duration must be positive")
	}

	start, err := time.Parse(dto.DateLayout, strings.TrimSpace(req.AvailStart))
	if err != nil {
		return nil, invalid("avail_start must be a date in YYYY-MM-DD format")
	}
	end, err := time.Parse(dto.DateLayout, strings.TrimSpace(req.AvailEnd))
	if err != nil {
		return nil, invalid("avail_end must be a date in YYYY-MM-DD format")
	}
	if start.After(end) {
		return nil, invalid("avail_start must not be after avail_end")
	}

	listing := &models.Listing{
		ID:            uuid.New(),
		OwnerID:       req.OwnerUserID,
		Kind:          models.ListingKindStandard,
		Title:         title,
		Description:   req.Description,
		PropertyType:  propertyType,
		Location:      location,
		RentPrice:     req.RentPrice,
		LeaseDuration: req.LeaseDuration,
		AvailStart:    datatypes.Date(start),
		AvailEnd:      datatypes.Date(end),
		Image:         req.Image,
	}

	if req.IsSublease {
		reason := strings.TrimSpace(req.SubleaseReason)
		if reason == "" {
			return nil, invalid("sublease_reason is required for a sublease")
		}
		if utf8.RuneCountInString(reason) > maxSubleaseReasonLength {
			return nil, invalid("sublease_reason must be at most %d characters", maxSubleaseReasonLength)
		}
		listing.Kind = models.ListingKindSublease
		listing.SubleaseReason = &reason
	}

	return listing, nil
}

// GetAllListings returns every listing of either kind, newest first.
func (s *ListingService) GetAllListings(ctx context.Context) ([]models.Listing, error) {
	listings, err := s.listings.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	return listings, nil
}

func (s *ListingService) GetListing(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	listing, err := s.listings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to find listing: %w", err)
	}
	return listing, nil
}

func (s *ListingService) GetListingsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Listing, error) {
	listings, err := s.listings.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owner listings: %w", err)
	}
	return listings, nil
}
