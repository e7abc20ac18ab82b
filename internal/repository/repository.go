package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/models"
	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned by FindX lookups that match no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a unique index.
	ErrDuplicate = errors.New("duplicate record")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type ListingRepository interface {
	Create(ctx context.Context, listing *models.Listing) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Listing, error)
	FindAll(ctx context.Context) ([]models.Listing, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Listing, error)
}

type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	// FindBetween returns messages exchanged by a and b in either direction,
	// oldest first.
	FindBetween(ctx context.Context, a, b uuid.UUID) ([]models.Message, error)
	// FindInvolving returns every message sent or received by userID, newest
	// first.
	FindInvolving(ctx context.Context, userID uuid.UUID) ([]models.Message, error)
}

type SavedListingRepository interface {
	Create(ctx context.Context, saved *models.SavedListing) error
	FindByUser(ctx context.Context, userID uuid.UUID) ([]models.SavedListing, error)
	FindByUserAndListing(ctx context.Context, userID, listingID uuid.UUID) (*models.SavedListing, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type ReviewRepository interface {
	Create(ctx context.Context, review *models.PropertyReview) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.PropertyReview, error)
	FindByListing(ctx context.Context, listingID uuid.UUID) ([]models.PropertyReview, error)
	ExistsByUserAndListing(ctx context.Context, userID, listingID uuid.UUID) (bool, error)
	Save(ctx context.Context, review *models.PropertyReview) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *models.RoommateProfile) error
	FindByUser(ctx context.Context, userID uuid.UUID) (*models.RoommateProfile, error)
	Save(ctx context.Context, profile *models.RoommateProfile) error
	// FindOthers pages through profiles not owned by userID, newest first.
	FindOthers(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.RoommateProfile, error)
}

type SystemLogRepository interface {
	CreateBatch(ctx context.Context, logs []models.SystemLog) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
