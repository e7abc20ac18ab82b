package models

import (
	"time"

	"github.com/google/uuid"
)

type SavedListing struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_saved_user_listing,priority:1" json:"user_id"`
	ListingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_saved_user_listing,priority:2;index" json:"listing_id"`
	SavedAt   time.Time `gorm:"not null;index" json:"saved_at"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	Listing   Listing   `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE" json:"listing"`
}

func (SavedListing) TableName() string {
	return "saved_listings"
}
