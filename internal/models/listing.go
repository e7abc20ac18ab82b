package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ListingKind tags which variant a Listing row holds.
type ListingKind string

const (
	ListingKindStandard ListingKind = "standard"
	ListingKindSublease ListingKind = "sublease"
)

// Listing is stored single-table. SubleaseReason is non-nil only when Kind is
// ListingKindSublease.
type Listing struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OwnerID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"owner_id"`
	Kind           ListingKind     `gorm:"size:20;not null;default:'standard';index" json:"kind"`
	Title          string          `gorm:"size:255;not null" json:"title"`
	Description    string          `gorm:"type:text;not null" json:"description"`
	PropertyType   string          `gorm:"size:50;not null" json:"property_type"`
	Location       string          `gorm:"size:255;not null" json:"location"`
	RentPrice      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"rent_price"`
	LeaseDuration  int             `gorm:"not null" json:"lease_duration"`
	AvailStart     datatypes.Date  `gorm:"not null" json:"avail_start"`
	AvailEnd       datatypes.Date  `gorm:"not null" json:"avail_end"`
	Image          *string         `gorm:"type:text" json:"image,omitempty"`
	SubleaseReason *string         `gorm:"size:500" json:"sublease_reason,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Owner          User            `gorm:"foreignKey:OwnerID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (Listing) TableName() string {
	return "listings"
}

func (l *Listing) IsSublease() bool {
	return l.Kind == ListingKindSublease
}
