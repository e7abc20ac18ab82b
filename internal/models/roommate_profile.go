package models

import (
	"time"

	"github.com/google/uuid"
)

// RoommateProfile holds a user's roommate preferences. Every preference is
// optional; nil means "not stated".
type RoommateProfile struct {
	ID               uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Gender           *string   `gorm:"size:10" json:"gender,omitempty"`
	CleanlinessLevel *string   `gorm:"size:10" json:"cleanliness_level,omitempty"`
	Age              *int      `json:"age,omitempty"`
	Pets             *bool     `json:"pets,omitempty"`
	SmokingHabits    *bool     `json:"smoking_habits,omitempty"`
	Bio              *string   `gorm:"type:text" json:"bio,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	User             User      `gorm:"foreignKey:UserID" json:"-"`
}

func (RoommateProfile) TableName() string {
	return "roommate_profiles"
}
