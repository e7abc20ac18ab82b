package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username       string    `gorm:"size:50;not null" json:"username"`
	Email          string    `gorm:"size:100;not null;uniqueIndex:idx_users_email" json:"email"`
	PasswordHash   string    `gorm:"size:255;not null" json:"-"`
	PhoneNumber    string    `gorm:"size:20" json:"phone_number"`
	ProfilePicture *string   `gorm:"size:255" json:"profile_picture,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
