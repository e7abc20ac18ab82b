package dto

import (
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/models"
	"github.com/google/uuid"
)

// ProfileRequest carries roommate preferences. Nil fields are left untouched
// on update.
type ProfileRequest struct {
	Gender           *string `json:"gender,omitempty"`
	CleanlinessLevel *string `json:"cleanliness_level,omitempty"`
	Age              *int    `json:"age,omitempty"`
	Pets             *bool   `json:"pets,omitempty"`
	SmokingHabits    *bool   `json:"smoking_habits,omitempty"`
	Bio              *string `json:"bio,omitempty"`
}

type ProfileResponse struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	Username         string    `json:"username,omitempty"`
	Gender           *string   `json:"gender,omitempty"`
	CleanlinessLevel *string   `json:"cleanliness_level,omitempty"`
	Age              *int      `json:"age,omitempty"`
	Pets             *bool     `json:"pets,omitempty"`
	SmokingHabits    *bool     `json:"smoking_habits,omitempty"`
	Bio              *string   `json:"bio,omitempty"`
}

func NewProfileResponse(p *models.RoommateProfile) ProfileResponse {
	return ProfileResponse{
		ID:               p.ID,
		UserID:           p.UserID,
		Username:         p.User.Username,
		Gender:           p.Gender,
		CleanlinessLevel: p.CleanlinessLevel,
		Age:              p.Age,
		Pets:             p.Pets,
		SmokingHabits:    p.SmokingHabits,
		Bio:              p.Bio,
	}
}
