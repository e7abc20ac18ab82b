package services

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/repository"
	"github.com/google/uuid"
)

const (
	defaultMatchLimit = 20
	maxMatchLimit     = 100
	maxPreferenceLen  = 10
)

type ProfileService struct {
	profiles repository.ProfileRepository
}

func NewProfileService(profiles repository.ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

func (s *ProfileService) Create(ctx context.Context, userID uuid.UUID, req *dto.ProfileRequest) (*models.RoommateProfile, error) {
	if err := validateProfile(req); err != nil {
		return nil, err
	}

	profile := models.RoommateProfile{ID: uuid.New(), UserID: userID}
	applyProfile(&profile, req)

	if err := s.profiles.Create(ctx, &profile); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrProfileExists
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return &profile, nil
}

func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*models.RoommateProfile, error) {
	profile, err := s.profiles.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return profile, nil
}

// Update applies the non-nil fields of req to an existing profile.
func (s *ProfileService) Update(ctx context.Context, userID uuid.UUID, req *dto.ProfileRequest) (*models.RoommateProfile, error) {
	if err := validateProfile(req); err != nil {
		return nil, err
	}

	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	applyProfile(profile, req)

	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return profile, nil
}

// Upsert updates the user's profile or creates it when none exists.
func (s *ProfileService) Upsert(ctx context.Context, userID uuid.UUID, req *dto.ProfileRequest) (*models.RoommateProfile, error) {
	profile, err := s.Update(ctx, userID, req)
	if errors.Is(err, ErrProfileNotFound) {
		return s.Create(ctx, userID, req)
	}
	return profile, err
}

// Matches pages through other users' profiles, newest first.
func (s *ProfileService) Matches(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.RoommateProfile, error) {
	if limit <= 0 {
		limit = defaultMatchLimit
	}
	if limit > maxMatchLimit {
		limit = maxMatchLimit
	}
	if offset < 0 {
		offset = 0
	}

	profiles, err := s.profiles.FindOthers(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

func validateProfile(req *dto.ProfileRequest) error {
	if req.Gender != nil && utf8.RuneCountInString(*req.Gender) > maxPreferenceLen {
		return invalid("gender must be at most %d characters", maxPreferenceLen)
	}
	if req.CleanlinessLevel != nil && utf8.RuneCountInString(*req.CleanlinessLevel) > maxPreferenceLen {
		return invalid("cleanliness_level must be at most %d characters", maxPreferenceLen)
	}
	if req.Age != nil && (*req.Age < 0 || *req.Age > 150) {
		return invalid("age must be between 0 and 150")
	}
	return nil
}

func applyProfile(p *models.RoommateProfile, req *dto.ProfileRequest) {
	if req.Gender != nil {
		p.Gender = req.Gender
	}
	if req.CleanlinessLevel != nil {
		p.CleanlinessLevel = req.CleanlinessLevel
	}
	if req.Age != nil {
		p.Age = req.Age
	}
	if req.Pets != nil {
		p.Pets = req.Pets
	}
	if req.SmokingHabits != nil {
		p.SmokingHabits = req.SmokingHabits
	}
	if req.Bio != nil {
		p.Bio = req.Bio
	}
}
