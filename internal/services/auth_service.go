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
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 8
	// bcrypt rejects longer input.
	maxPasswordBytes  = 72

	maxUsernameLength = 50
	maxEmailLength    = 100
	maxPhoneLength    = 20
)

type AuthService struct {
	users   repository.UserRepository
	events  events.Publisher
	metrics *metrics.Metrics
	cost    int
}

func NewAuthService(users repository.UserRepository, publisher events.Publisher, m *metrics.Metrics) *AuthService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &AuthService{
		users:   users,
		events:  publisher,
		metrics: m,
		cost:    bcrypt.DefaultCost,
	}
}

// Register creates a user with a bcrypt-hashed password. The unique index on
// email is the authoritative duplicate check; the lookup first only avoids
// hashing for a request that is bound to fail.
func (s *AuthService) Register(ctx context.Context, req *dto.SignupRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)
	username := strings.TrimSpace(req.Username)
	phone := strings.TrimSpace(req.PhoneNumber)

	switch {
	case username == "":
		return nil, invalid("username is required")
	case utf8.RuneCountInString(username) > maxUsernameLength:
		return nil, invalid("username must be at most %d characters", maxUsernameLength)
	case email == "":
		return nil, invalid("email is required")
	case utf8.RuneCountInString(email) > maxEmailLength:
		return nil, invalid("email must be at most %d characters", maxEmailLength)
	case utf8.RuneCountInString(phone) > maxPhoneLength:
		return nil, invalid("phone_number must be at most %d characters", maxPhoneLength)
	case len(req.Password) < minPasswordLength:
		return nil, invalid("password must be at least %d characters", minPasswordLength)
	case len(req.Password) > maxPasswordBytes:
		return nil, invalid("password must be at most %d bytes", maxPasswordBytes)
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		PhoneNumber:  phone,
	}

	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.metrics.UserRegistered()
	if err := s.events.Publish(ctx, events.SubjectUserRegistered, events.UserRegistered{
		UserID:     user.ID,
		Email:      user.Email,
		OccurredAt: time.Now().UTC(),
	}); err != nil {
		slog.Warn("failed to publish event", "subject", events.SubjectUserRegistered, "user_id", user.ID, "error", err)
	}

	return &user, nil
}

// Login returns the user whose email and password match. Unknown emails and
// wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.metrics.LoginFailed()
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.metrics.LoginFailed()
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
