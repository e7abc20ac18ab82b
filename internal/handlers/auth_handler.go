package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService  *services.AuthService
	tokenService *services.TokenService
}

func NewAuthHandler(authService *services.AuthService, tokenService *services.TokenService) *AuthHandler {
	return &AuthHandler{authService: authService, tokenService: tokenService}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.authService.Register(c.UserContext(), &req)
	if err != nil {
		// Existing clients expect 400 for a taken email.
		if errors.Is(err, services.ErrEmailTaken) {
			return badRequest(c, "Email already exists")
		}
		return respondError(c, err, "signup")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SignupResponse{Email: user.Email})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid credentials",
			})
		}
		return respondError(c, err, "login")
	}

	token, expiresAt, err := h.tokenService.Issue(user)
	if err != nil {
		return respondError(c, err, "login")
	}

	return c.JSON(dto.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        dto.NewUserResponse(user),
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	user, err := h.authService.GetUser(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err, "get current user")
	}
	return c.JSON(dto.NewUserResponse(user))
}

func (h *AuthHandler) GetUser(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid user id")
	}

	user, err := h.authService.GetUser(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "get user")
	}
	return c.JSON(dto.NewUserResponse(user))
}
