package handlers

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProfileHandler struct {
	profileService *services.ProfileService
}

func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	profile, err := h.profileService.Get(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err, "get profile")
	}
	return c.JSON(dto.NewProfileResponse(profile))
}

func (h *ProfileHandler) Create(c *fiber.Ctx) error {
	return h.write(c, fiber.StatusCreated, "create profile", h.profileService.Create)
}

func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	return h.write(c, fiber.StatusOK, "update profile", h.profileService.Update)
}

func (h *ProfileHandler) Upsert(c *fiber.Ctx) error {
	return h.write(c, fiber.StatusOK, "save preferences", h.profileService.Upsert)
}

func (h *ProfileHandler) Matches(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	profiles, err := h.profileService.Matches(c.UserContext(), userID, c.QueryInt("limit", 0), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, err, "list matches")
	}

	resp := make([]dto.ProfileResponse, 0, len(profiles))
	for i := range profiles {
		resp = append(resp, dto.NewProfileResponse(&profiles[i]))
	}
	return c.JSON(resp)
}

type profileWriter func(ctx context.Context, userID uuid.UUID, req *dto.ProfileRequest) (*models.RoommateProfile, error)

func (h *ProfileHandler) write(c *fiber.Ctx, status int, action string, fn profileWriter) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	profile, err := fn(c.UserContext(), userID, &req)
	if err != nil {
		return respondError(c, err, action)
	}
	return c.Status(status).JSON(dto.NewProfileResponse(profile))
}
