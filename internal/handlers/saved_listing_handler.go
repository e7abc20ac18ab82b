package handlers

import (
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SavedListingHandler struct {
	savedService *services.SavedListingService
}

func NewSavedListingHandler(savedService *services.SavedListingService) *SavedListingHandler {
	return &SavedListingHandler{savedService: savedService}
}

func (h *SavedListingHandler) Save(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.SaveListingRequest
	if err := c.BodyParser(&req); err != nil || req.ListingID == uuid.Nil {
		return badRequest(c, "listing_id is required")
	}

	saved, err := h.savedService.Save(c.UserContext(), userID, req.ListingID)
	if err != nil {
		return respondError(c, err, "save listing")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewSavedListingResponse(saved))
}

func (h *SavedListingHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	saved, err := h.savedService.ListByUser(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err, "list saved listings")
	}

	resp := make([]dto.SavedListingResponse, 0, len(saved))
	for i := range saved {
		resp = append(resp, dto.NewSavedListingResponse(&saved[i]))
	}
	return c.JSON(resp)
}

// Check reports whether the caller has saved the listing in :listingId.
func (h *SavedListingHandler) Check(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	listingID, ok := parseUUIDParam(c, "listingId")
	if !ok {
		return badRequest(c, "Invalid listing id")
	}

	saved, err := h.savedService.Get(c.UserContext(), userID, listingID)
	if err != nil {
		return respondError(c, err, "get saved listing")
	}
	return c.JSON(fiber.Map{"saved": true, "id": saved.ID})
}

func (h *SavedListingHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid saved listing id")
	}

	if err := h.savedService.Delete(c.UserContext(), userID, id); err != nil {
		return respondError(c, err, "delete saved listing")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
