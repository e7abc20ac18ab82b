package handlers

import (
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ListingHandler struct {
	listingService *services.ListingService
}

func NewListingHandler(listingService *services.ListingService) *ListingHandler {
	return &ListingHandler{listingService: listingService}
}

func (h *ListingHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateListingRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	listing, err := h.listingService.CreateListing(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err, "create listing")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewListingResponse(listing))
}

func (h *ListingHandler) List(c *fiber.Ctx) error {
	listings, err := h.listingService.GetAllListings(c.UserContext())
	if err != nil {
		return respondError(c, err, "list listings")
	}
	return c.JSON(dto.NewListingResponses(listings))
}

func (h *ListingHandler) Get(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid listing id")
	}

	listing, err := h.listingService.GetListing(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "get listing")
	}
	return c.JSON(dto.NewListingResponse(listing))
}

func (h *ListingHandler) ListByOwner(c *fiber.Ctx) error {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid user id")
	}

	listings, err := h.listingService.GetListingsByOwner(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "list owner listings")
	}
	return c.JSON(dto.NewListingResponses(listings))
}
