package handlers

import (
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil || req.ListingID == uuid.Nil {
		return badRequest(c, "listing_id is required")
	}

	review, err := h.reviewService.Create(c.UserContext(), userID, &req)
	if err != nil {
		return respondError(c, err, "create review")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewReviewResponse(review))
}

func (h *ReviewHandler) ListByListing(c *fiber.Ctx) error {
	listingID, ok := parseUUIDParam(c, "listingId")
	if !ok {
		return badRequest(c, "Invalid listing id")
	}

	reviews, err := h.reviewService.ListByListing(c.UserContext(), listingID)
	if err != nil {
		return respondError(c, err, "list reviews")
	}

	resp := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		resp = append(resp, dto.NewReviewResponse(&reviews[i]))
	}
	return c.JSON(resp)
}

func (h *ReviewHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid review id")
	}

	var req dto.UpdateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	review, err := h.reviewService.Update(c.UserContext(), userID, id, &req)
	if err != nil {
		return respondError(c, err, "update review")
	}
	return c.JSON(dto.NewReviewResponse(review))
}

func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return badRequest(c, "Invalid review id")
	}

	if err := h.reviewService.Delete(c.UserContext(), userID, id); err != nil {
		return respondError(c, err, "delete review")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
