package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/roomsync-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Handlers struct {
	Auth    *handlers.AuthHandler
	Health  *handlers.HealthHandler
	Listing *handlers.ListingHandler
	Message *handlers.MessageHandler
	Saved   *handlers.SavedListingHandler
	Review  *handlers.ReviewHandler
	Profile *handlers.ProfileHandler
	Metrics *metrics.Metrics

	// LimiterStorage backs the rate limiters; nil uses fiber's memory store.
	LimiterStorage fiber.Storage
}

func Setup(app *fiber.App, cfg *config.Config, h Handlers) {
	if h.Metrics != nil {
		app.Use(h.Metrics.Middleware())
		app.Get("/metrics", h.Metrics.Handler())
	}

	api := app.Group("/api")

	// General API rate limiter, per IP. Storage is shared through Redis when
	// configured, in-memory otherwise.
	api.Use(rateLimiter("api", cfg.RateLimitMax, h.LimiterStorage))

	api.Get("/health", h.Health.Check)

	// Auth, with a stricter limit
	auth := api.Group("/auth")
	auth.Use(rateLimiter("auth", cfg.AuthRateLimitMax, h.LimiterStorage))
	auth.Post("/signup", h.Auth.Signup)
	auth.Post("/login", h.Auth.Login)
	auth.Get("/user/:id", h.Auth.GetUser)
	auth.Get("/me", middleware.JWTProtected(cfg), h.Auth.Me)

	// Listings
	api.Post("/listings", h.Listing.Create)
	api.Post("/listings/create", h.Listing.Create)
	api.Get("/listings", h.Listing.List)
	api.Get("/listings/:id", h.Listing.Get)
	api.Get("/users/:id/listings", h.Listing.ListByOwner)

	// Messages, on behalf of the token subject only
	messages := api.Group("/messages", middleware.JWTProtected(cfg))
	messages.Post("/send", h.Message.Send)
	messages.Get("/conversation", h.Message.Conversation)
	messages.Get("/conversations", h.Message.Conversations)

	// Saved listings (caller's own)
	saved := api.Group("/saved-listings", middleware.JWTProtected(cfg))
	saved.Get("/", h.Saved.List)
	saved.Post("/", h.Saved.Save)
	saved.Get("/listing/:listingId", h.Saved.Check)
	saved.Delete("/:id", h.Saved.Delete)

	// Reviews: reads are public
	api.Get("/reviews/listing/:listingId", h.Review.ListByListing)
	api.Post("/reviews", middleware.JWTProtected(cfg), h.Review.Create)
	api.Put("/reviews/:id", middleware.JWTProtected(cfg), h.Review.Update)
	api.Delete("/reviews/:id", middleware.JWTProtected(cfg), h.Review.Delete)

	// Roommate profiles
	roommates := api.Group("/roommates", middleware.JWTProtected(cfg))
	roommates.Get("/profile", h.Profile.Get)
	roommates.Post("/profile", h.Profile.Create)
	roommates.Put("/profile", h.Profile.Update)
	roommates.Post("/preferences", h.Profile.Upsert)
	roommates.Get("/matches", h.Profile.Matches)
}

// rateLimiter keys on scope and client IP so limiters sharing one store do not
// count against each other.
func rateLimiter(scope string, max int, storage fiber.Storage) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               max,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return scope + ":" + c.IP() },
		Storage:           storage,
	})
}
