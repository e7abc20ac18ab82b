// Package events publishes domain events for other services to consume.
// Publishing is fire-and-forget: callers log failures and carry on.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	SubjectListingCreated = "roomsync.listing.created"
	SubjectUserRegistered = "roomsync.user.registered"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, payload interface{}) error
}

type ListingCreated struct {
	ListingID  uuid.UUID `json:"listing_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Kind       string    `json:"kind"`
	Title      string    `json:"title"`
	Location   string    `json:"location"`
	RentPrice  string    `json:"rent_price"`
	OccurredAt time.Time `json:"occurred_at"`
}

type UserRegistered struct {
	UserID     uuid.UUID `json:"user_id"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, interface{}) error { return nil }
