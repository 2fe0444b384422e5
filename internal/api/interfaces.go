package api

import (
	"context"

	"tripweaver/internal/preference"
	"tripweaver/internal/trip"
)

// UserStore defines the account and preference operations needed by handlers.
type UserStore interface {
	Create(ctx context.Context, name, email, passwordHash string) (int64, error)
	GetByEmail(ctx context.Context, email string) (*trip.User, error)
	GetByID(ctx context.Context, userID int64) (*trip.User, error)
	GetPreferences(ctx context.Context, userID int64) (preference.Profile, error)
	UpdatePreferences(ctx context.Context, userID int64, weights preference.Profile) (bool, error)
	UpdateProfile(ctx context.Context, userID int64, name, email string) (bool, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) (bool, error)
	Delete(ctx context.Context, userID int64) (bool, error)
}

// AttractionStore defines the read-only catalog operations needed by handlers.
type AttractionStore interface {
	SearchByDestination(ctx context.Context, city, state, orderBy string) ([]trip.Attraction, error)
	DestinationExists(ctx context.Context, city, state string) (bool, error)
	GetByID(ctx context.Context, attractionID int64) (*trip.Attraction, error)
}

// ItineraryStore defines the plan operations needed by handlers. GetOwned is
// the single ownership gate: it returns nil, nil for both an absent plan and
// someone else's plan.
type ItineraryStore interface {
	Create(ctx context.Context, plan trip.Itinerary) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]trip.Itinerary, error)
	GetOwned(ctx context.Context, planID, userID int64) (*trip.Itinerary, error)
	Update(ctx context.Context, plan trip.Itinerary) (bool, error)
	Delete(ctx context.Context, planID, userID int64) (bool, error)
	Clone(ctx context.Context, source *trip.Itinerary, targetUserID int64) (int64, error)
}

// ItemStore defines the itinerary-item operations needed by handlers.
type ItemStore interface {
	Add(ctx context.Context, item trip.Item) (int64, error)
	Update(ctx context.Context, planID, itemID int64, day *int, start, end, notes *string) (bool, error)
	Delete(ctx context.Context, planID, itemID int64) (bool, error)
	ListDetails(ctx context.Context, planID int64) ([]trip.ItemDetail, error)
	ListAttractions(ctx context.Context, planID int64) ([]trip.ItineraryAttraction, error)
	Reorder(ctx context.Context, planID int64, placements []trip.ItemPlacement) error
}

// Recommender ranks catalog attractions for a plan by its owner's profile.
type Recommender interface {
	Recommend(ctx context.Context, plan *trip.Itinerary, limit int) ([]preference.ScoredAttraction, error)
}

// SearchCache defines the cache operations used by the search handler.
type SearchCache interface {
	Get(ctx context.Context, city, state, orderBy string) ([]trip.Attraction, error)
	Set(ctx context.Context, city, state, orderBy string, results []trip.Attraction) error
}

// TokenSource issues and verifies bearer tokens.
type TokenSource interface {
	Issue(userID int64) (string, error)
	Verify(token string) (int64, error)
}
