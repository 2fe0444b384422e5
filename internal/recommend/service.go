// Package recommend ranks catalog attractions for a trip by the owner's
// preference profile.
package recommend

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"tripweaver/internal/preference"
	"tripweaver/internal/trip"
)

// DefaultLimit bounds a recommendation response.
const DefaultLimit = 30

// ErrProfileNotFound is returned when the plan owner has no preference row.
// Profiles are seeded at registration, so this indicates an inconsistency.
var ErrProfileNotFound = errors.New("preference profile not found")

// profileSource is the interface satisfied by storage.Users.
type profileSource interface {
	GetPreferences(ctx context.Context, userID int64) (preference.Profile, error)
}

// catalogSource is the interface satisfied by storage.Attractions.
type catalogSource interface {
	SearchByDestination(ctx context.Context, city, state, orderBy string) ([]trip.Attraction, error)
}

// Service resolves the inputs of a recommendation request and ranks the
// candidates. It never mutates anything; results are recomputed per call.
type Service struct {
	profiles profileSource
	catalog  catalogSource
}

// NewService constructs a Service with injectable sources.
func NewService(profiles profileSource, catalog catalogSource) *Service {
	return &Service{profiles: profiles, catalog: catalog}
}

// Recommend returns up to limit attractions at the plan's destination,
// sorted non-increasing by (preference_score, rating). The profile and the
// candidate set are fetched in parallel. A destination with no catalog
// entries yields an empty slice, not an error.
func (s *Service) Recommend(ctx context.Context, plan *trip.Itinerary, limit int) ([]preference.ScoredAttraction, error) {
	if limit <= 0 || limit > DefaultLimit {
		limit = DefaultLimit
	}

	g, gCtx := errgroup.WithContext(ctx)

	var profile preference.Profile
	var candidates []trip.Attraction

	g.Go(func() error {
		p, err := s.profiles.GetPreferences(gCtx, plan.UserID)
		if err != nil {
			return fmt.Errorf("loading preference profile for user %d: %w", plan.UserID, err)
		}
		if p == nil {
			return ErrProfileNotFound
		}
		profile = p
		return nil
	})

	g.Go(func() error {
		found, err := s.catalog.SearchByDestination(gCtx, plan.DestinationCity, plan.DestinationState, trip.OrderByRating)
		if err != nil {
			return fmt.Errorf("loading attractions for %s, %s: %w", plan.DestinationCity, plan.DestinationState, err)
		}
		candidates = found
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	ranked := preference.Rank(profile, candidates)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}
