package recommend_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripweaver/internal/preference"
	"tripweaver/internal/recommend"
	"tripweaver/internal/trip"
)

// ---- mock sources ----

type mockProfiles struct {
	getFn func(ctx context.Context, userID int64) (preference.Profile, error)
}

func (m *mockProfiles) GetPreferences(ctx context.Context, userID int64) (preference.Profile, error) {
	return m.getFn(ctx, userID)
}

type mockCatalog struct {
	searchFn func(ctx context.Context, city, state, orderBy string) ([]trip.Attraction, error)
}

func (m *mockCatalog) SearchByDestination(ctx context.Context, city, state, orderBy string) ([]trip.Attraction, error) {
	return m.searchFn(ctx, city, state, orderBy)
}

// ---- helpers ----

func orlandoPlan() *trip.Itinerary {
	return &trip.Itinerary{
		ID:               1,
		UserID:           7,
		DestinationCity:  "Orlando",
		DestinationState: "FL",
	}
}

func museumLoverProfile() preference.Profile {
	p := preference.NewDefaultProfile()
	p["museum"] = 90
	p["beach"] = 10
	return p
}

func TestRecommend_RanksByPreferenceThenRating(t *testing.T) {
	profiles := &mockProfiles{
		getFn: func(_ context.Context, userID int64) (preference.Profile, error) {
			assert.Equal(t, int64(7), userID)
			return museumLoverProfile(), nil
		},
	}
	catalog := &mockCatalog{
		searchFn: func(_ context.Context, city, state, _ string) ([]trip.Attraction, error) {
			assert.Equal(t, "Orlando", city)
			assert.Equal(t, "FL", state)
			return []trip.Attraction{
				{Name: "Cocoa Beach", Category: "Beach", Rating: 4.7},
				{Name: "Science Museum", Category: "Museum", Rating: 4.6},
				{Name: "History Hall", Category: "Museum", Rating: 4.1},
			}, nil
		},
	}

	svc := recommend.NewService(profiles, catalog)
	got, err := svc.Recommend(context.Background(), orlandoPlan(), 30)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Museums of similar rating outrank the beach for a museum lover.
	assert.Equal(t, "Science Museum", got[0].Name)
	assert.Equal(t, "History Hall", got[1].Name)
	assert.Equal(t, "Cocoa Beach", got[2].Name)
	assert.Equal(t, 90, got[0].PreferenceScore)
}

func TestRecommend_TruncatesToLimit(t *testing.T) {
	candidates := make([]trip.Attraction, 50)
	for i := range candidates {
		candidates[i] = trip.Attraction{Name: fmt.Sprintf("spot-%d", i), Category: "Park", Rating: float64(i)}
	}

	profiles := &mockProfiles{
		getFn: func(_ context.Context, _ int64) (preference.Profile, error) {
			return preference.NewDefaultProfile(), nil
		},
	}
	catalog := &mockCatalog{
		searchFn: func(_ context.Context, _, _, _ string) ([]trip.Attraction, error) {
			return candidates, nil
		},
	}

	svc := recommend.NewService(profiles, catalog)
	got, err := svc.Recommend(context.Background(), orlandoPlan(), 30)
	require.NoError(t, err)
	assert.Len(t, got, recommend.DefaultLimit)
}

func TestRecommend_ZeroOrOversizedLimitFallsBackToDefault(t *testing.T) {
	candidates := make([]trip.Attraction, 40)
	for i := range candidates {
		candidates[i] = trip.Attraction{Category: "Park"}
	}

	profiles := &mockProfiles{
		getFn: func(_ context.Context, _ int64) (preference.Profile, error) {
			return preference.NewDefaultProfile(), nil
		},
	}
	catalog := &mockCatalog{
		searchFn: func(_ context.Context, _, _, _ string) ([]trip.Attraction, error) {
			return candidates, nil
		},
	}

	svc := recommend.NewService(profiles, catalog)

	for _, limit := range []int{0, -5, 1000} {
		got, err := svc.Recommend(context.Background(), orlandoPlan(), limit)
		require.NoError(t, err)
		assert.Len(t, got, recommend.DefaultLimit, "limit %d", limit)
	}
}

func TestRecommend_EmptyDestinationYieldsEmptyList(t *testing.T) {
	profiles := &mockProfiles{
		getFn: func(_ context.Context, _ int64) (preference.Profile, error) {
			return preference.NewDefaultProfile(), nil
		},
	}
	catalog := &mockCatalog{
		searchFn: func(_ context.Context, _, _, _ string) ([]trip.Attraction, error) {
			return nil, nil
		},
	}

	svc := recommend.NewService(profiles, catalog)
	got, err := svc.Recommend(context.Background(), orlandoPlan(), 30)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecommend_MissingProfileIsAnError(t *testing.T) {
	profiles := &mockProfiles{
		getFn: func(_ context.Context, _ int64) (preference.Profile, error) {
			return nil, nil
		},
	}
	catalog := &mockCatalog{
		searchFn: func(_ context.Context, _, _, _ string) ([]trip.Attraction, error) {
			return nil, nil
		},
	}

	svc := recommend.NewService(profiles, catalog)
	_, err := svc.Recommend(context.Background(), orlandoPlan(), 30)
	assert.ErrorIs(t, err, recommend.ErrProfileNotFound)
}

func TestRecommend_PropagatesSourceErrors(t *testing.T) {
	profiles := &mockProfiles{
		getFn: func(_ context.Context, _ int64) (preference.Profile, error) {
			return preference.NewDefaultProfile(), nil
		},
	}
	catalog := &mockCatalog{
		searchFn: func(_ context.Context, _, _, _ string) ([]trip.Attraction, error) {
			return nil, fmt.Errorf("catalog down")
		},
	}

	svc := recommend.NewService(profiles, catalog)
	_, err := svc.Recommend(context.Background(), orlandoPlan(), 30)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading attractions")
}
