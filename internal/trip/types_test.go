package trip_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripweaver/internal/trip"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(trip.DateFormat, s)
	require.NoError(t, err)
	return d
}

func TestValidateDateRange(t *testing.T) {
	assert.NoError(t, trip.ValidateDateRange(date(t, "2025-06-01"), date(t, "2025-06-05")))

	// A single-day trip is valid.
	assert.NoError(t, trip.ValidateDateRange(date(t, "2025-06-01"), date(t, "2025-06-01")))

	err := trip.ValidateDateRange(date(t, "2025-06-05"), date(t, "2025-06-01"))
	assert.ErrorIs(t, err, trip.ErrInvertedDates)
}

func TestNormalizeOrderBy(t *testing.T) {
	primary, secondary := trip.NormalizeOrderBy("rating")
	assert.Equal(t, "rating", primary)
	assert.Equal(t, "popularity", secondary)

	primary, secondary = trip.NormalizeOrderBy("popularity")
	assert.Equal(t, "popularity", primary)
	assert.Equal(t, "rating", secondary)
}

func TestNormalizeOrderBy_UnrecognizedDefaultsToPopularity(t *testing.T) {
	for _, bad := range []string{"", "price", "rating; DROP TABLE attractions", "RATING"} {
		primary, secondary := trip.NormalizeOrderBy(bad)
		assert.Equal(t, "popularity", primary, "orderBy %q", bad)
		assert.Equal(t, "rating", secondary, "orderBy %q", bad)
	}
}
