package trip

import (
	"errors"
	"time"
)

// ErrInvertedDates is returned when a plan's start date falls after its end date.
var ErrInvertedDates = errors.New("start date must be before end date")

// DateFormat is the wire format for itinerary dates.
const DateFormat = "2006-01-02"

// Attraction is a catalog entry. The catalog is seeded out-of-band and
// read-only from the service's perspective.
type Attraction struct {
	ID          int64   `json:"attraction_id"`
	Name        string  `json:"name"`
	Category    string  `json:"main_category"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	Rating      float64 `json:"rating"`
	Popularity  float64 `json:"popularity"`
	Address     string  `json:"address"`
	Description string  `json:"description"`
}

// Itinerary is a user's trip plan.
type Itinerary struct {
	ID               int64     `json:"itinerary_id"`
	UserID           int64     `json:"user_id"`
	DestinationCity  string    `json:"destination_city"`
	DestinationState string    `json:"destination_state"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
}

// Item is a single attraction attached to an itinerary. Day, times, and
// notes are all optional: an item may exist unscheduled.
type Item struct {
	ID           int64   `json:"item_id"`
	ItineraryID  int64   `json:"itinerary_id"`
	AttractionID int64   `json:"attraction_id"`
	DayNumber    *int    `json:"day_number"`
	StartTime    *string `json:"start_time"`
	EndTime      *string `json:"end_time"`
	Notes        *string `json:"notes"`
}

// ItemDetail is an item joined with its attraction's display fields, as
// returned by the itinerary read path.
type ItemDetail struct {
	Item
	AttractionName string  `json:"attraction_name"`
	Category       string  `json:"main_category"`
	Rating         float64 `json:"rating"`
	Description    string  `json:"description"`
	Address        string  `json:"address"`
	City           string  `json:"city"`
	State          string  `json:"state"`
}

// ItineraryAttraction is the attraction summary row returned by the
// per-itinerary attractions listing.
type ItineraryAttraction struct {
	ItemID      int64   `json:"item_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating"`
	Popularity  float64 `json:"popularity"`
	Address     string  `json:"address"`
}

// ItemPlacement is one entry of a reorder batch: where an existing item
// should sit after the reorder.
type ItemPlacement struct {
	ItemID    int64   `json:"itemId"`
	DayNumber *int    `json:"dayNumber"`
	StartTime *string `json:"startTime"`
	EndTime   *string `json:"endTime"`
}

// User is an account record. PasswordHash never leaves the storage/auth
// boundary.
type User struct {
	ID           int64  `json:"user_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

// ValidateDateRange rejects a plan whose start date falls strictly after its
// end date. Equal dates are a valid single-day trip.
func ValidateDateRange(start, end time.Time) error {
	if start.After(end) {
		return ErrInvertedDates
	}
	return nil
}

// Search ordering columns. NormalizeOrderBy maps anything unrecognized to
// popularity, and every primary column has a fixed secondary tie-break.
const (
	OrderByPopularity = "popularity"
	OrderByRating     = "rating"
)

// NormalizeOrderBy returns the primary and secondary sort columns for an
// attraction search. popularity and rating are mutual tie-breaks.
func NormalizeOrderBy(orderBy string) (primary, secondary string) {
	if orderBy == OrderByRating {
		return OrderByRating, OrderByPopularity
	}
	return OrderByPopularity, OrderByRating
}
