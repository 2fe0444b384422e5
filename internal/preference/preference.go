// Package preference holds the closed attraction-category set, per-user
// weight profiles, and the scoring used to rank attractions for a trip.
package preference

import (
	"sort"
	"strings"

	"tripweaver/internal/trip"
)

// Category identifies one attraction category from the fixed set.
type Category string

// Weight bounds enforced on every preference update. DefaultWeight is the
// seeded registration value and also the neutral score used when an
// attraction's category is unknown; it predates the 1-100 range and is kept
// so rankings stay comparable with previously seeded profiles.
const (
	MinWeight     = 1
	MaxWeight     = 100
	DefaultWeight = 3
)

// prefSuffix is the column/JSON-key convention: every category weight is
// exposed as "<category>_pref".
const prefSuffix = "_pref"

// Categories is the closed set of attraction categories. Order is fixed and
// matches the catalog's main_category vocabulary (snake_cased).
var Categories = []Category{
	"park",
	"historical_landmark",
	"historical_place_museum",
	"museum",
	"history_museum",
	"tourist_attraction",
	"wildlife_park",
	"art_museum",
	"aquarium",
	"monument",
	"hiking_area",
	"zoo",
	"catholic_cathedral",
	"nature_preserve",
	"amusement_park",
	"garden",
	"theme_park",
	"water_park",
	"scenic_spot",
	"observatory",
	"castle",
	"archaeological_museum",
	"public_beach",
	"national_forest",
	"catholic_church",
	"heritage_museum",
	"beach",
	"synagogue",
	"ecological_park",
	"wax_museum",
	"hindu_temple",
	"wildlife_safari_park",
	"buddhist_temple",
	"animal_park",
	"wildlife_refuge",
	"heritage_building",
	"vista_point",
	"national_park",
	"monastery",
	"fortress",
	"beach_pavilion",
}

var categorySet = func() map[Category]struct{} {
	m := make(map[Category]struct{}, len(Categories))
	for _, c := range Categories {
		m[c] = struct{}{}
	}
	return m
}()

// Known reports whether c is part of the fixed category set.
func Known(c Category) bool {
	_, ok := categorySet[c]
	return ok
}

// Column returns the database column / wire key for the category.
func (c Category) Column() string {
	return string(c) + prefSuffix
}

// FromColumn maps a "<category>_pref" key back to its Category. ok is false
// for keys without the suffix or outside the fixed set.
func FromColumn(key string) (Category, bool) {
	name, found := strings.CutSuffix(key, prefSuffix)
	if !found {
		return "", false
	}
	c := Category(name)
	return c, Known(c)
}

// FromAttractionCategory normalizes a catalog main_category value
// ("Art Museum", "art museum") to a Category. ok is false when the value is
// empty or not in the fixed set; scoring treats that as neutral.
func FromAttractionCategory(raw string) (Category, bool) {
	c := Category(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), " ", "_"))
	return c, Known(c)
}

// Profile maps every category to its weight for one user.
type Profile map[Category]int

// NewDefaultProfile returns a profile with every category at DefaultWeight,
// as seeded at registration.
func NewDefaultProfile() Profile {
	p := make(Profile, len(Categories))
	for _, c := range Categories {
		p[c] = DefaultWeight
	}
	return p
}

// Sanitize filters a client-supplied partial update down to known
// "<category>_pref" keys with integer weights in [MinWeight, MaxWeight].
// Anything else is silently discarded, never stored.
func Sanitize(partial map[string]int) Profile {
	out := make(Profile)
	for key, weight := range partial {
		c, ok := FromColumn(key)
		if !ok {
			continue
		}
		if weight < MinWeight || weight > MaxWeight {
			continue
		}
		out[c] = weight
	}
	return out
}

// Score returns the user's weight for the attraction's category, or
// DefaultWeight when the category is empty or outside the fixed set. Pure
// function of its inputs.
func Score(p Profile, a trip.Attraction) int {
	c, ok := FromAttractionCategory(a.Category)
	if !ok {
		return DefaultWeight
	}
	w, ok := p[c]
	if !ok {
		return DefaultWeight
	}
	return w
}

// ScoredAttraction is an attraction with its computed preference score
// attached for the client.
type ScoredAttraction struct {
	trip.Attraction
	PreferenceScore int `json:"preference_score"`
}

// Rank scores every candidate against the profile and returns them sorted
// non-increasing by (preference_score, rating). The sort is stable so equal
// candidates keep their catalog order.
func Rank(p Profile, candidates []trip.Attraction) []ScoredAttraction {
	scored := make([]ScoredAttraction, len(candidates))
	for i, a := range candidates {
		scored[i] = ScoredAttraction{Attraction: a, PreferenceScore: Score(p, a)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].PreferenceScore != scored[j].PreferenceScore {
			return scored[i].PreferenceScore > scored[j].PreferenceScore
		}
		return scored[i].Rating > scored[j].Rating
	})
	return scored
}
