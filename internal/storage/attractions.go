package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tripweaver/internal/trip"
)

// Attractions provides read-only access to the attraction catalog. The
// catalog is seeded out-of-band; nothing here mutates it.
type Attractions struct {
	q Querier
}

// NewAttractions constructs an Attractions repository backed by the pool.
func NewAttractions(pool *pgxpool.Pool) *Attractions {
	return &Attractions{q: pool}
}

// NewAttractionsWithQuerier constructs an Attractions repository with a
// custom Querier (for tests).
func NewAttractionsWithQuerier(q Querier) *Attractions {
	return &Attractions{q: q}
}

const attractionColumns = `attraction_id, name, main_category, city, state, rating, popularity, address, description`

// SearchByDestination returns all attractions in the given city and state.
// Matching is case-insensitive and exact, never substring. Results are
// ordered by the normalized primary column descending with its fixed
// companion column as tie-break; both names come from the whitelist in
// trip.NormalizeOrderBy, never from client input.
func (r *Attractions) SearchByDestination(ctx context.Context, city, state, orderBy string) ([]trip.Attraction, error) {
	primary, secondary := trip.NormalizeOrderBy(orderBy)

	q := fmt.Sprintf(`
		SELECT %s
		FROM attractions
		WHERE LOWER(city) = LOWER($1) AND LOWER(state) = LOWER($2)
		ORDER BY %s DESC, %s DESC
	`, attractionColumns, primary, secondary)

	rows, err := r.q.Query(ctx, q, city, state)
	if err != nil {
		return nil, fmt.Errorf("querying attractions for %s, %s: %w", city, state, err)
	}
	defer rows.Close()

	var results []trip.Attraction
	for rows.Next() {
		var a trip.Attraction
		if err := rows.Scan(
			&a.ID,
			&a.Name,
			&a.Category,
			&a.City,
			&a.State,
			&a.Rating,
			&a.Popularity,
			&a.Address,
			&a.Description,
		); err != nil {
			return nil, fmt.Errorf("scanning attraction row: %w", err)
		}
		results = append(results, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating attraction rows: %w", err)
	}

	return results, nil
}

// DestinationExists reports whether any catalog entry matches the city and
// state, case-insensitively.
func (r *Attractions) DestinationExists(ctx context.Context, city, state string) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM attractions
			WHERE LOWER(city) = LOWER($1) AND LOWER(state) = LOWER($2)
		)
	`

	var exists bool
	if err := r.q.QueryRow(ctx, q, city, state).Scan(&exists); err != nil {
		return false, fmt.Errorf("validating destination %s, %s: %w", city, state, err)
	}
	return exists, nil
}

// GetByID retrieves a single attraction. Returns nil, nil when absent.
func (r *Attractions) GetByID(ctx context.Context, attractionID int64) (*trip.Attraction, error) {
	q := fmt.Sprintf(`SELECT %s FROM attractions WHERE attraction_id = $1`, attractionColumns)

	var a trip.Attraction
	err := r.q.QueryRow(ctx, q, attractionID).Scan(
		&a.ID,
		&a.Name,
		&a.Category,
		&a.City,
		&a.State,
		&a.Rating,
		&a.Popularity,
		&a.Address,
		&a.Description,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying attraction %d: %w", attractionID, err)
	}
	return &a, nil
}
