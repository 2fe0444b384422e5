package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tripweaver/internal/trip"
)

// Itineraries provides database access for trip plans. Every read or write
// that acts on behalf of a user goes through GetOwned first (or carries the
// user_id predicate itself), so an absent plan and someone else's plan are
// indistinguishable to callers.
type Itineraries struct {
	q  Querier
	tx TxBeginner
}

// NewItineraries constructs an Itineraries repository backed by the pool.
func NewItineraries(pool *pgxpool.Pool) *Itineraries {
	return &Itineraries{q: pool, tx: pool}
}

// NewItinerariesWith constructs an Itineraries repository with custom
// querier and transaction beginner (for tests).
func NewItinerariesWith(q Querier, tx TxBeginner) *Itineraries {
	return &Itineraries{q: q, tx: tx}
}

// Create inserts a new plan and returns its id.
func (r *Itineraries) Create(ctx context.Context, plan trip.Itinerary) (int64, error) {
	const q = `
		INSERT INTO itineraries (user_id, destination_city, destination_state, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING itinerary_id
	`

	var id int64
	err := r.q.QueryRow(ctx, q,
		plan.UserID,
		plan.DestinationCity,
		plan.DestinationState,
		plan.StartDate,
		plan.EndDate,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting itinerary for user %d: %w", plan.UserID, err)
	}
	return id, nil
}

// ListByUser returns all of a user's plans, newest start date first.
func (r *Itineraries) ListByUser(ctx context.Context, userID int64) ([]trip.Itinerary, error) {
	const q = `
		SELECT itinerary_id, user_id, destination_city, destination_state, start_date, end_date
		FROM itineraries
		WHERE user_id = $1
		ORDER BY start_date DESC
	`

	rows, err := r.q.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("querying itineraries for user %d: %w", userID, err)
	}
	defer rows.Close()

	var plans []trip.Itinerary
	for rows.Next() {
		var p trip.Itinerary
		if err := rows.Scan(&p.ID, &p.UserID, &p.DestinationCity, &p.DestinationState, &p.StartDate, &p.EndDate); err != nil {
			return nil, fmt.Errorf("scanning itinerary row: %w", err)
		}
		plans = append(plans, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating itinerary rows: %w", err)
	}

	return plans, nil
}

// GetOwned retrieves a plan only if it belongs to userID. Returns nil, nil
// both when the plan does not exist and when it is owned by someone else.
func (r *Itineraries) GetOwned(ctx context.Context, planID, userID int64) (*trip.Itinerary, error) {
	const q = `
		SELECT itinerary_id, user_id, destination_city, destination_state, start_date, end_date
		FROM itineraries
		WHERE itinerary_id = $1 AND user_id = $2
	`

	var p trip.Itinerary
	err := r.q.QueryRow(ctx, q, planID, userID).Scan(
		&p.ID, &p.UserID, &p.DestinationCity, &p.DestinationState, &p.StartDate, &p.EndDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying itinerary %d: %w", planID, err)
	}
	return &p, nil
}

// Update rewrites destination and dates. The WHERE clause carries both ids,
// so updating an unowned plan affects zero rows.
func (r *Itineraries) Update(ctx context.Context, plan trip.Itinerary) (bool, error) {
	const q = `
		UPDATE itineraries
		SET destination_city = $1, destination_state = $2, start_date = $3, end_date = $4
		WHERE itinerary_id = $5 AND user_id = $6
	`

	tag, err := r.q.Exec(ctx, q,
		plan.DestinationCity,
		plan.DestinationState,
		plan.StartDate,
		plan.EndDate,
		plan.ID,
		plan.UserID,
	)
	if err != nil {
		return false, fmt.Errorf("updating itinerary %d: %w", plan.ID, err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes a plan owned by userID; items cascade with it.
func (r *Itineraries) Delete(ctx context.Context, planID, userID int64) (bool, error) {
	const q = `DELETE FROM itineraries WHERE itinerary_id = $1 AND user_id = $2`

	tag, err := r.q.Exec(ctx, q, planID, userID)
	if err != nil {
		return false, fmt.Errorf("deleting itinerary %d: %w", planID, err)
	}
	return tag.RowsAffected() > 0, nil
}

// Clone deep-copies a plan and every one of its items to a new plan owned
// by targetUserID, inside a single transaction: either the new plan exists
// with all items, or nothing was written. Both "clone my itinerary"
// (targetUserID == source owner) and "share with another user" use this.
func (r *Itineraries) Clone(ctx context.Context, source *trip.Itinerary, targetUserID int64) (int64, error) {
	tx, err := r.tx.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning clone transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const insertPlan = `
		INSERT INTO itineraries (user_id, destination_city, destination_state, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING itinerary_id
	`

	var newID int64
	err = tx.QueryRow(ctx, insertPlan,
		targetUserID,
		source.DestinationCity,
		source.DestinationState,
		source.StartDate,
		source.EndDate,
	).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("inserting cloned itinerary from %d: %w", source.ID, err)
	}

	const copyItems = `
		INSERT INTO itinerary_items (itinerary_id, attraction_id, day_number, start_time, end_time, notes)
		SELECT $1, attraction_id, day_number, start_time, end_time, notes
		FROM itinerary_items
		WHERE itinerary_id = $2
	`

	if _, err := tx.Exec(ctx, copyItems, newID, source.ID); err != nil {
		return 0, fmt.Errorf("copying items from itinerary %d: %w", source.ID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing clone of itinerary %d: %w", source.ID, err)
	}

	return newID, nil
}
