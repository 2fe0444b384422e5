package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"tripweaver/internal/trip"
)

// Items provides database access for itinerary items. Callers are expected
// to have resolved plan ownership via Itineraries.GetOwned first; every
// statement here still scopes by itinerary_id so a stray item id cannot
// cross plans.
type Items struct {
	q  Querier
	tx TxBeginner
}

// NewItems constructs an Items repository backed by the pool.
func NewItems(pool *pgxpool.Pool) *Items {
	return &Items{q: pool, tx: pool}
}

// NewItemsWith constructs an Items repository with custom querier and
// transaction beginner (for tests).
func NewItemsWith(q Querier, tx TxBeginner) *Items {
	return &Items{q: q, tx: tx}
}

// Add inserts an item. Day, times, and notes may all be nil.
func (r *Items) Add(ctx context.Context, item trip.Item) (int64, error) {
	const q = `
		INSERT INTO itinerary_items (itinerary_id, attraction_id, day_number, start_time, end_time, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING item_id
	`

	var id int64
	err := r.q.QueryRow(ctx, q,
		item.ItineraryID,
		item.AttractionID,
		item.DayNumber,
		item.StartTime,
		item.EndTime,
		item.Notes,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting item into itinerary %d: %w", item.ItineraryID, err)
	}
	return id, nil
}

// Update rewrites an item's day, times, and notes. Returns false when the
// item does not exist in that plan.
func (r *Items) Update(ctx context.Context, planID, itemID int64, day *int, start, end, notes *string) (bool, error) {
	const q = `
		UPDATE itinerary_items
		SET day_number = $1, start_time = $2, end_time = $3, notes = $4
		WHERE item_id = $5 AND itinerary_id = $6
	`

	tag, err := r.q.Exec(ctx, q, day, start, end, notes, itemID, planID)
	if err != nil {
		return false, fmt.Errorf("updating item %d in itinerary %d: %w", itemID, planID, err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes a single item from the plan. Returns false when nothing
// matched.
func (r *Items) Delete(ctx context.Context, planID, itemID int64) (bool, error) {
	const q = `DELETE FROM itinerary_items WHERE item_id = $1 AND itinerary_id = $2`

	tag, err := r.q.Exec(ctx, q, itemID, planID)
	if err != nil {
		return false, fmt.Errorf("deleting item %d from itinerary %d: %w", itemID, planID, err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListDetails returns a plan's items joined with attraction display fields,
// ordered by day then start time. The join is LEFT so an item survives a
// catalog gap with zeroed attraction fields rather than vanishing.
func (r *Items) ListDetails(ctx context.Context, planID int64) ([]trip.ItemDetail, error) {
	const q = `
		SELECT ii.item_id, ii.itinerary_id, ii.attraction_id, ii.day_number, ii.start_time, ii.end_time, ii.notes,
		       COALESCE(a.name, ''), COALESCE(a.main_category, ''), COALESCE(a.rating, 0),
		       COALESCE(a.description, ''), COALESCE(a.address, ''), COALESCE(a.city, ''), COALESCE(a.state, '')
		FROM itinerary_items ii
		LEFT JOIN attractions a ON ii.attraction_id = a.attraction_id
		WHERE ii.itinerary_id = $1
		ORDER BY ii.day_number, ii.start_time
	`

	rows, err := r.q.Query(ctx, q, planID)
	if err != nil {
		return nil, fmt.Errorf("querying items for itinerary %d: %w", planID, err)
	}
	defer rows.Close()

	var items []trip.ItemDetail
	for rows.Next() {
		var d trip.ItemDetail
		if err := rows.Scan(
			&d.ID, &d.ItineraryID, &d.AttractionID, &d.DayNumber, &d.StartTime, &d.EndTime, &d.Notes,
			&d.AttractionName, &d.Category, &d.Rating, &d.Description, &d.Address, &d.City, &d.State,
		); err != nil {
			return nil, fmt.Errorf("scanning item row: %w", err)
		}
		items = append(items, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating item rows: %w", err)
	}

	return items, nil
}

// ListAttractions returns the attraction summary for every item of a plan,
// ordered by day then start time.
func (r *Items) ListAttractions(ctx context.Context, planID int64) ([]trip.ItineraryAttraction, error) {
	const q = `
		SELECT ii.item_id, a.name, a.description, a.rating, a.popularity, a.address
		FROM itinerary_items ii
		JOIN attractions a ON ii.attraction_id = a.attraction_id
		WHERE ii.itinerary_id = $1
		ORDER BY ii.day_number, ii.start_time
	`

	rows, err := r.q.Query(ctx, q, planID)
	if err != nil {
		return nil, fmt.Errorf("querying attractions for itinerary %d: %w", planID, err)
	}
	defer rows.Close()

	var results []trip.ItineraryAttraction
	for rows.Next() {
		var ia trip.ItineraryAttraction
		if err := rows.Scan(&ia.ItemID, &ia.Name, &ia.Description, &ia.Rating, &ia.Popularity, &ia.Address); err != nil {
			return nil, fmt.Errorf("scanning itinerary attraction row: %w", err)
		}
		results = append(results, ia)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating itinerary attraction rows: %w", err)
	}

	return results, nil
}

// Reorder applies a batch of day/time placements in one transaction. A
// placement that matches no row is skipped, matching how the original data
// behaved; any execution failure rolls back the entire batch so a partially
// reordered plan is never visible.
func (r *Items) Reorder(ctx context.Context, planID int64, placements []trip.ItemPlacement) error {
	tx, err := r.tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning reorder transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const q = `
		UPDATE itinerary_items
		SET day_number = $1, start_time = $2, end_time = $3
		WHERE item_id = $4 AND itinerary_id = $5
	`

	for _, p := range placements {
		if _, err := tx.Exec(ctx, q, p.DayNumber, p.StartTime, p.EndTime, p.ItemID, planID); err != nil {
			return fmt.Errorf("reordering item %d in itinerary %d: %w", p.ItemID, planID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing reorder for itinerary %d: %w", planID, err)
	}

	return nil
}
