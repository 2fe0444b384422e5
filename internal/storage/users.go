package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tripweaver/internal/preference"
	"tripweaver/internal/trip"
)

// ErrDuplicateEmail is returned when a create or profile update collides
// with an existing account's email.
var ErrDuplicateEmail = errors.New("email already in use")

// Users provides database access for accounts and their preference weights.
type Users struct {
	q Querier
}

// NewUsers constructs a Users repository backed by the given pool.
func NewUsers(pool *pgxpool.Pool) *Users {
	return &Users{q: pool}
}

// NewUsersWithQuerier constructs a Users repository with a custom Querier
// (for tests).
func NewUsersWithQuerier(q Querier) *Users {
	return &Users{q: q}
}

// Create inserts a new account. Preference columns take their schema
// default, so a fresh user has a complete neutral profile. Returns the new
// user id, or ErrDuplicateEmail.
func (r *Users) Create(ctx context.Context, name, email, passwordHash string) (int64, error) {
	const q = `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING user_id
	`

	var id int64
	if err := r.q.QueryRow(ctx, q, name, email, passwordHash).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateEmail
		}
		return 0, fmt.Errorf("inserting user %s: %w", email, err)
	}
	return id, nil
}

// GetByEmail retrieves an account by email, including the password hash for
// credential checks. Returns nil, nil when no such account exists.
func (r *Users) GetByEmail(ctx context.Context, email string) (*trip.User, error) {
	const q = `
		SELECT user_id, name, email, password_hash
		FROM users
		WHERE email = $1
	`
	return r.scanUser(r.q.QueryRow(ctx, q, email), email)
}

// GetByID retrieves an account by id. Returns nil, nil when absent.
func (r *Users) GetByID(ctx context.Context, userID int64) (*trip.User, error) {
	const q = `
		SELECT user_id, name, email, password_hash
		FROM users
		WHERE user_id = $1
	`
	return r.scanUser(r.q.QueryRow(ctx, q, userID), fmt.Sprintf("id %d", userID))
}

func (r *Users) scanUser(row pgx.Row, ref any) (*trip.User, error) {
	var u trip.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying user %v: %w", ref, err)
	}
	return &u, nil
}

// GetPreferences loads the full weight map for a user. Returns nil, nil
// when the user does not exist.
func (r *Users) GetPreferences(ctx context.Context, userID int64) (preference.Profile, error) {
	cols := make([]string, len(preference.Categories))
	for i, c := range preference.Categories {
		cols[i] = c.Column()
	}

	q := "SELECT " + strings.Join(cols, ", ") + " FROM users WHERE user_id = $1"

	weights := make([]int, len(cols))
	dest := make([]any, len(cols))
	for i := range weights {
		dest[i] = &weights[i]
	}

	if err := r.q.QueryRow(ctx, q, userID).Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying preferences for user %d: %w", userID, err)
	}

	profile := make(preference.Profile, len(preference.Categories))
	for i, c := range preference.Categories {
		profile[c] = weights[i]
	}
	return profile, nil
}

// UpdatePreferences writes the supplied (already sanitized) weights. The SET
// clause is built from the fixed category list, never from client input.
// Returns false when the user does not exist.
func (r *Users) UpdatePreferences(ctx context.Context, userID int64, weights preference.Profile) (bool, error) {
	if len(weights) == 0 {
		return false, fmt.Errorf("no weights to update for user %d", userID)
	}

	var assignments []string
	var args []any
	for _, c := range preference.Categories {
		w, ok := weights[c]
		if !ok {
			continue
		}
		args = append(args, w)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", c.Column(), len(args)))
	}
	args = append(args, userID)

	q := fmt.Sprintf("UPDATE users SET %s WHERE user_id = $%d", strings.Join(assignments, ", "), len(args))

	tag, err := r.q.Exec(ctx, q, args...)
	if err != nil {
		return false, fmt.Errorf("updating preferences for user %d: %w", userID, err)
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateProfile changes name and/or email; empty fields are left untouched.
// Returns ErrDuplicateEmail if the new email belongs to another account, and
// false when the user does not exist.
func (r *Users) UpdateProfile(ctx context.Context, userID int64, name, email string) (bool, error) {
	var assignments []string
	var args []any
	if name != "" {
		args = append(args, name)
		assignments = append(assignments, fmt.Sprintf("name = $%d", len(args)))
	}
	if email != "" {
		args = append(args, email)
		assignments = append(assignments, fmt.Sprintf("email = $%d", len(args)))
	}
	if len(assignments) == 0 {
		return false, fmt.Errorf("no profile fields to update for user %d", userID)
	}
	args = append(args, userID)

	q := fmt.Sprintf("UPDATE users SET %s WHERE user_id = $%d", strings.Join(assignments, ", "), len(args))

	tag, err := r.q.Exec(ctx, q, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return false, ErrDuplicateEmail
		}
		return false, fmt.Errorf("updating profile for user %d: %w", userID, err)
	}
	return tag.RowsAffected() > 0, nil
}

// UpdatePassword replaces the stored password hash.
func (r *Users) UpdatePassword(ctx context.Context, userID int64, passwordHash string) (bool, error) {
	const q = `UPDATE users SET password_hash = $1 WHERE user_id = $2`

	tag, err := r.q.Exec(ctx, q, passwordHash, userID)
	if err != nil {
		return false, fmt.Errorf("updating password for user %d: %w", userID, err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes the account. Itineraries and their items go with it via
// ON DELETE CASCADE.
func (r *Users) Delete(ctx context.Context, userID int64) (bool, error) {
	const q = `DELETE FROM users WHERE user_id = $1`

	tag, err := r.q.Exec(ctx, q, userID)
	if err != nil {
		return false, fmt.Errorf("deleting user %d: %w", userID, err)
	}
	return tag.RowsAffected() > 0, nil
}
