package postgres

import (
	"context"
	"errors"

	"github.com/dropspot/dropcore/internal/errs"
	"github.com/dropspot/dropcore/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

// WaitlistRepo implements WaitlistRepository using PostgreSQL.
type WaitlistRepo struct{ db *DB }

// NewWaitlistRepo constructs a waitlist repository.
func NewWaitlistRepo(db *DB) *WaitlistRepo { return &WaitlistRepo{db: db} }

// Create inserts a waitlist entry. The (user_id, drop_id) unique constraint
// is the only serialization joins need; a conflicting insert surfaces as
// ErrAlreadyExists so the caller can return the existing entry unchanged.
func (r *WaitlistRepo) Create(ctx context.Context, e *model.WaitlistEntry) error {
	const q = `
INSERT INTO waitlist_entries (user_id, drop_id, joined_at, priority_score)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id, drop_id) DO NOTHING
RETURNING id`
	row := r.db.Pool.QueryRow(ctx, q, e.UserID, e.DropID, e.JoinedAt, e.PriorityScore)
	if err := row.Scan(&e.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errs.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Get selects the entry for (user, drop).
func (r *WaitlistRepo) Get(ctx context.Context, userID, dropID uuid.UUID) (*model.WaitlistEntry, error) {
	const q = `
SELECT id, user_id, drop_id, joined_at, priority_score
FROM waitlist_entries WHERE user_id=$1 AND drop_id=$2`
	row := r.db.Pool.QueryRow(ctx, q, userID, dropID)
	var e model.WaitlistEntry
	if err := row.Scan(&e.ID, &e.UserID, &e.DropID, &e.JoinedAt, &e.PriorityScore); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// Delete removes the entry if present. Absent rows are not an error.
func (r *WaitlistRepo) Delete(ctx context.Context, userID, dropID uuid.UUID) error {
	const q = `DELETE FROM waitlist_entries WHERE user_id=$1 AND drop_id=$2`
	_, err := r.db.Pool.Exec(ctx, q, userID, dropID)
	return err
}

// CountForDrop returns the current waitlist size for a drop.
func (r *WaitlistRepo) CountForDrop(ctx context.Context, dropID uuid.UUID) (int64, error) {
	const q = `SELECT COUNT(*) FROM waitlist_entries WHERE drop_id=$1`
	var n int64
	if err := r.db.Pool.QueryRow(ctx, q, dropID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// CountForUserExcluding counts the user's waitlist memberships in other drops.
func (r *WaitlistRepo) CountForUserExcluding(ctx context.Context, userID, excludedDropID uuid.UUID) (int64, error) {
	const q = `SELECT COUNT(*) FROM waitlist_entries WHERE user_id=$1 AND drop_id<>$2`
	var n int64
	if err := r.db.Pool.QueryRow(ctx, q, userID, excludedDropID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
