package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/dropspot/dropcore/internal/errs"
	"github.com/dropspot/dropcore/internal/model"
	"github.com/dropspot/dropcore/internal/ranking"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

// ClaimRepo implements ClaimRepository using PostgreSQL.
type ClaimRepo struct{ db *DB }

// NewClaimRepo constructs a claim repository.
func NewClaimRepo(db *DB) *ClaimRepo { return &ClaimRepo{db: db} }

// Claim runs the allocation state machine as one transaction. The drop row is
// locked first, so concurrent claims for the same drop serialize their whole
// read-decide-write sequence; claims for different drops never contend.
func (r *ClaimRepo) Claim(
	ctx context.Context, dropID, userID uuid.UUID, code string,
) (receipt model.ClaimReceipt, err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return model.ClaimReceipt{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
		}
	}()

	// Lock and load the drop. A missing drop claims like an inactive one.
	const selDrop = `
SELECT total_slots, claim_window_start, claim_window_end, is_active
FROM drops WHERE id=$1 FOR UPDATE`
	var (
		totalSlots int
		start, end time.Time
		active     bool
	)
	if err = tx.QueryRow(ctx, selDrop, dropID).Scan(&totalSlots, &start, &end, &active); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ClaimReceipt{}, errs.ErrDropNotActive
		}
		return model.ClaimReceipt{}, err
	}
	if !active {
		return model.ClaimReceipt{}, errs.ErrDropNotActive
	}

	now := time.Now()
	if !windowContains(now, start, end) {
		return model.ClaimReceipt{}, errs.ErrClaimWindowClosed
	}

	const selEntry = `
SELECT id, joined_at, priority_score
FROM waitlist_entries WHERE user_id=$1 AND drop_id=$2`
	caller := model.WaitlistEntry{UserID: userID, DropID: dropID}
	if err = tx.QueryRow(ctx, selEntry, userID, dropID).Scan(&caller.ID, &caller.JoinedAt, &caller.PriorityScore); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ClaimReceipt{}, errs.ErrNotInWaitlist
		}
		return model.ClaimReceipt{}, err
	}

	// Idempotency short-circuit: a USED claim is terminal, return it as-is
	// without re-running ranking or capacity checks.
	const selClaim = `
SELECT code, used_at FROM claims WHERE user_id=$1 AND drop_id=$2 AND status='USED'`
	var existing model.ClaimReceipt
	scanErr := tx.QueryRow(ctx, selClaim, userID, dropID).Scan(&existing.Code, &existing.UsedAt)
	switch {
	case scanErr == nil:
		return existing, nil
	case errors.Is(scanErr, pgx.ErrNoRows):
		// no claim yet, continue
	default:
		err = scanErr
		return model.ClaimReceipt{}, err
	}

	// Capacity is derived from claim rows, never a stored counter.
	const countUsed = `SELECT COUNT(*) FROM claims WHERE drop_id=$1 AND status='USED'`
	var used int64
	if err = tx.QueryRow(ctx, countUsed, dropID).Scan(&used); err != nil {
		return model.ClaimReceipt{}, err
	}
	remaining := totalSlots - int(used)
	if remaining <= 0 {
		return model.ClaimReceipt{}, errs.ErrSoldOut
	}

	// One consistent snapshot of the contenders: entries of users who do not
	// hold a USED claim yet. The caller is among them (checked above).
	const selContenders = `
SELECT w.id, w.user_id, w.joined_at, w.priority_score
FROM waitlist_entries w
WHERE w.drop_id=$1
  AND NOT EXISTS (
    SELECT 1 FROM claims c
    WHERE c.drop_id=w.drop_id AND c.user_id=w.user_id AND c.status='USED'
  )`
	var contenders []model.WaitlistEntry
	contenders, err = scanEntries(ctx, tx, selContenders, dropID)
	if err != nil {
		return model.ClaimReceipt{}, err
	}
	if !ranking.Eligible(contenders, userID, remaining) {
		return model.ClaimReceipt{}, errs.ErrNotEligible
	}

	const upsert = `
INSERT INTO claims (user_id, drop_id, code, status, issued_at, used_at)
VALUES ($1, $2, $3, 'USED', $4, $4)
ON CONFLICT (user_id, drop_id)
DO UPDATE SET status='USED', used_at=EXCLUDED.used_at
RETURNING code, used_at`
	if err = tx.QueryRow(ctx, upsert, userID, dropID, code, now).Scan(&receipt.Code, &receipt.UsedAt); err != nil {
		return model.ClaimReceipt{}, err
	}
	return receipt, nil
}

// Get selects the claim for (user, drop).
func (r *ClaimRepo) Get(ctx context.Context, userID, dropID uuid.UUID) (*model.Claim, error) {
	const q = `
SELECT id, user_id, drop_id, code, status, issued_at, used_at
FROM claims WHERE user_id=$1 AND drop_id=$2`
	row := r.db.Pool.QueryRow(ctx, q, userID, dropID)
	var c model.Claim
	if err := row.Scan(&c.ID, &c.UserID, &c.DropID, &c.Code, &c.Status, &c.IssuedAt, &c.UsedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// CountUsed returns the number of USED claims for a drop.
func (r *ClaimRepo) CountUsed(ctx context.Context, dropID uuid.UUID) (int64, error) {
	const q = `SELECT COUNT(*) FROM claims WHERE drop_id=$1 AND status='USED'`
	var n int64
	if err := r.db.Pool.QueryRow(ctx, q, dropID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// windowContains reports whether now falls inside [start, end]. Both
// boundaries are inclusive: a claim at exactly start or end is accepted.
func windowContains(now, start, end time.Time) bool {
	return !now.Before(start) && !now.After(end)
}

// scanEntries collects waitlist entries from a (id, user_id, joined_at,
// priority_score) query.
func scanEntries(ctx context.Context, tx pgx.Tx, q string, dropID uuid.UUID) ([]model.WaitlistEntry, error) {
	rows, err := tx.Query(ctx, q, dropID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.WaitlistEntry
	for rows.Next() {
		e := model.WaitlistEntry{DropID: dropID}
		if err = rows.Scan(&e.ID, &e.UserID, &e.JoinedAt, &e.PriorityScore); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
