package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/dropspot/dropcore/internal/errs"
	"github.com/dropspot/dropcore/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

// DropRepo implements DropRepository using PostgreSQL.
type DropRepo struct{ db *DB }

// NewDropRepo constructs a drop repository.
func NewDropRepo(db *DB) *DropRepo { return &DropRepo{db: db} }

// Create inserts a drop. Slots must be positive and the window ordered; the
// same invariants are CHECK constraints in the schema, so a racing bad write
// from any other path is rejected by the store as well.
func (r *DropRepo) Create(ctx context.Context, d *model.Drop) error {
	if d.Title == "" || d.TotalSlots <= 0 || !d.ClaimWindowStart.Before(d.ClaimWindowEnd) {
		return errs.ErrInvalidDrop
	}
	const q = `
INSERT INTO drops (id, title, description, total_slots, claim_window_start, claim_window_end, is_active, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Pool.Exec(ctx, q,
		d.ID, d.Title, d.Description, d.TotalSlots,
		d.ClaimWindowStart, d.ClaimWindowEnd, d.IsActive, d.CreatedAt)
	switch {
	case isUniqueViolation(err):
		return errs.ErrAlreadyExists
	case isCheckViolation(err):
		return errs.ErrInvalidDrop
	}
	return err
}

// GetByID selects a drop by ID.
func (r *DropRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Drop, error) {
	const q = `
SELECT id, title, description, total_slots, claim_window_start, claim_window_end, is_active, created_at
FROM drops WHERE id=$1`
	row := r.db.Pool.QueryRow(ctx, q, id)
	var d model.Drop
	err := row.Scan(&d.ID, &d.Title, &d.Description, &d.TotalSlots,
		&d.ClaimWindowStart, &d.ClaimWindowEnd, &d.IsActive, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// UpdateWindow moves the claim window. Validation runs here and again as a
// CHECK constraint, keeping start < end on every partial update.
func (r *DropRepo) UpdateWindow(ctx context.Context, id uuid.UUID, start, end time.Time) error {
	if !start.Before(end) {
		return errs.ErrInvalidDrop
	}
	const q = `
UPDATE drops SET claim_window_start=$2, claim_window_end=$3 WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, id, start, end)
	if isCheckViolation(err) {
		return errs.ErrInvalidDrop
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// SetActive flips the drop's active flag.
func (r *DropRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	const q = `UPDATE drops SET is_active=$2 WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// ListActive returns active drops ordered by creation time ascending.
func (r *DropRepo) ListActive(ctx context.Context) ([]model.Drop, error) {
	const q = `
SELECT id, title, description, total_slots, claim_window_start, claim_window_end, is_active, created_at
FROM drops WHERE is_active ORDER BY created_at ASC`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Drop
	for rows.Next() {
		var d model.Drop
		if err = rows.Scan(&d.ID, &d.Title, &d.Description, &d.TotalSlots,
			&d.ClaimWindowStart, &d.ClaimWindowEnd, &d.IsActive, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
