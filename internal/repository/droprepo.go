package repository

import (
	"context"
	"time"

	"github.com/dropspot/dropcore/internal/model"
	"github.com/gofrs/uuid/v5"
)

// DropRepository is the narrow drop surface the engine and the seed tool
// stand on. The claim transaction locks drop rows itself; this interface
// never hands out locks.
type DropRepository interface {
	// Create inserts a drop after validating slots and claim window.
	Create(ctx context.Context, d *model.Drop) error
	// GetByID loads a drop by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Drop, error)
	// UpdateWindow moves the claim window, revalidating start < end.
	UpdateWindow(ctx context.Context, id uuid.UUID, start, end time.Time) error
	// SetActive flips the active flag.
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	// ListActive returns active drops ordered by creation time ascending.
	ListActive(ctx context.Context) ([]model.Drop, error)
}
