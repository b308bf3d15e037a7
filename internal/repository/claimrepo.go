package repository

import (
	"context"

	"github.com/dropspot/dropcore/internal/model"
	"github.com/gofrs/uuid/v5"
)

// ClaimRepository runs the atomic claim unit of work and reads claim state.
type ClaimRepository interface {
	// Claim executes the whole allocation decision as one transaction holding
	// an exclusive lock on the drop row: active/window checks, waitlist
	// membership, the idempotency short-circuit, capacity and top-remaining
	// eligibility, and the claim upsert. code is used only when a new claim
	// row is written; an existing USED claim returns its original code.
	Claim(ctx context.Context, dropID, userID uuid.UUID, code string) (model.ClaimReceipt, error)

	// Get loads the claim for (user, drop); ErrNotFound if absent.
	Get(ctx context.Context, userID, dropID uuid.UUID) (*model.Claim, error)

	// CountUsed returns the number of USED claims for a drop (the derived
	// capacity ledger).
	CountUsed(ctx context.Context, dropID uuid.UUID) (int64, error)
}
