package repository

import (
	"context"

	"github.com/dropspot/dropcore/internal/model"
	"github.com/gofrs/uuid/v5"
)

// WaitlistRepository persists waitlist membership. Uniqueness per
// (user, drop) is enforced by the store; no drop-level lock is needed here
// because join-order races are benign (order only feeds the score formula).
type WaitlistRepository interface {
	// Create inserts a new entry; ErrAlreadyExists if the (user, drop) pair
	// is already waitlisted. On success the entry's ID is populated.
	Create(ctx context.Context, e *model.WaitlistEntry) error
	// Get loads the entry for (user, drop); ErrNotFound if absent.
	Get(ctx context.Context, userID, dropID uuid.UUID) (*model.WaitlistEntry, error)
	// Delete removes the entry; deleting a non-existent entry is not an error.
	Delete(ctx context.Context, userID, dropID uuid.UUID) error
	// CountForDrop returns the current waitlist size for a drop.
	CountForDrop(ctx context.Context, dropID uuid.UUID) (int64, error)
	// CountForUserExcluding counts the user's memberships in other drops.
	CountForUserExcluding(ctx context.Context, userID, excludedDropID uuid.UUID) (int64, error)
}
