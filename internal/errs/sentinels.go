// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Rejection is a business-rule rejection with a stable machine-readable kind.
// Callers branch on Kind (or errors.Is against the sentinels below); Message
// is for humans. Rejections are never retried by the engine.
type Rejection struct {
	Kind    string
	Message string
}

// Error returns the human-readable message.
func (r *Rejection) Error() string { return r.Message }

// Rejection kinds surfaced at the engine boundary.
const (
	KindUserNotFound      = "USER_NOT_FOUND"
	KindDropNotFound      = "DROP_NOT_FOUND"
	KindWaitlistClosed    = "WAITLIST_CLOSED"
	KindDropNotActive     = "DROP_NOT_ACTIVE"
	KindClaimWindowClosed = "CLAIM_WINDOW_CLOSED"
	KindNotInWaitlist     = "NOT_IN_WAITLIST"
	KindSoldOut           = "SOLD_OUT"
	KindNotEligible       = "NOT_ELIGIBLE"
	KindInvalidDrop       = "INVALID_DROP"
)

// Business rejections. Pointer sentinels, so errors.Is matches by identity.
var (
	// ErrUserNotFound indicates the user does not exist.
	ErrUserNotFound = &Rejection{Kind: KindUserNotFound, Message: "user not found"}

	// ErrDropNotFound indicates the drop does not exist.
	ErrDropNotFound = &Rejection{Kind: KindDropNotFound, Message: "drop not found"}

	// ErrWaitlistClosed indicates the claim window has started; joining is over.
	ErrWaitlistClosed = &Rejection{Kind: KindWaitlistClosed, Message: "claim window has started; waitlist is closed"}

	// ErrDropNotActive indicates the drop is missing or deactivated.
	ErrDropNotActive = &Rejection{Kind: KindDropNotActive, Message: "drop is not active"}

	// ErrClaimWindowClosed indicates now is outside [start, end].
	ErrClaimWindowClosed = &Rejection{Kind: KindClaimWindowClosed, Message: "claim window is closed"}

	// ErrNotInWaitlist indicates the caller never joined the drop's waitlist.
	ErrNotInWaitlist = &Rejection{Kind: KindNotInWaitlist, Message: "user is not in the waitlist"}

	// ErrSoldOut indicates all slots are already used.
	ErrSoldOut = &Rejection{Kind: KindSoldOut, Message: "capacity exceeded"}

	// ErrNotEligible indicates the caller ranks outside the remaining slots.
	ErrNotEligible = &Rejection{Kind: KindNotEligible, Message: "user is not within the top priority for this drop"}

	// ErrInvalidDrop indicates bad drop data (slots or claim window).
	ErrInvalidDrop = &Rejection{Kind: KindInvalidDrop, Message: "invalid drop data"}
)

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a unique constraint violation.
	ErrAlreadyExists = errors.New("already exists")
)

// KindOf extracts the stable rejection kind, or "" for non-rejection errors.
func KindOf(err error) string {
	var r *Rejection
	if errors.As(err, &r) {
		return r.Kind
	}
	return ""
}
