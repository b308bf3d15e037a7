// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// User is the identity collaborator's view of an account: a stable id plus
// the creation time the scorer derives account age from.
type User struct {
	ID        uuid.UUID // PK
	Username  string    // unique
	CreatedAt time.Time
}

// Drop is a time-boxed, capacity-limited offer users compete to claim.
// The claim engine only reads it (and locks the row during a claim).
type Drop struct {
	ID               uuid.UUID // PK
	Title            string
	Description      string
	TotalSlots       int       // fixed capacity, > 0
	ClaimWindowStart time.Time // window is inclusive on both ends
	ClaimWindowEnd   time.Time // always after ClaimWindowStart
	IsActive         bool
	CreatedAt        time.Time
}

// WaitlistEntry records a user's membership in a drop's waitlist.
// Unique per (UserID, DropID); created only before the claim window opens.
type WaitlistEntry struct {
	ID            int64 // bigserial, final ranking tie-break
	UserID        uuid.UUID
	DropID        uuid.UUID
	JoinedAt      time.Time
	PriorityScore int // may be negative
}

// ClaimStatus is the lifecycle state of a claim record.
type ClaimStatus string

// Claim statuses. The single-step claim flow writes USED directly; ISSUED
// exists for two-phase issuance.
const (
	ClaimIssued ClaimStatus = "ISSUED"
	ClaimUsed   ClaimStatus = "USED"
)

// Claim is the record of an allocated slot. Unique per (UserID, DropID);
// written only inside the claim transaction.
type Claim struct {
	ID       int64 // bigserial
	UserID   uuid.UUID
	DropID   uuid.UUID
	Code     string // opaque, human-typable
	Status   ClaimStatus
	IssuedAt time.Time
	UsedAt   time.Time
}

// JoinResult is returned from a waitlist join (idempotent: repeated joins
// return the original entry's values unchanged).
type JoinResult struct {
	PriorityScore int
	JoinedAt      time.Time
}

// ClaimReceipt is the successful claim outcome handed to the caller.
type ClaimReceipt struct {
	Code   string
	UsedAt time.Time
}
