// Package ranking orders waitlist entries for claim eligibility.
//
// The ordering is (priority score descending, joinedAt ascending, entry id
// ascending) and is total: two distinct entries never compare equal, so the
// eligible set for a given snapshot is independent of input order.
package ranking

import (
	"sort"

	"github.com/dropspot/dropcore/internal/model"
	"github.com/gofrs/uuid/v5"
)

// Less reports whether a ranks strictly ahead of b.
func Less(a, b model.WaitlistEntry) bool {
	if a.PriorityScore != b.PriorityScore {
		return a.PriorityScore > b.PriorityScore
	}
	if !a.JoinedAt.Equal(b.JoinedAt) {
		return a.JoinedAt.Before(b.JoinedAt)
	}
	return a.ID < b.ID
}

// Top returns the first r entries under the ranking order. The input slice is
// not modified; r larger than len(entries) returns all of them.
func Top(entries []model.WaitlistEntry, r int) []model.WaitlistEntry {
	if r < 0 {
		r = 0
	}
	sorted := make([]model.WaitlistEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return Less(sorted[i], sorted[j]) })
	if r > len(sorted) {
		r = len(sorted)
	}
	return sorted[:r]
}

// Eligible reports whether userID's entry falls within the top r entries.
func Eligible(entries []model.WaitlistEntry, userID uuid.UUID, r int) bool {
	for _, e := range Top(entries, r) {
		if e.UserID == userID {
			return true
		}
	}
	return false
}
