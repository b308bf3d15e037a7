// Package score implements deterministic waitlist priority scoring.
//
// Coefficients are derived once at boot from a fixed deployment seed and held
// immutable so that scores stay comparable across every user of a drop for
// the lifetime of the deployment.
package score

import (
	"crypto/sha256"
	"time"
)

// Coefficients are the three small positive integers of the score formula.
// A ∈ [7,11], B ∈ [13,19], C ∈ [3,5] when produced by FromSeed.
type Coefficients struct {
	A int // join-order coefficient
	B int // account-age coefficient
	C int // penalty coefficient for other waitlist memberships
}

// FromSeed derives coefficients from a deployment seed string. The same seed
// always yields the same coefficients.
func FromSeed(seed string) Coefficients {
	h := sha256.Sum256([]byte(seed))
	return Coefficients{
		A: 7 + int(h[0])%5,
		B: 13 + int(h[1])%7,
		C: 3 + int(h[2])%3,
	}
}

// Score computes the priority score for a joining user. Pure; higher wins.
//
//	order      1-based join position (existing entries for the drop + 1)
//	ageDays    account age in whole days, >= 1
//	priorCount the user's waitlist memberships in other drops
func (c Coefficients) Score(order int64, ageDays int, priorCount int64) int {
	return int(order%int64(c.A)) + ageDays%c.B - int(priorCount%int64(c.C))
}

// AccountAgeDays returns the age of an account in days at the given moment:
// ceil of the elapsed time, floored at 1.
func AccountAgeDays(createdAt, now time.Time) int {
	d := now.Sub(createdAt)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days
}
