// Package service contains application services for waitlisting and claims.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/dropspot/dropcore/internal/errs"
	"github.com/dropspot/dropcore/internal/model"
	"github.com/dropspot/dropcore/internal/repository"
	"github.com/dropspot/dropcore/internal/score"
	"github.com/gofrs/uuid/v5"
)

// WaitlistService defines waitlist membership operations.
type WaitlistService interface {
	// Join adds the user to the drop's waitlist with a computed priority
	// score. Idempotent: repeated joins return the existing entry unchanged.
	Join(ctx context.Context, userID, dropID uuid.UUID) (model.JoinResult, error)
	// Leave removes the user's entry; a missing entry is not an error.
	Leave(ctx context.Context, userID, dropID uuid.UUID) error
}

type WaitlistServiceImpl struct {
	users   repository.UserRepository
	drops   repository.DropRepository
	entries repository.WaitlistRepository
	coeffs  score.Coefficients
}

// NewWaitlistService constructs WaitlistService with required dependencies.
func NewWaitlistService(
	users repository.UserRepository,
	drops repository.DropRepository,
	entries repository.WaitlistRepository,
	coeffs score.Coefficients,
) *WaitlistServiceImpl {
	return &WaitlistServiceImpl{users: users, drops: drops, entries: entries, coeffs: coeffs}
}

// Join computes the score from the current waitlist size, the account age,
// and the user's other-drop memberships, then inserts the entry. The counts
// are read without a drop lock: two simultaneous joiners may see adjacent
// rather than strictly sequential orders, which only shifts score inputs and
// breaks no invariant.
func (s *WaitlistServiceImpl) Join(ctx context.Context, userID, dropID uuid.UUID) (model.JoinResult, error) {
	if userID == uuid.Nil || dropID == uuid.Nil {
		return model.JoinResult{}, errors.New("validation: empty userID/dropID")
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.JoinResult{}, errs.ErrUserNotFound
		}
		return model.JoinResult{}, err
	}
	d, err := s.drops.GetByID(ctx, dropID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.JoinResult{}, errs.ErrDropNotFound
		}
		return model.JoinResult{}, err
	}

	now := time.Now()
	if !now.Before(d.ClaimWindowStart) {
		return model.JoinResult{}, errs.ErrWaitlistClosed
	}

	sizeForDrop, err := s.entries.CountForDrop(ctx, dropID)
	if err != nil {
		return model.JoinResult{}, err
	}
	priorCount, err := s.entries.CountForUserExcluding(ctx, userID, dropID)
	if err != nil {
		return model.JoinResult{}, err
	}

	order := sizeForDrop + 1
	ageDays := score.AccountAgeDays(u.CreatedAt, now)
	e := &model.WaitlistEntry{
		UserID:        userID,
		DropID:        dropID,
		JoinedAt:      now,
		PriorityScore: s.coeffs.Score(order, ageDays, priorCount),
	}
	if err := s.entries.Create(ctx, e); err != nil {
		if errors.Is(err, errs.ErrAlreadyExists) {
			// Already waitlisted: return the original entry, score untouched.
			// Recomputing would be order-dependent and non-reproducible.
			existing, gerr := s.entries.Get(ctx, userID, dropID)
			if gerr != nil {
				return model.JoinResult{}, gerr
			}
			return model.JoinResult{PriorityScore: existing.PriorityScore, JoinedAt: existing.JoinedAt}, nil
		}
		return model.JoinResult{}, err
	}
	return model.JoinResult{PriorityScore: e.PriorityScore, JoinedAt: e.JoinedAt}, nil
}

// Leave deletes the entry if present (idempotent delete).
func (s *WaitlistServiceImpl) Leave(ctx context.Context, userID, dropID uuid.UUID) error {
	if userID == uuid.Nil || dropID == uuid.Nil {
		return errors.New("validation: empty userID/dropID")
	}
	return s.entries.Delete(ctx, userID, dropID)
}
