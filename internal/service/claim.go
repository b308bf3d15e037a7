package service

import (
	"context"
	"errors"

	"github.com/dropspot/dropcore/internal/claimcode"
	"github.com/dropspot/dropcore/internal/model"
	"github.com/dropspot/dropcore/internal/repository"
	"github.com/gofrs/uuid/v5"
)

// ClaimService defines the claim entry point.
type ClaimService interface {
	// Claim converts the caller's waitlist entry into a claimed slot, or
	// rejects with a stable kind. Idempotent once a claim is USED.
	Claim(ctx context.Context, userID, dropID uuid.UUID) (model.ClaimReceipt, error)
}

type ClaimServiceImpl struct {
	claims repository.ClaimRepository
}

// NewClaimService constructs ClaimService.
func NewClaimService(claims repository.ClaimRepository) *ClaimServiceImpl {
	return &ClaimServiceImpl{claims: claims}
}

// Claim generates a candidate code and delegates the atomic unit of work to
// the repository, which holds the drop lock for the whole decision. The code
// is discarded when the idempotency short-circuit returns an earlier one.
func (s *ClaimServiceImpl) Claim(ctx context.Context, userID, dropID uuid.UUID) (model.ClaimReceipt, error) {
	if userID == uuid.Nil || dropID == uuid.Nil {
		return model.ClaimReceipt{}, errors.New("validation: empty userID/dropID")
	}
	code, err := claimcode.New()
	if err != nil {
		return model.ClaimReceipt{}, err
	}
	return s.claims.Claim(ctx, dropID, userID, code)
}
