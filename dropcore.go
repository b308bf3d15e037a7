package dropcore

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/dropspot/dropcore/internal/errs"
	"github.com/dropspot/dropcore/internal/model"
	"github.com/dropspot/dropcore/internal/repository"
	"github.com/dropspot/dropcore/internal/repository/postgres"
	"github.com/dropspot/dropcore/internal/score"
	"github.com/dropspot/dropcore/internal/service"
	"github.com/gofrs/uuid/v5"
)

// Re-exported result types for callers of the engine boundary.
type (
	// JoinResult is the outcome of a waitlist join.
	JoinResult = model.JoinResult
	// ClaimReceipt is the outcome of a successful claim.
	ClaimReceipt = model.ClaimReceipt
	// Drop is a capacity-limited, time-boxed offer.
	Drop = model.Drop
	// User is the identity collaborator's account view.
	User = model.User
)

// Config holds engine configuration fixed for the deployment's lifetime.
type Config struct {
	// Seed is the deployment seed the scoring coefficients derive from. It
	// must stay constant across all processes of a deployment so that scores
	// remain comparable between users of the same drop.
	Seed string
}

// Engine is the collaborator-facing boundary of the claim engine.
type Engine struct {
	waitlist service.WaitlistService
	claims   service.ClaimService
	users    repository.UserRepository
	drops    repository.DropRepository
	log      *zap.Logger
}

// New wires the engine on top of a Postgres pool. The logger may be nil.
func New(db *postgres.DB, cfg Config, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	coeffs := score.FromSeed(cfg.Seed)
	log.Info("priority coefficients derived",
		zap.Int("A", coeffs.A),
		zap.Int("B", coeffs.B),
		zap.Int("C", coeffs.C),
	)

	users := postgres.NewUserRepo(db)
	drops := postgres.NewDropRepo(db)
	entries := postgres.NewWaitlistRepo(db)
	claims := postgres.NewClaimRepo(db)

	return &Engine{
		waitlist: service.NewWaitlistService(users, drops, entries, coeffs),
		claims:   service.NewClaimService(claims),
		users:    users,
		drops:    drops,
		log:      log,
	}
}

// JoinWaitlist adds the user to the drop's waitlist. Idempotent; rejects with
// USER_NOT_FOUND, DROP_NOT_FOUND, or WAITLIST_CLOSED.
func (e *Engine) JoinWaitlist(ctx context.Context, userID, dropID uuid.UUID) (JoinResult, error) {
	start := time.Now()
	res, err := e.waitlist.Join(ctx, userID, dropID)
	e.logOutcome("join_waitlist", userID, dropID, start, err)
	return res, err
}

// LeaveWaitlist removes the user's entry; leaving a waitlist never joined is
// not an error. Only meaningful before the claim window opens.
func (e *Engine) LeaveWaitlist(ctx context.Context, userID, dropID uuid.UUID) error {
	start := time.Now()
	err := e.waitlist.Leave(ctx, userID, dropID)
	e.logOutcome("leave_waitlist", userID, dropID, start, err)
	return err
}

// Claim attempts to convert the caller's waitlist entry into a claimed slot.
// Rejects with DROP_NOT_ACTIVE, CLAIM_WINDOW_CLOSED, NOT_IN_WAITLIST,
// SOLD_OUT, or NOT_ELIGIBLE; succeeding twice returns the same code.
func (e *Engine) Claim(ctx context.Context, userID, dropID uuid.UUID) (ClaimReceipt, error) {
	start := time.Now()
	receipt, err := e.claims.Claim(ctx, userID, dropID)
	e.logOutcome("claim", userID, dropID, start, err)
	return receipt, err
}

// CreateDrop provisions a drop, enforcing positive capacity and an ordered
// claim window. Intended for bootstrap and operator tooling.
func (e *Engine) CreateDrop(ctx context.Context, d *Drop) error {
	return e.drops.Create(ctx, d)
}

// CreateUser registers an account with the identity surface the engine reads.
func (e *Engine) CreateUser(ctx context.Context, u *User) error {
	return e.users.Create(ctx, u)
}

// ListActiveDrops returns active drops ordered by creation time.
func (e *Engine) ListActiveDrops(ctx context.Context) ([]Drop, error) {
	return e.drops.ListActive(ctx)
}

// logOutcome records one boundary call: rejections at info with their stable
// kind, infrastructure failures at error, successes at debug.
func (e *Engine) logOutcome(op string, userID, dropID uuid.UUID, start time.Time, err error) {
	fields := []zap.Field{
		zap.String("user_id", userID.String()),
		zap.String("drop_id", dropID.String()),
		zap.Duration("took", time.Since(start)),
	}
	switch {
	case err == nil:
		e.log.Debug(op, fields...)
	case errs.KindOf(err) != "":
		e.log.Info(op+" rejected", append(fields, zap.String("kind", errs.KindOf(err)))...)
	default:
		e.log.Error(op+" failed", append(fields, zap.Error(err))...)
	}
}
