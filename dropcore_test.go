package dropcore

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/dropspot/dropcore/internal/errs"
	"github.com/dropspot/dropcore/internal/repository/postgres"
)

func newEngine(t *testing.T) (*Engine, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	db := &postgres.DB{Pool: mock}
	return New(db, Config{Seed: "dropcore-test"}, nil), mock
}

func TestEngine_JoinWaitlist_EndToEnd(t *testing.T) {
	e, mock := newEngine(t)
	defer mock.Close()
	userID := uuid.Must(uuid.NewV4())
	dropID := uuid.Must(uuid.NewV4())
	now := time.Now()

	mock.ExpectQuery(`SELECT id, username, created_at FROM users WHERE id=\$1`).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "created_at"}).
			AddRow(userID, "alice", now.Add(-72*time.Hour)))
	mock.ExpectQuery(`FROM drops WHERE id=\$1`).
		WithArgs(dropID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "description", "total_slots", "claim_window_start", "claim_window_end", "is_active", "created_at"}).
			AddRow(dropID, "launch", "", 2, now.Add(time.Hour), now.Add(2*time.Hour), true, now))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM waitlist_entries WHERE drop_id=\$1`).
		WithArgs(dropID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM waitlist_entries WHERE user_id=\$1 AND drop_id<>\$2`).
		WithArgs(userID, dropID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery(`INSERT INTO waitlist_entries`).
		WithArgs(userID, dropID, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))

	res, err := e.JoinWaitlist(context.Background(), userID, dropID)
	require.NoError(t, err)
	require.False(t, res.JoinedAt.IsZero())
}

func TestEngine_Claim_RejectionCarriesKind(t *testing.T) {
	e, mock := newEngine(t)
	defer mock.Close()
	userID := uuid.Must(uuid.NewV4())
	dropID := uuid.Must(uuid.NewV4())
	now := time.Now()

	// Window already over: the claim transaction rolls back with a stable kind.
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM drops WHERE id=\$1 FOR UPDATE`).
		WithArgs(dropID).
		WillReturnRows(pgxmock.NewRows([]string{"total_slots", "claim_window_start", "claim_window_end", "is_active"}).
			AddRow(1, now.Add(-2*time.Hour), now.Add(-time.Hour), true))
	mock.ExpectRollback()

	_, err := e.Claim(context.Background(), userID, dropID)
	require.ErrorIs(t, err, errs.ErrClaimWindowClosed)
	require.Equal(t, errs.KindClaimWindowClosed, errs.KindOf(err))
}

func TestEngine_LeaveWaitlist_NeverJoined(t *testing.T) {
	e, mock := newEngine(t)
	defer mock.Close()
	userID := uuid.Must(uuid.NewV4())
	dropID := uuid.Must(uuid.NewV4())

	mock.ExpectExec(`DELETE FROM waitlist_entries WHERE user_id=\$1 AND drop_id=\$2`).
		WithArgs(userID, dropID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	require.NoError(t, e.LeaveWaitlist(context.Background(), userID, dropID))
}

func TestEngine_CreateDrop_Validates(t *testing.T) {
	e, mock := newEngine(t)
	defer mock.Close()
	now := time.Now()

	bad := &Drop{
		ID:               uuid.Must(uuid.NewV4()),
		Title:            "backwards window",
		TotalSlots:       1,
		ClaimWindowStart: now.Add(time.Hour),
		ClaimWindowEnd:   now,
	}
	err := e.CreateDrop(context.Background(), bad)
	require.ErrorIs(t, err, errs.ErrInvalidDrop)
	require.Equal(t, errs.KindInvalidDrop, errs.KindOf(err))
}
