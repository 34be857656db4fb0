package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"brigade-ops/rollcall/internal/constants"
	"brigade-ops/rollcall/internal/models/entities"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// CheckInSqlxRepository is the legacy single-session engine's storage adapter.
// It predates the GORM event model and keeps its hand-written queries.
type CheckInSqlxRepository struct {
	db *sqlx.DB
}

var _ CheckInRepository = (*CheckInSqlxRepository)(nil)

func NewCheckInSqlxRepository(db *sqlx.DB) *CheckInSqlxRepository {
	return &CheckInSqlxRepository{db}
}

// Toggle locks the member's active row FOR UPDATE inside one transaction, so
// concurrent requests for the same member resolve to exactly one flip. When
// the member has no active row there is nothing to lock; the unique index on
// (member_id, station_id) WHERE is_active backstops two concurrent first-time
// inserts, and the loser surfaces as a conflict rather than a second active row.
func (r *CheckInSqlxRepository) Toggle(ctx context.Context, candidate *entities.CheckIn) (string, *entities.CheckIn, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", nil, fmt.Errorf("failed to begin check-in tx: %w", err)
	}
	defer tx.Rollback()

	var existing entities.CheckIn
	err = tx.QueryRowxContext(ctx, constants.GetActiveCheckInByMember,
		candidate.MemberID, candidate.StationID).StructScan(&existing)

	switch {
	case err == nil:
		if _, err := tx.ExecContext(ctx, constants.DeactivateCheckIn, existing.ID); err != nil {
			return "", nil, fmt.Errorf("failed to deactivate check-in: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return "", nil, fmt.Errorf("failed to commit check-in toggle: %w", err)
		}
		existing.IsActive = false
		existing.UpdatedAt = time.Now()
		return constants.ToggleActionUndone, &existing, nil

	case errors.Is(err, sql.ErrNoRows):
		candidate.ID = uuid.NewString()
		candidate.IsActive = true
		err = tx.QueryRowxContext(ctx, constants.InsertCheckIn,
			candidate.ID,
			candidate.StationID,
			candidate.MemberID,
			candidate.ActivityID,
			candidate.CheckInTime,
			candidate.Method,
			candidate.Location,
			candidate.IsOffsite,
		).Scan(&candidate.CreatedAt, &candidate.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return "", nil, fmt.Errorf("%w: simultaneous check-in for member", constants.ErrPreconditionFailed)
			}
			return "", nil, fmt.Errorf("failed to insert check-in: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return "", nil, fmt.Errorf("failed to commit check-in toggle: %w", err)
		}
		return constants.ToggleActionCheckedIn, candidate, nil

	default:
		return "", nil, fmt.Errorf("failed to look up active check-in: %w", err)
	}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func (r *CheckInSqlxRepository) ListActive(ctx context.Context, stationID string) ([]entities.CheckIn, error) {
	var checkIns []entities.CheckIn

	if err := r.db.SelectContext(ctx, &checkIns, constants.ListActiveCheckIns, stationID); err != nil {
		return nil, fmt.Errorf("failed to list active check-ins: %w", err)
	}

	return checkIns, nil
}
