package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
)

type overtimeAuthorizationRepositoryImpl struct {
	db *database.DB
}

// HasStanding implements schedule.OvertimeAuthorizationRepository.
func (r *overtimeAuthorizationRepositoryImpl) HasStanding(ctx context.Context, userID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM overtime_authorizations
			WHERE user_id = $1
			  AND revoked_at IS NULL
			  AND valid_from <= $2::date
			  AND (valid_until IS NULL OR valid_until >= $2::date)
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, userID, date.Format("2006-01-02")).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check overtime authorization: %w", err)
	}

	return exists, nil
}

func NewOvertimeAuthorizationRepository(db *database.DB) schedule.OvertimeAuthorizationRepository {
	return &overtimeAuthorizationRepositoryImpl{db: db}
}
