package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type flexibilitySettingsRepositoryImpl struct {
	db *database.DB
}

// GetByOrganization implements schedule.FlexibilitySettingsRepository.
func (r *flexibilitySettingsRepositoryImpl) GetByOrganization(ctx context.Context, organizationID string) (schedule.FlexibilitySettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT organization_id, mode, COALESCE(tolerance_minutes, 0), updated_at
		FROM flexibility_settings
		WHERE organization_id = $1
	`

	var s schedule.FlexibilitySettings
	err := q.QueryRow(ctx, query, organizationID).Scan(
		&s.OrganizationID,
		&s.Mode,
		&s.ToleranceMinutes,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.FlexibilitySettings{}, schedule.ErrFlexibilitySettingsNotFound
		}
		return schedule.FlexibilitySettings{}, fmt.Errorf("failed to get flexibility settings: %w", err)
	}

	return s, nil
}

func NewFlexibilitySettingsRepository(db *database.DB) schedule.FlexibilitySettingsRepository {
	return &flexibilitySettingsRepositoryImpl{db: db}
}
