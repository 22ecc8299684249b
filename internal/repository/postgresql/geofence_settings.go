package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/geofence"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type geofenceSettingsRepositoryImpl struct {
	db *database.DB
}

// GetByOrganization implements geofence.SettingsRepository.
func (r *geofenceSettingsRepositoryImpl) GetByOrganization(ctx context.Context, organizationID string) (geofence.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			organization_id, mode, latitude, longitude,
			COALESCE(street, ''), COALESCE(number, ''), COALESCE(neighborhood, ''),
			COALESCE(city, ''), COALESCE(state, ''), COALESCE(postal_code, ''), COALESCE(country, ''),
			allowed_radius_meters, updated_at
		FROM geofence_settings
		WHERE organization_id = $1
	`

	var s geofence.Settings
	err := q.QueryRow(ctx, query, organizationID).Scan(
		&s.OrganizationID,
		&s.Mode,
		&s.Latitude,
		&s.Longitude,
		&s.Address.Street,
		&s.Address.Number,
		&s.Address.Neighborhood,
		&s.Address.City,
		&s.Address.State,
		&s.Address.PostalCode,
		&s.Address.Country,
		&s.AllowedRadiusMeters,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return geofence.Settings{}, geofence.ErrSettingsNotFound
		}
		return geofence.Settings{}, fmt.Errorf("failed to get geofence settings: %w", err)
	}

	return s, nil
}

func NewGeofenceSettingsRepository(db *database.DB) geofence.SettingsRepository {
	return &geofenceSettingsRepositoryImpl{db: db}
}
