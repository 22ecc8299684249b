package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/profile"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type profileRepositoryImpl struct {
	db *database.DB
}

const profileColumns = `
	user_id, organization_id, full_name, COALESCE(email, ''),
	hire_date, work_schedule_id, is_admin
`

// GetByUserID implements profile.Repository.
func (r *profileRepositoryImpl) GetByUserID(ctx context.Context, userID string) (profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`

	p, err := scanProfile(q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.Profile{}, profile.ErrProfileNotFound
		}
		return profile.Profile{}, fmt.Errorf("failed to get profile: %w", err)
	}

	return p, nil
}

// ListByOrganization implements profile.Repository.
func (r *profileRepositoryImpl) ListByOrganization(ctx context.Context, organizationID string) ([]profile.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE organization_id = $1
		ORDER BY full_name
	`

	rows, err := q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []profile.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profiles: %w", err)
	}

	return profiles, nil
}

// ListOrganizationIDs implements profile.Repository.
func (r *profileRepositoryImpl) ListOrganizationIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT DISTINCT organization_id FROM profiles ORDER BY organization_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan organizations: %w", err)
	}
	return ids, nil
}

func scanProfile(row pgx.Row) (profile.Profile, error) {
	var (
		p        profile.Profile
		hireDate pgtype.Date
	)
	err := row.Scan(
		&p.UserID,
		&p.OrganizationID,
		&p.FullName,
		&p.Email,
		&hireDate,
		&p.WorkScheduleID,
		&p.IsAdmin,
	)
	if err != nil {
		return profile.Profile{}, err
	}
	p.HireDate = dateOrNil(hireDate)
	return p, nil
}

func dateOrNil(d pgtype.Date) *time.Time {
	if !d.Valid {
		return nil
	}
	t := d.Time
	return &t
}

func NewProfileRepository(db *database.DB) profile.Repository {
	return &profileRepositoryImpl{db: db}
}
