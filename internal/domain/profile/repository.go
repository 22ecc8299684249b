package profile

import (
	"context"
	"errors"
)

var ErrProfileNotFound = errors.New("profile not found")

type Repository interface {
	GetByUserID(ctx context.Context, userID string) (Profile, error)
	ListByOrganization(ctx context.Context, organizationID string) ([]Profile, error)

	// ListOrganizationIDs returns every organization with at least one
	// employee profile.
	ListOrganizationIDs(ctx context.Context) ([]string, error)
}
