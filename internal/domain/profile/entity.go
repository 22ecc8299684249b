package profile

import "time"

// Profile is the directory entry of an employee: which organization they
// belong to and which schedule applies to them.
type Profile struct {
	UserID         string
	OrganizationID string
	FullName       string
	Email          string
	HireDate       *time.Time
	WorkScheduleID *string
	IsAdmin        bool
}
