package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/profile"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/email"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/i18n"
)

// AlertDigestInterval is how often the digest job wakes up to check the hour.
const AlertDigestInterval = 15 * time.Minute

// AlertJobs mails each organization's attendance alerts once a day.
type AlertJobs struct {
	timesheets timesheet.Service
	profiles   profile.Repository
	mailer     email.EmailService
	recipients []string
	sendHour   int
	location   *time.Location
	now        func() time.Time

	mu       sync.Mutex
	lastSent string
}

func NewAlertJobs(
	timesheets timesheet.Service,
	profiles profile.Repository,
	mailer email.EmailService,
	recipients []string,
	sendHour int,
	location *time.Location,
) *AlertJobs {
	if location == nil {
		location = time.UTC
	}
	return &AlertJobs{
		timesheets: timesheets,
		profiles:   profiles,
		mailer:     mailer,
		recipients: recipients,
		sendHour:   sendHour,
		location:   location,
		now:        time.Now,
	}
}

// SendDailyDigest sends the digest on the first run at or after the
// configured hour, once per local date.
func (j *AlertJobs) SendDailyDigest(ctx context.Context) error {
	now := j.now().In(j.location)
	today := now.Format("2006-01-02")

	j.mu.Lock()
	due := now.Hour() >= j.sendHour && j.lastSent != today
	j.mu.Unlock()
	if !due {
		return nil
	}

	orgIDs, err := j.profiles.ListOrganizationIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list organizations: %w", err)
	}

	var failed int
	for _, orgID := range orgIDs {
		if err := j.sendOrganizationDigest(ctx, orgID, now); err != nil {
			failed++
			slog.Error("Failed to send alert digest", "organization_id", orgID, "error", err)
		}
	}

	j.mu.Lock()
	j.lastSent = today
	j.mu.Unlock()

	slog.Info("Alert digest run finished", "organizations", len(orgIDs), "failed", failed)
	return nil
}

func (j *AlertJobs) sendOrganizationDigest(ctx context.Context, organizationID string, now time.Time) error {
	alerts, err := j.timesheets.ListAlerts(ctx, organizationID, now)
	if err != nil {
		return err
	}
	if len(alerts.Alerts) == 0 {
		return nil
	}

	profiles, err := j.profiles.ListByOrganization(ctx, organizationID)
	if err != nil {
		return fmt.Errorf("failed to list admins: %w", err)
	}
	to := append([]string(nil), j.recipients...)
	for _, p := range profiles {
		if p.IsAdmin && p.Email != "" {
			to = append(to, p.Email)
		}
	}

	lines := make([]email.AlertLine, 0, len(alerts.Alerts))
	for _, a := range alerts.Alerts {
		lines = append(lines, email.AlertLine{
			FullName: a.FullName,
			Kind:     i18n.T(ctx, "alert."+a.Kind),
			Worked:   fmt.Sprintf("%02d:%02d", a.TodayMinutes/60, a.TodayMinutes%60),
		})
	}

	return j.mailer.SendAlertDigest(to, now, lines)
}
