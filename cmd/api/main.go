package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/email"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/geocoder"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/i18n"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/repository/postgresql"
	geofenceService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/geofence"
	punchService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/punch"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/service/punchgate"
	timesheetService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/timesheet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := appHTTP.NewLogger(cfg.App.Env, cfg.LogLevel())
	slog.SetDefault(logger)

	i18n.Init(cfg.App.Locale)
	location := cfg.Location()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	profileRepo := postgresql.NewProfileRepository(db)
	workScheduleRepo := postgresql.NewWorkScheduleRepository(db)
	adjustmentRepo := postgresql.NewScheduleAdjustmentRepository(db)
	flexibilityRepo := postgresql.NewFlexibilitySettingsRepository(db)
	overtimeRepo := postgresql.NewOvertimeAuthorizationRepository(db)
	punchEventRepo := postgresql.NewPunchEventRepository(db)
	absenceRepo := postgresql.NewAbsenceRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	geofenceSettingsRepo := postgresql.NewGeofenceSettingsRepository(db)

	accessExpiration, _ := time.ParseDuration(cfg.JWT.AccessExpiration)
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, accessExpiration)

	gate := punchgate.NewGate(workScheduleRepo, adjustmentRepo, flexibilityRepo, overtimeRepo, cfg.Punch.LookupTimeout)
	nominatim := geocoder.NewNominatimClient(cfg.Geocoder.BaseURL, cfg.Geocoder.UserAgent, cfg.Geocoder.CountryCode, cfg.Geocoder.Timeout)
	geofence := geofenceService.NewService(
		geofenceSettingsRepo,
		nominatim,
		cfg.Punch.LookupTimeout,
		cfg.Punch.LocationTimeout,
		cfg.Geocoder.Timeout,
	)
	punchSvc := punchService.NewPunchService(profileRepo, punchEventRepo, gate, geofence, location)
	timesheetSvc := timesheetService.NewTimesheetService(
		profileRepo,
		workScheduleRepo,
		adjustmentRepo,
		punchEventRepo,
		absenceRepo,
		holidayRepo,
		location,
	)

	punchHandler := appHTTP.NewPunchHandler(punchSvc, location)
	timesheetHandler := appHTTP.NewTimesheetHandler(timesheetSvc, location)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			AllowedOrigins: []string{cfg.App.FrontendURL},
			Logger:         logger,
			LogLevel:       cfg.LogLevel(),
		},
		JWTService,
		punchHandler,
		timesheetHandler,
	)

	scheduler := cron.NewScheduler()
	if cfg.Alerts.Enabled {
		emailService, err := email.NewEmailService(cfg.SMTP)
		if err != nil {
			slog.Error("Failed to initialize email service", "error", err)
			os.Exit(1)
		}
		alertJobs := cron.NewAlertJobs(
			timesheetSvc,
			profileRepo,
			emailService,
			cfg.Alerts.Recipients,
			cfg.Alerts.SendHour,
			location,
		)
		scheduler.AddJob("alert-digest", cron.AlertDigestInterval, alertJobs.SendDailyDigest)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "timezone", location.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	slog.Info("Server stopped")
}
