package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterOptions carries the cross-cutting settings of the HTTP surface.
type RouterOptions struct {
	AllowedOrigins []string
	Logger         *slog.Logger
	LogLevel       slog.Level
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, punchHandler PunchHandler, timesheetHandler TimesheetHandler) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Authorization", "Content-Type"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(middleware.Locale)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired)

		r.Route("/punches", func(r chi.Router) {
			r.Get("/check", punchHandler.Check)
			r.Post("/", punchHandler.Submit)
			r.Get("/", punchHandler.ListDay)
		})

		r.Get("/timesheet/me", timesheetHandler.GetMyMonth)

		// Admin only
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AdminOnly)
			r.Get("/timesheet/{userID}", timesheetHandler.GetUserMonth)
			r.Get("/alerts", timesheetHandler.ListAlerts)
		})
	})

	return r
}

// NewLogger builds the JSON logger in the ECS layout used for both request
// and application logs.
func NewLogger(appEnv string, level slog.Level) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(appEnv != "production")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timeclock"),
		slog.String("env", appEnv),
	)
}
