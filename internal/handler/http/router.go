package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/JuanAlonzo/control-asistencia-backend/internal/handler/http/middleware"
	"github.com/JuanAlonzo/control-asistencia-backend/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterOptions carries the transport settings taken from config.
type RouterOptions struct {
	AllowedOrigins []string
	Env            string
	LogLevel       slog.Level
}

func NewRouter(JWTService jwt.Service, attendanceHandler AttendanceHandler, dashboardHandler DashboardHandler, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       opts.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "control-asistencia"),
		slog.String("version", "v1.0.0"),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendances", func(r chi.Router) {
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Post("/home-office", attendanceHandler.LogHomeOffice)
				r.Get("/me", attendanceHandler.GetMyAttendance)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", attendanceHandler.List)
					r.Get("/export", attendanceHandler.Export)
					r.Get("/date/{date}", attendanceHandler.ListByDate)
					r.Get("/employees/{employeeID}", attendanceHandler.ListByEmployee)
					r.Post("/leaves", attendanceHandler.LogLeave)
					r.Post("/holidays", attendanceHandler.RegisterHoliday)
					r.Delete("/holidays/{date}", attendanceHandler.DeleteHoliday)
					r.Get("/{id}", attendanceHandler.Get)
					r.Put("/{id}", attendanceHandler.Update)
				})
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/stats", dashboardHandler.GetSystemStats)
				r.Get("/weekly", dashboardHandler.GetWeeklySummary)
				r.Get("/weekly/{week}", dashboardHandler.GetWeeklySummaryByWeek)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	return r
}
