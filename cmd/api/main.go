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

	"github.com/JuanAlonzo/control-asistencia-backend/internal/config"
	"github.com/JuanAlonzo/control-asistencia-backend/internal/domain/attendance"
	"github.com/JuanAlonzo/control-asistencia-backend/internal/domain/dashboard"
	"github.com/JuanAlonzo/control-asistencia-backend/internal/domain/employee"
	appHTTP "github.com/JuanAlonzo/control-asistencia-backend/internal/handler/http"
	"github.com/JuanAlonzo/control-asistencia-backend/internal/pkg/clock"
	"github.com/JuanAlonzo/control-asistencia-backend/internal/pkg/database"
	"github.com/JuanAlonzo/control-asistencia-backend/internal/pkg/jwt"
	"github.com/JuanAlonzo/control-asistencia-backend/internal/repository/postgresql"
	"github.com/JuanAlonzo/control-asistencia-backend/internal/repository/sqlite"
	attendanceService "github.com/JuanAlonzo/control-asistencia-backend/internal/service/attendance"
	dashboardService "github.com/JuanAlonzo/control-asistencia-backend/internal/service/dashboard"
)

type repositories struct {
	attendance attendance.AttendanceRepository
	employee   employee.EmployeeRepository
	dashboard  dashboard.DashboardRepository
	close      func()
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		db, err := database.NewSQLiteDB(ctx, cfg.Database.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &repositories{
			attendance: sqlite.NewAttendanceRepository(db),
			employee:   sqlite.NewEmployeeRepository(db),
			dashboard:  sqlite.NewDashboardRepository(db),
			close:      func() { _ = db.Close() },
		}, nil
	default:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return nil, err
		}
		if err := database.MigratePostgreSQL(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		return &repositories{
			attendance: postgresql.NewAttendanceRepository(db),
			employee:   postgresql.NewEmployeeRepository(db),
			dashboard:  postgresql.NewDashboardRepository(db),
			close:      db.Close,
		}, nil
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel()})))

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("Invalid timezone", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		slog.Error("Error connecting to database", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer repos.close()

	clk := clock.New()
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	attendanceSvc := attendanceService.NewAttendanceService(
		repos.attendance,
		repos.employee,
		clk,
		loc,
		cfg.Attendance.HolidayAllowSunday,
	)
	dashboardSvc := dashboardService.NewDashboardService(
		repos.dashboard,
		repos.employee,
		repos.attendance,
		clk,
		loc,
	)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)

	router := appHTTP.NewRouter(JWTService, attendanceHandler, dashboardHandler, appHTTP.RouterOptions{
		AllowedOrigins: cfg.App.CORSAllowedOrigins,
		Env:            cfg.App.Env,
		LogLevel:       cfg.LogLevel(),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "driver", cfg.Database.Driver, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
	slog.Info("Server stopped")
}
