package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/chronosforce/chronos-backend-go/internal/config"
	"github.com/chronosforce/chronos-backend-go/internal/domain/activity"
	"github.com/chronosforce/chronos-backend-go/internal/domain/attendance"
	"github.com/chronosforce/chronos-backend-go/internal/domain/employee"
	"github.com/chronosforce/chronos-backend-go/internal/domain/leave"
	"github.com/chronosforce/chronos-backend-go/internal/domain/project"
	appHTTP "github.com/chronosforce/chronos-backend-go/internal/handler/http"
	"github.com/chronosforce/chronos-backend-go/internal/pkg/clock"
	"github.com/chronosforce/chronos-backend-go/internal/pkg/cron"
	"github.com/chronosforce/chronos-backend-go/internal/pkg/database"
	"github.com/chronosforce/chronos-backend-go/internal/pkg/jwt"
	"github.com/chronosforce/chronos-backend-go/internal/pkg/sse"
	"github.com/chronosforce/chronos-backend-go/internal/repository/memory"
	"github.com/chronosforce/chronos-backend-go/internal/repository/postgresql"
	activityService "github.com/chronosforce/chronos-backend-go/internal/service/activity"
	attendanceService "github.com/chronosforce/chronos-backend-go/internal/service/attendance"
	serviceAuth "github.com/chronosforce/chronos-backend-go/internal/service/auth"
	employeeService "github.com/chronosforce/chronos-backend-go/internal/service/employee"
	leaveService "github.com/chronosforce/chronos-backend-go/internal/service/leave"
)

// repositories is the storage backend selected by STORE_DRIVER.
type repositories struct {
	tx          database.Transactor
	employees   employee.EmployeeRepository
	projects    project.ProjectRepository
	records     attendance.RecordRepository
	leaves      leave.LeaveRequestRepository
	activityLog activity.ActivityLogRepository
	close       func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.App.LogLevel),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		slog.Error("Error initializing storage", "driver", cfg.Store.Driver, "error", err)
		os.Exit(1)
	}
	defer repos.close()

	clk := clock.New()
	hub := sse.NewHub()
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	policy := attendance.NewTransitionPolicy(cfg.Org.StrictAttendance)

	authSvc := serviceAuth.NewAuthService(repos.employees, JWTService)
	employeeSvc := employeeService.NewEmployeeService(repos.employees, cfg.Org.RootEmployeeID)
	attendanceSvc := attendanceService.NewAttendanceService(
		repos.tx,
		repos.employees,
		repos.projects,
		repos.records,
		policy,
		hub,
		clk,
		cfg.Org.Location,
		cfg.Org.RootEmployeeID,
	)
	leaveSvc := leaveService.NewLeaveService(
		repos.tx,
		repos.leaves,
		repos.employees,
		hub,
		clk,
		cfg.Org.RootEmployeeID,
	)
	activitySvc := activityService.NewActivityService(repos.activityLog, repos.employees)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc, cfg.Org.ShiftTickInterval).RegisterJobs(scheduler)
	scheduler.Start()

	router := appHTTP.NewRouter(cfg.App, JWTService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc),
		Events:     appHTTP.NewEventHandler(hub, JWTService),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Activity:   appHTTP.NewActivityHandler(activitySvc),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "store", cfg.Store.Driver, "timezone", cfg.Org.Timezone)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
	scheduler.Stop()
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		store := memory.NewStore()
		if err := memory.Seed(ctx, store, cfg.Store.SeedPassword); err != nil {
			return nil, fmt.Errorf("seed memory store: %w", err)
		}
		slog.Warn("Using in-memory store; data is lost on restart")
		return &repositories{
			tx:          store,
			employees:   memory.NewEmployeeRepository(store),
			projects:    memory.NewProjectRepository(store),
			records:     memory.NewRecordRepository(store),
			leaves:      memory.NewLeaveRequestRepository(store),
			activityLog: memory.NewActivityLogRepository(store),
			close:       func() {},
		}, nil

	case config.StoreDriverPostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		return &repositories{
			tx:          postgresql.NewTransactor(db),
			employees:   postgresql.NewEmployeeRepository(db),
			projects:    postgresql.NewProjectRepository(db),
			records:     postgresql.NewRecordRepository(db),
			leaves:      postgresql.NewLeaveRequestRepository(db),
			activityLog: postgresql.NewActivityLogRepository(db),
			close:       db.Close,
		}, nil
	}
	return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
