package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/chronosforce/chronos-backend-go/internal/config"
	"github.com/chronosforce/chronos-backend-go/internal/domain/employee"
	"github.com/chronosforce/chronos-backend-go/internal/handler/http/middleware"
	"github.com/chronosforce/chronos-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers groups every route handler the router mounts.
type Handlers struct {
	Auth       AuthHandler
	Events     EventHandler
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Leave      LeaveHandler
	Activity   ActivityHandler
}

func NewRouter(cfg config.AppConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "chronos"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Post("/auth/login", h.Auth.Login)

		// EventSource authenticates with a query token
		r.Get("/events", h.Events.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(chiMiddleware.AllowContentEncoding("application/json"))
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Post("/auth/sse-token", h.Auth.SSEToken)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/me", h.Employee.Me)

				// Team leads and above
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(employee.RoleTeamLead))
					r.Get("/team", h.Employee.Team)
					r.Put("/{id}/overtime", h.Employee.SetOvertime)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/status", h.Attendance.UpdateStatus)
				r.Post("/session", h.Attendance.StartSession)
				r.Get("/records", h.Attendance.ListRecords)
			})

			r.Route("/leave/requests", func(r chi.Router) {
				r.Post("/", h.Leave.CreateRequest)
				r.Get("/", h.Leave.ListRequests)
				r.Get("/my", h.Leave.GetMyRequests)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Leave.GetRequest)
					r.Delete("/", h.Leave.DismissRequest)
					r.Post("/approve", h.Leave.ApproveRequest)
					r.Post("/reject", h.Leave.RejectRequest)
				})
			})

			r.Route("/activity-logs", func(r chi.Router) {
				r.Post("/", h.Activity.Submit)
				r.Get("/my", h.Activity.ListMine)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not Found", http.StatusNotFound)
	})
	return r
}
