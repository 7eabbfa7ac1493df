package http

import (
	"log/slog"
	"os"

	"github.com/CodyMacMLE/athletiq-backend-go/internal/config"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/handler/http/middleware"
	"github.com/CodyMacMLE/athletiq-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Auth         AuthHandler
	CheckIn      CheckInHandler
	Event        EventHandler
	Sweep        SweepHandler
	Stats        StatsHandler
	Notification NotificationHandler
	Tag          TagHandler
	Team         TeamHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "athletiq"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
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

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/checkins", func(r chi.Router) {
				r.Post("/tap", h.CheckIn.Tap)
				r.Post("/ad-hoc", h.CheckIn.AdHoc)
				r.Get("/my", h.CheckIn.GetMyCheckIns)

				// Staff only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireStaff)
					r.Post("/{id}/approve", h.CheckIn.Approve)
					r.Post("/{id}/deny", h.CheckIn.Deny)
				})
			})

			r.Route("/events", func(r chi.Router) {
				r.Get("/", h.Event.List)
				r.Get("/{id}", h.Event.Get)
				r.Get("/{id}/checkins", h.CheckIn.GetEventRoster)

				// Staff only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireStaff)
					r.Post("/", h.Event.Create)
					r.Delete("/{id}", h.Event.Delete)
				})
			})

			r.Route("/teams", func(r chi.Router) {
				r.Get("/", h.Team.List)
				r.Get("/{id}", h.Team.Get)

				// Staff only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireStaff)
					r.Post("/{id}/members", h.Team.AddMember)
					r.Delete("/{id}/members/{userId}", h.Team.RemoveMember)
				})
			})

			r.Route("/stats", func(r chi.Router) {
				r.Get("/", h.Stats.Summary)
				r.Get("/trend", h.Stats.Trend)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Post("/{id}/read", h.Notification.MarkAsRead)
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)

				r.Route("/sweeps", func(r chi.Router) {
					r.Post("/absences", h.Sweep.RunAbsences)
					r.Post("/auto-checkout", h.Sweep.RunAutoCheckouts)
				})

				r.Route("/tags", func(r chi.Router) {
					r.Get("/", h.Tag.List)
					r.Post("/", h.Tag.Create)
					r.Post("/{id}/deactivate", h.Tag.Deactivate)
				})
			})
		})
	})
	return r
}
