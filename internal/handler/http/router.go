package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/zeai-hr/timecore-backend-go/internal/handler/http/middleware"
	"github.com/zeai-hr/timecore-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	frontendURL string,
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timecore"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
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
			r.Post("/login", employeeHandler.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Get("/me", employeeHandler.Me)

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/login", attendanceHandler.Login)
				r.Post("/logout", attendanceHandler.Logout)
				r.Get("/status", attendanceHandler.Status)
				r.Get("/history", attendanceHandler.History)

				r.Route("/break", func(r chi.Router) {
					r.Post("/start", attendanceHandler.StartBreak)
					r.Post("/end", attendanceHandler.EndBreak)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Get("/", leaveHandler.List)
				r.Post("/", leaveHandler.Apply)
				r.Get("/balance", leaveHandler.Balance)
				r.Get("/history", leaveHandler.History)
				r.Get("/history/cancelled", leaveHandler.CancelledHistory)

				r.Route("/pending", func(r chi.Router) {
					r.Get("/", leaveHandler.Pending)
					r.Get("/count", leaveHandler.PendingCount)
				})

				r.Route("/{id}", func(r chi.Router) {
					r.Put("/", leaveHandler.Update)
					r.Patch("/status", leaveHandler.SetStatus)
					r.Post("/cancel", leaveHandler.Cancel)
				})
			})
		})
	})
	return r
}
