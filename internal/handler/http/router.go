package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/worklane/timekeep-backend-go/internal/handler/http/middleware"
	"github.com/worklane/timekeep-backend-go/internal/pkg/jwt"
)

func NewRouter(jwtService jwt.Service, attendanceHandler AttendanceHandler, timeOffHandler TimeOffHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timekeep"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
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
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Get("/", attendanceHandler.List)
				r.Get("/summary", attendanceHandler.Summary)
			})

			r.Route("/timeoff", func(r chi.Router) {
				r.Get("/types", timeOffHandler.ListTypes)
				r.Get("/allocations", timeOffHandler.ListAllocations)

				r.Route("/requests", func(r chi.Router) {
					r.Post("/", timeOffHandler.Submit)
					r.Get("/", timeOffHandler.ListRequests)
					r.Get("/{requestID}", timeOffHandler.GetRequest)

					// Admin/HR only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireApprover)
						r.Post("/{requestID}/approve", timeOffHandler.Approve)
						r.Post("/{requestID}/reject", timeOffHandler.Reject)
					})
				})

				// Admin/HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireApprover)
					r.Post("/allocations/initialize", timeOffHandler.InitializeAllocations)
				})
			})
		})
	})
	return r
}
