/*
server.go - Router and middleware wiring

chi with the usual stack: CORS for a local frontend, structured request
logging (httplog over slog, ECS schema), panic recovery, request ids.
No authentication - this is a single-user personal tracker.
*/
package api

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

// NewRouter configures every route on a fresh chi mux.
func NewRouter(h *Handler, env string) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(env == "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "worktracker"),
		slog.String("env", env),
	)

	r.Use(middleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))
	r.Use(middleware.CleanPath)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/healthz"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/jobs", func(r chi.Router) {
			r.Get("/", h.ListJobs)
			r.Post("/", h.CreateJob)
			r.Get("/{id}", h.GetJob)
			r.Put("/{id}", h.UpdateJob)
			r.Delete("/{id}", h.DeleteJob)
			r.Post("/{id}/presets/{presetID}/apply", h.ApplyPreset)
		})

		r.Route("/shifts", func(r chi.Router) {
			r.Get("/", h.ListShifts)
			r.Post("/", h.CreateShift)
			r.Post("/markpaid", h.MarkPaid)
			r.Get("/{id}", h.GetShift)
			r.Put("/{id}", h.UpdateShift)
			r.Delete("/{id}", h.DeleteShift)
		})

		r.Route("/schedules", func(r chi.Router) {
			r.Get("/", h.ListSchedules)
			r.Post("/", h.CreateSchedule)
			r.Delete("/{id}", h.DeleteSchedule)
			r.Get("/{id}/periods", h.SchedulePeriods)
		})

		r.Route("/payslips", func(r chi.Router) {
			r.Get("/", h.ListPayslips)
			r.Post("/", h.CreatePayslip)
			r.Delete("/{id}", h.DeletePayslip)
			r.Get("/{id}/comparison", h.ComparePayslip)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/summary", h.ReportSummary)
			r.Get("/by-job", h.ReportByJob)
			r.Get("/buckets", h.ReportBuckets)
			r.Get("/unpaid", h.ReportUnpaid)
		})

		r.Get("/widget", h.Widget)
		r.Get("/export", h.Export)
		r.Post("/import", h.Import)
		r.Get("/settings", h.GetSettings)
		r.Put("/settings", h.UpdateSettings)

		r.Post("/demo/seed", h.SeedDemo)
	})

	return r
}
