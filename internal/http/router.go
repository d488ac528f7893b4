package http

import (
	"net/http"

	"jobboard/internal/auth"
	"jobboard/internal/config"
	"jobboard/internal/http/handler"
	mw "jobboard/internal/http/middleware"
	"jobboard/internal/job"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Deps struct {
	Jobs *job.Service
	Auth auth.Resolver
	Log  *zap.Logger

	// RateLimit guards mutating routes when set.
	RateLimit func(http.Handler) http.Handler
}

func NewRouter(cfg config.Config, d Deps) http.Handler {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.Observe(log))
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	requireAuth := auth.RequireAuth(d.Auth)

	me := &handler.MeHandler{}
	r.With(requireAuth).Get("/me", me.Me)

	jobs := &handler.JobHandler{Svc: d.Jobs, Log: log}

	r.Route("/jobs", func(r chi.Router) {
		r.Get("/", jobs.List)
		r.Get("/{id}", jobs.Get)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			if d.RateLimit != nil {
				r.Use(d.RateLimit)
			}

			r.Post("/", jobs.Create)
			r.Put("/{id}", jobs.Update)
			r.Delete("/{id}", jobs.Delete)
		})
	})

	return r
}
