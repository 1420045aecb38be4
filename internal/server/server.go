// Package server exposes campaign generation, history, trends, the live
// dashboard and exports over a JSON HTTP API.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/creativesync/internal/dashboard"
	"github.com/sells-group/creativesync/internal/generate"
	"github.com/sells-group/creativesync/internal/model"
	"github.com/sells-group/creativesync/internal/scorer"
	"github.com/sells-group/creativesync/internal/store"
)

// Server holds the API dependencies and the live dashboard state.
type Server struct {
	store   store.Store
	gen     *generate.Service
	rng     scorer.RandSource
	now     func() time.Time
	origins []string
	keyed   ProviderFunc

	mu   sync.Mutex
	dash dashboard.State

	// themeMu serializes theme writes so the store and dashboard agree.
	themeMu sync.Mutex
}

// Option configures a Server.
type Option func(*Server)

// WithRand sets the randomness used for dashboard ticks and simulated metrics.
func WithRand(rng scorer.RandSource) Option {
	return func(s *Server) { s.rng = rng }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// ProviderFunc builds the provider for a newly saved Gemini key. A nil
// result keeps the current provider.
type ProviderFunc func(key string) generate.Provider

// WithProviderFunc rebuilds the generation provider whenever the Gemini key
// setting changes.
func WithProviderFunc(fn ProviderFunc) Option {
	return func(s *Server) { s.keyed = fn }
}

// WithAllowedOrigins sets the CORS origins. Empty allows any origin.
func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) { s.origins = origins }
}

// New creates a Server with a freshly seeded dashboard.
func New(st store.Store, gen *generate.Service, opts ...Option) *Server {
	s := &Server{
		store: st,
		gen:   gen,
		rng:   scorer.GlobalRand(),
		now:   time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	s.rng = &lockedRand{src: s.rng}
	s.dash = dashboard.Seed(s.now(), s.rng)
	return s
}

// lockedRand serializes a RandSource shared by handlers and the ticker.
type lockedRand struct {
	mu  sync.Mutex
	src scorer.RandSource
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Float64()
}

// Load syncs the dashboard with the stored theme and active campaign count.
func (s *Server) Load(ctx context.Context) error {
	theme, err := s.store.GetSetting(ctx, store.SettingTheme)
	if err != nil {
		return eris.Wrap(err, "server: load theme")
	}
	s.Dispatch(dashboard.SetTheme{Theme: theme})
	return s.refreshActive(ctx)
}

// Dispatch applies a to the dashboard and returns the new state.
func (s *Server) Dispatch(a dashboard.Action) dashboard.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dash = dashboard.Reduce(s.dash, a)
	return s.dash
}

// Dashboard returns the current dashboard state.
func (s *Server) Dashboard() dashboard.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dash
}

func (s *Server) tick() dashboard.State {
	return s.Dispatch(dashboard.Tick{Now: s.now(), Rand: s.rng})
}

// RunTicker advances the dashboard every interval until ctx is done.
func (s *Server) RunTicker(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		<-ctx.Done()
		return nil
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			s.tick()
		}
	}
}

func (s *Server) refreshActive(ctx context.Context) error {
	active, err := s.store.CountByStatus(ctx, model.CampaignStatusActive)
	if err != nil {
		return eris.Wrap(err, "server: count active campaigns")
	}
	s.Dispatch(dashboard.CampaignsChanged{Active: active})
	return nil
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(s.corsOptions()))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "provider": s.gen.ProviderName()})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/campaigns", func(r chi.Router) {
			r.Post("/generate", s.handleGenerate)
			r.Post("/", s.handleSaveCampaign)
			r.Get("/", s.handleListCampaigns)
			r.Get("/{id}", s.handleGetCampaign)
			r.Post("/{id}/duplicate", s.handleDuplicateCampaign)
			r.Delete("/{id}", s.handleDeleteCampaign)
		})
		r.Post("/variants", s.handleVariants)
		r.Post("/variants/export/{format}", s.handleExportVariants)
		r.Post("/score", s.handleScore)
		r.Post("/chat", s.handleChat)
		r.Get("/trends", s.handleListTrends)
		r.Post("/trends/apply", s.handleApplyTrend)
		r.Get("/dashboard", s.handleDashboard)
		r.Post("/dashboard/theme", s.handleToggleTheme)
		r.Get("/export/{format}", s.handleExport)
		r.Get("/profile", s.handleGetProfile)
		r.Put("/profile", s.handlePutProfile)
		r.Get("/settings/{key}", s.handleGetSetting)
		r.Put("/settings/{key}", s.handlePutSetting)
	})

	return r
}

func (s *Server) corsOptions() cors.Options {
	origins := s.origins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Debug("server: request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
