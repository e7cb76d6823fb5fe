// Package server assembles the development server: middleware, CORS, the
// API routes and the seeded in-memory store.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/trackme/trackme/internal/common/httpx"
	"github.com/trackme/trackme/internal/common/logtrace"
	"github.com/trackme/trackme/internal/common/middleware"
	"github.com/trackme/trackme/internal/devserver/apis"
	"github.com/trackme/trackme/internal/devserver/auth"
	"github.com/trackme/trackme/internal/devserver/config"
	"github.com/trackme/trackme/internal/devserver/nutrition"
	"github.com/trackme/trackme/internal/devserver/store"
)

// Origins allowed when CORS is handled outside debug mode.
var allowedOrigins = []string{
	"http://localhost:8081",
	"http://localhost:19006",
	"exp://192.168.1.1:8081",
}

// DevServer serves the Trackme API from memory.
type DevServer struct {
	Router *chi.Mux
	cfg    *config.ConfigParam
	store  *store.Store
	api    *apis.API
}

// Option configures a DevServer.
type Option func(*options)

type options struct {
	now       func() time.Time
	estimator nutrition.Estimator
}

// WithClock sets the time source of the store and the token issuer.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithEstimator replaces the nutrition estimator selected by the config.
func WithEstimator(e nutrition.Estimator) Option {
	return func(o *options) {
		o.estimator = e
	}
}

// CreateNewServer creates a server for cfg, seeding the store when enabled.
// A nil cfg selects the current configuration.
func CreateNewServer(cfg *config.ConfigParam, opts ...Option) (*DevServer, error) {
	if cfg == nil {
		cfg = config.Config()
	}
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	expiry, err := cfg.Auth.GetTokenExpiry()
	if err != nil {
		return nil, fmt.Errorf("invalid token expiry: %w", err)
	}
	if o.estimator == nil {
		o.estimator = nutrition.New(nutrition.RemoteConfig{
			AppID:  cfg.Nutrition.AppID,
			APIKey: cfg.Nutrition.APIKey,
			APIURL: cfg.Nutrition.APIURL,
		})
	}

	s := &DevServer{
		Router: chi.NewRouter(),
		cfg:    cfg,
		store:  store.New(store.WithClock(o.now)),
	}
	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, expiry).WithClock(o.now)
	s.api = apis.New(s.store, tokens, o.estimator, cfg.APIVersion)

	if cfg.Seed.Enabled {
		if err := Seed(context.Background(), s.store, cfg.Seed); err != nil {
			return nil, fmt.Errorf("seeding store: %w", err)
		}
	}
	return s, nil
}

// Store returns the backing store.
func (s *DevServer) Store() *store.Store {
	return s.store
}

// MountHandlers sets up all HTTP routes and middleware for the server.
func (s *DevServer) MountHandlers() {
	s.Router.Use(middleware.RequestLogger)
	s.Router.Use(middleware.PanicHandler)
	s.Router.Use(middleware.SetTimeout(s.cfg.GetRequestTimeout()))
	if s.cfg.HandleCORS {
		s.Router.Use(s.HandleCORS)
	}
	s.Router.NotFound(httpx.WrapHttpRsp(func(r *http.Request) (*httpx.Response, error) {
		return nil, httpx.ErrNotFound()
	}))
	s.Router.MethodNotAllowed(httpx.WrapHttpRsp(func(r *http.Request) (*httpx.Response, error) {
		return nil, httpx.ErrReqMethodNotSupported()
	}))
	s.api.Router(s.Router)
	if logtrace.IsTraceEnabled() {
		fmt.Println("Routes in devserver router")
		walkFunc := func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
			fmt.Printf("%s %s\n", method, route)
			return nil
		}
		if err := chi.Walk(s.Router, walkFunc); err != nil {
			log.Error().Err(err).Msg("Error walking router")
		}
	}
}

// HandleCORS allows the mobile and web apps to call the API. In debug mode
// every origin is allowed.
func (s *DevServer) HandleCORS(next http.Handler) http.Handler {
	origins := allowedOrigins
	if s.cfg.Debug {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Content-Length", "Accept-Encoding", logtrace.RequestIDHeader},
		ExposedHeaders:   []string{"Location", logtrace.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	})(next)
}
