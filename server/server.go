package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/bursary-portal/achievements"
	"github.com/jrsteele09/bursary-portal/bursaryapi"
	"github.com/jrsteele09/bursary-portal/internal/config"
	"github.com/jrsteele09/bursary-portal/storage"
	"github.com/jrsteele09/bursary-portal/users"
	"github.com/rs/zerolog/log"
)

// BursaryAPI is the remote API as used by the views.
type BursaryAPI interface {
	Login(ctx context.Context, email, password string) (users.Snapshot, string, error)
	Register(ctx context.Context, reg users.Registration) error
	CurrentUser(ctx context.Context, token string) (bursaryapi.Profile, error)
	ApplicationStatus(ctx context.Context, token, admissionNumber string) (bursaryapi.StatusReport, error)
	Apply(ctx context.Context, token string) error
	SubmitApplication(ctx context.Context, token string, form bursaryapi.ApplicationForm) (bursaryapi.Applicant, error)
	ListApplicants(ctx context.Context, token string) ([]bursaryapi.Applicant, error)
	UpdateApplicantStatus(ctx context.Context, token string, id int, status bursaryapi.ApplicationStatus) (bursaryapi.Applicant, error)
	DeleteApplicant(ctx context.Context, token string, id int) error
}

var _ BursaryAPI = (*bursaryapi.Client)(nil)

type Server struct {
	env          string // Environment (e.g., "DEV", "PROD")
	mux          *http.ServeMux
	routes       []string
	config       config.Config
	storage      storage.Provider
	api          BursaryAPI
	achievements achievements.Repo
	pages        *pageSet
	now          func() time.Time
}

type Option func(*Server)

// WithClock replaces time.Now for token expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

func New(cfg config.Config, provider storage.Provider, api BursaryAPI, achievementRepo achievements.Repo, opts ...Option) (*Server, error) {
	pages, err := loadPages()
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to load templates: %w", err)
	}

	s := &Server{
		env:          cfg.GetEnv(),
		mux:          http.NewServeMux(),
		config:       cfg,
		storage:      provider,
		api:          api,
		achievements: achievementRepo,
		pages:        pages,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func coloredMethod(method string) string {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		return color + paddedMethod + ResetColor
	}
	return Gray + paddedMethod + ResetColor
}

func logRoute(method, path string) {
	log.Info().Msgf("[%-19s] %s", coloredMethod(method), path)
}

func logError(method, path, error string) {
	log.Error().Msgf("[%-19s] %s %s", coloredMethod(method), path, Red+error+ResetColor)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
