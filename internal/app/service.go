// Package service wires the backend client, the view-sync and the page
// server into the runnable staffboard service.
package service

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/okian/staffboard/internal/adapters/backend"
	"github.com/okian/staffboard/internal/adapters/http/site"
	"github.com/okian/staffboard/internal/viewsync"
	"github.com/okian/staffboard/pkg/logger"
)

const (
	defaultBackendURL  = "http://localhost:5000"
	defaultEmployeeID  = 1
	defaultOpenTimeout = 5 * time.Second
)

// Service owns the page-serving components.
type Service struct {
	mu sync.RWMutex

	// Core components
	client *backend.Client
	views  *viewsync.ViewSync
	pages  *site.Server

	// Configuration
	backendURL     string
	employeeID     int
	requestTimeout time.Duration
	maxFailures    int
	openTimeout    time.Duration
	httpClient     *http.Client

	// State
	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithBackendURL sets the base URL of the REST backend.
func WithBackendURL(u string) Option {
	return func(s *Service) {
		if u != "" {
			s.backendURL = u
		}
	}
}

// WithEmployeeID sets the placeholder employee used by employee-scoped views.
func WithEmployeeID(id int) Option {
	return func(s *Service) {
		if id > 0 {
			s.employeeID = id
		}
	}
}

// WithRequestTimeout bounds every backend call. Zero disables the timeout.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.requestTimeout = d
		}
	}
}

// WithBreaker configures the backend circuit breaker. maxFailures of zero
// disables it.
func WithBreaker(maxFailures int, openTimeout time.Duration) Option {
	return func(s *Service) {
		if maxFailures >= 0 {
			s.maxFailures = maxFailures
		}
		if openTimeout > 0 {
			s.openTimeout = openTimeout
		}
	}
}

// WithHTTPClient replaces the http.Client used to reach the backend.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *Service) {
		s.httpClient = hc
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration. Nothing is
// connected until Start.
func New(opts ...Option) *Service {
	s := &Service{
		backendURL:  defaultBackendURL,
		employeeID:  defaultEmployeeID,
		openTimeout: defaultOpenTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the backend client, the view-sync and the page server.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting staffboard service...")

	clientOpts := []backend.Option{
		backend.WithTimeout(s.requestTimeout),
		backend.WithBreaker(s.maxFailures, s.openTimeout),
		backend.WithLogger(s.logger.Named("backend")),
	}
	if s.httpClient != nil {
		clientOpts = append(clientOpts, backend.WithHTTPClient(s.httpClient))
	}
	client, err := backend.New(s.backendURL, clientOpts...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStart, err)
	}

	s.client = client
	s.views = viewsync.New(client, viewsync.WithLogger(s.logger.Named("viewsync")))
	s.pages = site.NewServer(s.views,
		site.WithLogger(s.logger.Named("site")),
		site.WithSession(viewsync.Session{EmployeeID: s.employeeID}),
	)

	s.started = true
	s.logger.Info(ctx, "staffboard service started",
		logger.String("backendURL", client.BaseURL()),
		logger.Int("employeeID", s.employeeID),
		logger.Int("requestTimeoutMS", int(s.requestTimeout.Milliseconds())),
		logger.Int("breakerMaxFailures", s.maxFailures),
	)
	return nil
}

// Stop releases the components. Idle backend connections are closed.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping staffboard service...")

	s.client.Close()
	s.client = nil
	s.views = nil
	s.pages = nil

	s.started = false
	s.logger.Info(context.Background(), "staffboard service stopped")
}

// Handler returns the routed page server.
func (s *Service) Handler(ctx context.Context) (http.Handler, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, ErrNotStarted
	}
	return s.pages.Handler(ctx), nil
}

// Views returns the view-sync, or nil before Start.
func (s *Service) Views() *viewsync.ViewSync {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.views
}

// GetStats returns service state for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]any{
		"started":            s.started,
		"backendURL":         s.backendURL,
		"employeeID":         s.employeeID,
		"requestTimeoutMS":   int(s.requestTimeout.Milliseconds()),
		"breakerMaxFailures": s.maxFailures,
	}
}
