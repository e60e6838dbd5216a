// Package server exposes the aggregation pipeline over HTTP: a batch JSON
// endpoint and a streaming server-sent-events variant.
package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/sells-group/leadscout/internal/model"
)

// Runner is the orchestrator surface the handlers need.
type Runner interface {
	Run(ctx context.Context, req model.Request) ([]model.Lead, error)
	Stream(ctx context.Context, req model.Request) <-chan model.Event
}

// Server routes lead discovery requests to named source strategies.
type Server struct {
	sources       map[string]Runner
	defaultSource string
}

// New creates a Server over the given sources. defaultSource is used when
// the request does not name one.
func New(sources map[string]Runner, defaultSource string) *Server {
	return &Server{
		sources:       sources,
		defaultSource: defaultSource,
	}
}

// Handler builds the HTTP routing table. CORS is permissive: the request
// boundary in front of this service owns real access control.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/leads", s.handleLeads)
		r.Post("/leads/stream", s.handleLeadsStream)
	})

	return r
}

// Unconfigured returns a Runner that fails every request with the given
// configuration error. Missing provider credentials are fatal for the whole
// operation; no partial attempt is made.
func Unconfigured(err error) Runner {
	return unconfiguredRunner{err: err}
}

type unconfiguredRunner struct {
	err error
}

func (u unconfiguredRunner) Run(_ context.Context, _ model.Request) ([]model.Lead, error) {
	return nil, u.err
}

func (u unconfiguredRunner) Stream(_ context.Context, _ model.Request) <-chan model.Event {
	ch := make(chan model.Event, 1)
	ch <- model.ErrorEvent(u.err.Error())
	close(ch)
	return ch
}

// runner resolves the source strategy for a request.
func (s *Server) runner(r *http.Request) (Runner, bool) {
	name := r.URL.Query().Get("source")
	if name == "" {
		name = s.defaultSource
	}
	runner, ok := s.sources[name]
	return runner, ok
}
