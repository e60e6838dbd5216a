package leads

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/leadscout/internal/model"
	"github.com/sells-group/leadscout/internal/store"
	"github.com/sells-group/leadscout/pkg/hunter"
	"github.com/sells-group/leadscout/pkg/serper"
)

// stubCompleter is a function-backed Completer for chain tests.
type stubCompleter struct {
	name string
	fn   func(ctx context.Context, system, prompt string) (string, error)
}

func (s *stubCompleter) Name() string { return s.name }

func (s *stubCompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	return s.fn(ctx, system, prompt)
}

type mockSearch struct {
	mock.Mock
}

func (m *mockSearch) Search(ctx context.Context, query string, opts ...serper.SearchOption) (*serper.SearchResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*serper.SearchResponse), args.Error(1)
}

type mockEnrich struct {
	mock.Mock
}

func (m *mockEnrich) DomainSearch(ctx context.Context, domain string, opts ...hunter.SearchOption) (*hunter.DomainSearchResponse, error) {
	args := m.Called(ctx, domain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hunter.DomainSearchResponse), args.Error(1)
}

// stubSource returns canned candidates for orchestrator tests.
type stubSource struct {
	name       string
	candidates []model.Lead
	err        error
	events     []model.Event
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Discover(_ context.Context, _ model.Request, emit EmitFunc) ([]model.Lead, error) {
	for _, e := range s.events {
		emit(e)
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.candidates, nil
}

// memStore records run history in memory for orchestrator tests.
type memStore struct {
	created   []model.Run
	completed map[string]*model.RunResult
	statuses  map[string]model.RunStatus
}

func newMemStore() *memStore {
	return &memStore{
		completed: make(map[string]*model.RunResult),
		statuses:  make(map[string]model.RunStatus),
	}
}

func (m *memStore) CreateRun(_ context.Context, req model.Request, source string) (*model.Run, error) {
	run := model.Run{
		ID:      "run-1",
		Source:  source,
		Request: req,
		Status:  model.RunStatusRunning,
	}
	m.created = append(m.created, run)
	return &run, nil
}

func (m *memStore) CompleteRun(_ context.Context, runID string, status model.RunStatus, result *model.RunResult) error {
	m.statuses[runID] = status
	m.completed[runID] = result
	return nil
}

func (m *memStore) GetRun(_ context.Context, runID string) (*model.Run, error) {
	for _, run := range m.created {
		if run.ID == runID {
			return &run, nil
		}
	}
	return nil, nil
}

func (m *memStore) ListRuns(_ context.Context, _ store.RunFilter) ([]model.Run, error) {
	return m.created, nil
}

func (m *memStore) Migrate(_ context.Context) error { return nil }
func (m *memStore) Close() error                    { return nil }
