package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/leadscout/internal/config"
	"github.com/sells-group/leadscout/internal/leads"
	"github.com/sells-group/leadscout/internal/store"
	anthropicpkg "github.com/sells-group/leadscout/pkg/anthropic"
	"github.com/sells-group/leadscout/pkg/hunter"
	"github.com/sells-group/leadscout/pkg/perplexity"
	"github.com/sells-group/leadscout/pkg/serper"
)

// initStore opens the run-history backend named by config. Driver "none"
// disables history.
func initStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Driver {
	case "", "none":
		return nil, nil
	case "sqlite":
		st, err := store.NewSQLite(cfg.Store.Path)
		if err != nil {
			return nil, err
		}
		if err := st.Migrate(ctx); err != nil {
			st.Close()
			return nil, err
		}
		return st, nil
	case "postgres":
		st, err := store.NewPostgres(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := st.Migrate(ctx); err != nil {
			st.Close()
			return nil, err
		}
		return st, nil
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// newLLMOrchestrator wires the single-phase source: an Anthropic model
// chain first, Perplexity as the final fallback.
func newLLMOrchestrator(cfg *config.Config, st store.Store) (*leads.Orchestrator, error) {
	if err := cfg.ValidateLLM(); err != nil {
		return nil, err
	}

	var completers []leads.Completer
	if cfg.Anthropic.Key != "" {
		client := anthropicpkg.NewClient(cfg.Anthropic.Key)
		for _, m := range cfg.Anthropic.Models {
			completers = append(completers, leads.NewAnthropicCompleter(client, m))
		}
	}
	if cfg.Perplexity.Key != "" {
		client := perplexity.NewClient(cfg.Perplexity.Key,
			perplexity.WithBaseURL(cfg.Perplexity.BaseURL),
			perplexity.WithModel(cfg.Perplexity.Model),
		)
		completers = append(completers, leads.NewPerplexityCompleter(client, cfg.Perplexity.Model))
	}

	source := leads.NewLLMSource(completers, cfg.Pipeline.Workers)
	return newOrchestrator(source, st), nil
}

// newDiscoverOrchestrator wires the two-phase discover-then-enrich source.
func newDiscoverOrchestrator(cfg *config.Config, st store.Store) (*leads.Orchestrator, error) {
	if err := cfg.ValidateDiscovery(); err != nil {
		return nil, err
	}

	search := serper.NewClient(cfg.Serper.Key, serper.WithBaseURL(cfg.Serper.BaseURL))
	enrich := hunter.NewClient(cfg.Hunter.Key, hunter.WithBaseURL(cfg.Hunter.BaseURL))

	source := leads.NewDiscoverSource(search, enrich, cfg.Pipeline.MaxCompanies, cfg.Pipeline.MaxContacts)
	return newOrchestrator(source, st), nil
}

func newOrchestrator(source leads.Source, st store.Store) *leads.Orchestrator {
	if st == nil {
		return leads.NewOrchestrator(source)
	}
	return leads.NewOrchestrator(source, leads.WithStore(st))
}
