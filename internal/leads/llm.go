package leads

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/leadscout/internal/model"
	"github.com/sells-group/leadscout/internal/normalize"
	"github.com/sells-group/leadscout/internal/query"
	"github.com/sells-group/leadscout/internal/resilience"
)

const (
	// defaultWorkers bounds concurrent in-flight completions per run.
	defaultWorkers = 4
	maxWorkers     = 5

	// jdPromptLimit bounds how much job description is sent per completion.
	jdPromptLimit = 1500
)

const llmSystemPrompt = `You are a recruiting research assistant. Given a search query about a job opening, identify real hiring managers, recruiters, and companies that are likely hiring for it.

Respond with ONLY a JSON array, no other text. Each element:
{"name": "<person or company name>", "title": "<job title or role>", "company": "<company name>", "location": "<city/region>", "contact_url_or_email": "<profile URL, careers URL, or email>", "relevance_score": <integer 0-100>}

Omit entries you cannot name. Do not invent contact details.`

// LLMSource is the single-phase strategy: every query variation runs through
// a prioritized completion chain, and each completion's JSON payload is
// normalized into candidate leads. Individual query failures are skipped.
type LLMSource struct {
	completers []Completer
	workers    int
	retry      resilience.RetryConfig
}

// NewLLMSource creates an LLMSource over a non-empty completion chain.
func NewLLMSource(completers []Completer, workers int) *LLMSource {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if workers > maxWorkers {
		workers = maxWorkers
	}
	return &LLMSource{
		completers: completers,
		workers:    workers,
		retry:      resilience.DefaultRetryConfig(),
	}
}

// Name implements Source.
func (s *LLMSource) Name() string { return "llm" }

// Discover implements Source. Queries fan out over a bounded worker pool;
// candidates accumulate in discovery order across queries.
func (s *LLMSource) Discover(ctx context.Context, req model.Request, emit EmitFunc) ([]model.Lead, error) {
	if len(s.completers) == 0 {
		return nil, eris.New("llm: no completers configured")
	}

	log := zap.L().With(zap.String("source", s.Name()))
	queries := query.Variations(req.Prompt, req.JobDescription)
	log.Info("fanning out query variations",
		zap.Int("queries", len(queries)),
		zap.Int("workers", s.workers),
	)

	var (
		mu         sync.Mutex
		candidates []model.Lead
		completed  atomic.Int64
	)

	var g errgroup.Group
	g.SetLimit(s.workers)

	for _, q := range queries {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}

			text, provider, err := s.complete(ctx, q, req)
			if err != nil {
				log.Warn("query failed, skipping", zap.String("query", q), zap.Error(err))
			} else {
				found := 0
				for _, raw := range normalize.ExtractArray(text) {
					lead, ok := normalize.CoerceLead(raw, provider)
					if !ok {
						continue
					}
					mu.Lock()
					candidates = append(candidates, lead)
					mu.Unlock()
					emit(model.LeadEvent(lead))
					found++
				}
				log.Debug("query complete", zap.String("query", q), zap.Int("leads", found))
			}

			done := completed.Add(1)
			emit(model.ProgressEvent(int(done) * 100 / len(queries)))
			return nil
		})
	}

	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "llm: run cancelled")
	}
	return candidates, nil
}

// complete runs one query through the completion chain, accepting the first
// provider/model that returns a non-error response.
func (s *LLMSource) complete(ctx context.Context, q string, req model.Request) (text, provider string, err error) {
	prompt := buildLeadPrompt(q, req)

	var lastErr error
	for _, c := range s.completers {
		cfg := s.retry
		cfg.OnRetry = resilience.RetryLogger(c.Name(), "complete")

		out, cerr := resilience.DoVal(ctx, cfg, func(ctx context.Context) (string, error) {
			return c.Complete(ctx, llmSystemPrompt, prompt)
		})
		if cerr == nil {
			return out, c.Name(), nil
		}
		lastErr = cerr
		if ctx.Err() != nil {
			break
		}
		zap.L().Warn("completer failed, trying next",
			zap.String("completer", c.Name()),
			zap.Error(cerr),
		)
	}
	return "", "", eris.Wrap(lastErr, "llm: all completers failed")
}

// clipRunes cuts s to at most n bytes without splitting a multi-byte rune.
func clipRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func buildLeadPrompt(q string, req model.Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Search query: %s\n", q)
	if req.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", req.Location)
	}
	if req.Industry != "" {
		fmt.Fprintf(&b, "Industry: %s\n", req.Industry)
	}
	if req.CompanySize != "" {
		fmt.Fprintf(&b, "Company size: %s\n", req.CompanySize)
	}
	if jd := strings.TrimSpace(req.JobDescription); jd != "" {
		fmt.Fprintf(&b, "\nJob description:\n%s\n", clipRunes(jd, jdPromptLimit))
	}
	return b.String()
}
