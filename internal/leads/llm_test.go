package leads

import (
	"context"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadscout/internal/model"
)

const leadArrayJSON = `[{"name": "Jane Doe", "title": "VP Eng", "company": "Acme", "relevance_score": 88}]`

// collectEvents returns a concurrency-safe EmitFunc and a getter for what it saw.
func collectEvents() (EmitFunc, func() []model.Event) {
	var mu sync.Mutex
	var events []model.Event
	emit := func(e model.Event) {
		mu.Lock()
		events = append(events, e)
		mu.Unlock()
	}
	get := func() []model.Event {
		mu.Lock()
		defer mu.Unlock()
		return append([]model.Event(nil), events...)
	}
	return emit, get
}

func TestLLMDiscover(t *testing.T) {
	completer := &stubCompleter{
		name: "anthropic/test-model",
		fn: func(_ context.Context, system, prompt string) (string, error) {
			assert.Contains(t, system, "JSON array")
			assert.Contains(t, prompt, "Search query:")
			return leadArrayJSON, nil
		},
	}
	source := NewLLMSource([]Completer{completer}, 2)

	emit, events := collectEvents()
	req := model.Request{Prompt: "golang engineers", JobDescription: "Senior Go role"}

	got, err := source.Discover(context.Background(), req, emit)

	require.NoError(t, err)
	require.NotEmpty(t, got)
	for _, lead := range got {
		assert.Equal(t, "Jane Doe", lead.Name)
		assert.Equal(t, "Acme", lead.Company)
		assert.Equal(t, 88, lead.RelevanceScore)
		assert.Equal(t, "anthropic/test-model", lead.Source)
	}

	var leadEvents, progressEvents int
	for _, e := range events() {
		switch e.Type {
		case model.EventLead:
			leadEvents++
			require.NotNil(t, e.Lead)
		case model.EventProgress:
			progressEvents++
		}
	}
	assert.Equal(t, len(got), leadEvents)
	assert.NotZero(t, progressEvents)
}

func TestLLMDiscoverFallsThroughChain(t *testing.T) {
	primary := &stubCompleter{
		name: "anthropic/broken",
		fn: func(context.Context, string, string) (string, error) {
			return "", eris.New("model overloaded")
		},
	}
	fallback := &stubCompleter{
		name: "perplexity/sonar-pro",
		fn: func(context.Context, string, string) (string, error) {
			return leadArrayJSON, nil
		},
	}
	source := NewLLMSource([]Completer{primary, fallback}, 1)

	got, err := source.Discover(context.Background(), model.Request{Prompt: "sre"}, func(model.Event) {})

	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "perplexity/sonar-pro", got[0].Source)
}

func TestLLMDiscoverSkipsFailedQueries(t *testing.T) {
	completer := &stubCompleter{
		name: "anthropic/down",
		fn: func(context.Context, string, string) (string, error) {
			return "", eris.New("provider unavailable")
		},
	}
	source := NewLLMSource([]Completer{completer}, 2)

	got, err := source.Discover(context.Background(), model.Request{Prompt: "devops"}, func(model.Event) {})

	require.NoError(t, err, "per-query failures are skipped, not fatal")
	assert.Empty(t, got)
}

func TestLLMDiscoverMalformedResponse(t *testing.T) {
	completer := &stubCompleter{
		name: "anthropic/chatty",
		fn: func(context.Context, string, string) (string, error) {
			return "I'm sorry, I couldn't find anyone matching that.", nil
		},
	}
	source := NewLLMSource([]Completer{completer}, 2)

	got, err := source.Discover(context.Background(), model.Request{Prompt: "qa"}, func(model.Event) {})

	require.NoError(t, err)
	assert.Empty(t, got, "unparseable responses degrade to zero leads")
}

func TestLLMDiscoverNoCompleters(t *testing.T) {
	source := NewLLMSource(nil, 2)

	_, err := source.Discover(context.Background(), model.Request{Prompt: "x"}, func(model.Event) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no completers")
}

func TestLLMDiscoverCancelled(t *testing.T) {
	completer := &stubCompleter{
		name: "anthropic/slow",
		fn: func(ctx context.Context, _, _ string) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
	}
	source := NewLLMSource([]Completer{completer}, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := source.Discover(ctx, model.Request{Prompt: "x"}, func(model.Event) {})
	require.Error(t, err)
}

func TestNewLLMSourceClampsWorkers(t *testing.T) {
	assert.Equal(t, defaultWorkers, NewLLMSource(nil, 0).workers)
	assert.Equal(t, defaultWorkers, NewLLMSource(nil, -3).workers)
	assert.Equal(t, maxWorkers, NewLLMSource(nil, 99).workers)
	assert.Equal(t, 3, NewLLMSource(nil, 3).workers)
}

func TestClipRunes(t *testing.T) {
	assert.Equal(t, "éé", clipRunes("ééééé", 5), "never splits a multi-byte rune")
	assert.Equal(t, "abc", clipRunes("abcdef", 3))
	assert.Equal(t, "café", clipRunes("café", 10))
}

func TestBuildLeadPromptValidUTF8(t *testing.T) {
	req := model.Request{JobDescription: strings.Repeat("ingénieur logiciel confirmé ", 100)}

	prompt := buildLeadPrompt("développeurs", req)
	assert.True(t, utf8.ValidString(prompt))
}

func TestBuildLeadPrompt(t *testing.T) {
	req := model.Request{
		Location:       "Austin, TX",
		Industry:       "fintech",
		CompanySize:    "50-200",
		JobDescription: "Own the payments platform.",
	}

	prompt := buildLeadPrompt("golang engineers", req)

	assert.Contains(t, prompt, "Search query: golang engineers")
	assert.Contains(t, prompt, "Location: Austin, TX")
	assert.Contains(t, prompt, "Industry: fintech")
	assert.Contains(t, prompt, "Company size: 50-200")
	assert.Contains(t, prompt, "Own the payments platform.")
}
