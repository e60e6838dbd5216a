package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceLead(t *testing.T) {
	raw := map[string]any{
		"name":                 "Jane Doe",
		"title":                "VP Engineering",
		"company":              "Acme Corp",
		"location":             "Austin, TX",
		"contact_url_or_email": "jane@acme.com",
		"relevance_score":      float64(87),
	}

	lead, ok := CoerceLead(raw, "anthropic/claude-sonnet-4-5-20250929")
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", lead.Name)
	assert.Equal(t, "VP Engineering", lead.Title)
	assert.Equal(t, "Acme Corp", lead.Company)
	assert.Equal(t, "Austin, TX", lead.Location)
	assert.Equal(t, "jane@acme.com", lead.Contact)
	assert.Equal(t, 87, lead.RelevanceScore)
	assert.Equal(t, "anthropic/claude-sonnet-4-5-20250929", lead.Source)
}

func TestCoerceLeadAliases(t *testing.T) {
	raw := map[string]any{
		"full_name":    "John Smith",
		"job_title":    "Recruiter",
		"organization": "Globex",
		"linkedin_url": "https://linkedin.com/in/jsmith",
		"score":        float64(60),
	}

	lead, ok := CoerceLead(raw, "test")
	require.True(t, ok)
	assert.Equal(t, "John Smith", lead.Name)
	assert.Equal(t, "Recruiter", lead.Title)
	assert.Equal(t, "Globex", lead.Company)
	assert.Equal(t, "https://linkedin.com/in/jsmith", lead.Contact)
	assert.Equal(t, 60, lead.RelevanceScore)
}

func TestCoerceLeadRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
	}{
		{name: "missing_name", raw: map[string]any{"company": "Acme"}},
		{name: "missing_company", raw: map[string]any{"name": "Jane"}},
		{name: "blank_name", raw: map[string]any{"name": "   ", "company": "Acme"}},
		{name: "empty_record", raw: map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := CoerceLead(tt.raw, "test")
			assert.False(t, ok)
		})
	}
}

func TestCoerceCompany(t *testing.T) {
	raw := map[string]any{
		"company_name":          "Initech",
		"industry":              "Software",
		"headquarters_location": "Dallas, TX",
		"careers_page_url":      "https://initech.com/careers",
		"linkedin_or_domain":    "initech.com",
	}

	c, ok := CoerceCompany(raw)
	require.True(t, ok)
	assert.Equal(t, "Initech", c.Name)
	assert.Equal(t, "Software", c.Industry)
	assert.Equal(t, "Dallas, TX", c.Headquarters)
	assert.Equal(t, "https://initech.com/careers", c.CareersURL)
	assert.Equal(t, "initech.com", c.Domain)

	_, ok = CoerceCompany(map[string]any{"industry": "Software"})
	assert.False(t, ok)
}

func TestClampScore(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{name: "in_range", in: float64(87), want: 87},
		{name: "negative", in: float64(-5), want: 0},
		{name: "over_100", in: 137.6, want: 100},
		{name: "rounds_down", in: 42.4, want: 42},
		{name: "rounds_up", in: 42.5, want: 43},
		{name: "string", in: "abc", want: 0},
		{name: "nil", in: nil, want: 0},
		{name: "bool", in: true, want: 0},
		{name: "int", in: 55, want: 55},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampScore(tt.in))
		})
	}
}

func TestScoreFieldMissing(t *testing.T) {
	lead, ok := CoerceLead(map[string]any{"name": "Jane", "company": "Acme"}, "test")
	require.True(t, ok)
	assert.Equal(t, 0, lead.RelevanceScore, "missing score defaults to zero")
}
