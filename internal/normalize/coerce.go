package normalize

import (
	"fmt"
	"math"
	"strings"

	"github.com/sells-group/leadscout/internal/model"
)

// Alias tables map each canonical field to the key names LLMs have been
// observed to use for it, in lookup order. One generic routine consults
// these instead of per-field conditionals.
var leadAliases = map[string][]string{
	"name":     {"name", "full_name", "contact_name", "person"},
	"title":    {"title", "job_title", "position", "role"},
	"company":  {"company", "company_name", "organization", "employer"},
	"location": {"location", "city", "region"},
	"contact":  {"contact_url_or_email", "contact", "profile_url", "linkedin_url", "url", "email", "careers_url"},
	"score":    {"relevance_score", "score", "rating", "relevance"},
}

var companyAliases = map[string][]string{
	"name":       {"company_name", "name", "company", "organization"},
	"industry":   {"industry", "sector"},
	"hq":         {"headquarters_location", "headquarters", "hq", "location"},
	"careers":    {"careers_page_url", "careers_url", "jobs_url"},
	"domain":     {"linkedin_or_domain", "domain", "website", "linkedin_url", "url"},
}

// CoerceLead maps a loosely-typed record to a Lead. Returns false when the
// record lacks a usable name or company, which disqualifies it from the
// deduplicated set.
func CoerceLead(raw map[string]any, source string) (model.Lead, bool) {
	lead := model.Lead{
		Name:           stringField(raw, leadAliases["name"]),
		Title:          stringField(raw, leadAliases["title"]),
		Company:        stringField(raw, leadAliases["company"]),
		Location:       stringField(raw, leadAliases["location"]),
		Contact:        stringField(raw, leadAliases["contact"]),
		RelevanceScore: scoreField(raw, leadAliases["score"]),
		Source:         source,
	}
	if lead.Name == "" || lead.Company == "" {
		return model.Lead{}, false
	}
	return lead, true
}

// CoerceCompany maps a loosely-typed record to a Company. Returns false when
// the record lacks a company name.
func CoerceCompany(raw map[string]any) (model.Company, bool) {
	c := model.Company{
		Name:         stringField(raw, companyAliases["name"]),
		Industry:     stringField(raw, companyAliases["industry"]),
		Headquarters: stringField(raw, companyAliases["hq"]),
		CareersURL:   stringField(raw, companyAliases["careers"]),
		Domain:       stringField(raw, companyAliases["domain"]),
	}
	if c.Name == "" {
		return model.Company{}, false
	}
	return c, true
}

// ClampScore rounds v to the nearest integer and clamps to [0,100].
// Non-numeric or missing values map to 0.
func ClampScore(v any) int {
	f, ok := toFloat64(v)
	if !ok {
		return 0
	}
	n := int(math.Round(f))
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

func stringField(raw map[string]any, aliases []string) string {
	for _, key := range aliases {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		var s string
		switch t := v.(type) {
		case string:
			s = t
		case float64, int, int64, bool:
			s = fmt.Sprintf("%v", t)
		default:
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

func scoreField(raw map[string]any, aliases []string) int {
	for _, key := range aliases {
		if v, ok := raw[key]; ok && v != nil {
			if _, numeric := toFloat64(v); numeric {
				return ClampScore(v)
			}
		}
	}
	return 0
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
