package model

// Lead is the canonical output record: one candidate contact or
// organization relevant to a hiring search.
type Lead struct {
	Name           string `json:"name"`
	Title          string `json:"title"`
	Company        string `json:"company"`
	Location       string `json:"location"`
	Contact        string `json:"contact_url_or_email"`
	RelevanceScore int    `json:"relevance_score"`
	Source         string `json:"source"`
}

// Company is the intermediate record produced by the discovery phase of
// the two-phase pipeline, before contact-level enrichment.
type Company struct {
	Name         string `json:"company_name"`
	Industry     string `json:"industry,omitempty"`
	Headquarters string `json:"headquarters_location,omitempty"`
	CareersURL   string `json:"careers_page_url,omitempty"`
	Domain       string `json:"linkedin_or_domain,omitempty"`
}

const (
	// MinLimit and MaxLimit bound the caller-requested result size.
	MinLimit = 10
	MaxLimit = 500

	// DefaultLimit is used when the request omits a limit.
	DefaultLimit = 200
)

// Request is the inbound discovery request body.
type Request struct {
	Prompt         string `json:"prompt"`
	JobDescription string `json:"jobDescription"`
	Limit          int    `json:"limit,omitempty"`
	Location       string `json:"location,omitempty"`
	Industry       string `json:"industry,omitempty"`
	CompanySize    string `json:"companySize,omitempty"`
}

// EffectiveLimit returns the request limit clamped to [MinLimit, MaxLimit],
// defaulting when unset.
func (r Request) EffectiveLimit() int {
	if r.Limit == 0 {
		return DefaultLimit
	}
	if r.Limit < MinLimit {
		return MinLimit
	}
	if r.Limit > MaxLimit {
		return MaxLimit
	}
	return r.Limit
}
