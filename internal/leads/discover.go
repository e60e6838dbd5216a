package leads

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/leadscout/internal/model"
	"github.com/sells-group/leadscout/internal/resilience"
	"github.com/sells-group/leadscout/pkg/hunter"
	"github.com/sells-group/leadscout/pkg/serper"
)

const (
	// defaultMaxCompanies bounds the phase-2 enrichment fan-out.
	defaultMaxCompanies = 50

	// defaultMaxContacts caps contacts requested per domain.
	defaultMaxContacts = 10

	// searchResultsPerQuery is how many organic results each broad query asks for.
	searchResultsPerQuery = 20

	// discoveryProgressShare is how much of the progress bar phase 1 covers.
	discoveryProgressShare = 10
)

// aggregatorDomains are job boards and directories whose domains are not
// employers; results pointing at them carry no enrichable domain.
var aggregatorDomains = map[string]bool{
	"linkedin.com":      true,
	"indeed.com":        true,
	"glassdoor.com":     true,
	"ziprecruiter.com":  true,
	"monster.com":       true,
	"wellfound.com":     true,
	"builtin.com":       true,
	"lever.co":          true,
	"greenhouse.io":     true,
	"workable.com":      true,
}

// DiscoverSource is the two-phase strategy: broad web searches discover
// candidate organizations, then each organization's domain is enriched into
// contact-level leads. Enrichment is throttled; per-organization failures
// are skipped.
type DiscoverSource struct {
	search       serper.Client
	enrich       hunter.Client
	maxCompanies int
	maxContacts  int
	limiter      *rate.Limiter
	retry        resilience.RetryConfig
}

// NewDiscoverSource creates a DiscoverSource. maxCompanies and maxContacts
// fall back to defaults when non-positive.
func NewDiscoverSource(search serper.Client, enrich hunter.Client, maxCompanies, maxContacts int) *DiscoverSource {
	if maxCompanies <= 0 {
		maxCompanies = defaultMaxCompanies
	}
	if maxContacts <= 0 {
		maxContacts = defaultMaxContacts
	}
	return &DiscoverSource{
		search:       search,
		enrich:       enrich,
		maxCompanies: maxCompanies,
		maxContacts:  maxContacts,
		// Burst of five enrichment calls, then a courtesy pause while the
		// bucket refills. Third-party rate limits, not ours.
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 5),
		retry:   resilience.DefaultRetryConfig(),
	}
}

// Name implements Source.
func (s *DiscoverSource) Name() string { return "discover" }

// Discover implements Source.
func (s *DiscoverSource) Discover(ctx context.Context, req model.Request, emit EmitFunc) ([]model.Lead, error) {
	log := zap.L().With(zap.String("source", s.Name()))

	companies, err := s.discoverCompanies(ctx, req, emit, log)
	if err != nil {
		return nil, err
	}
	if len(companies) == 0 {
		return nil, ErrNoCompanies
	}
	log.Info("discovery phase complete", zap.Int("companies", len(companies)))
	emit(model.ProgressEvent(discoveryProgressShare))

	return s.enrichCompanies(ctx, companies, emit, log)
}

// discoverCompanies runs the broad search queries and derives a deduplicated,
// size-bounded company set from the organic results.
func (s *DiscoverSource) discoverCompanies(ctx context.Context, req model.Request, emit EmitFunc, log *zap.Logger) ([]model.Company, error) {
	var companies []model.Company

	for _, q := range companyQueries(req) {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "discover: run cancelled")
		}

		cfg := s.retry
		cfg.OnRetry = resilience.RetryLogger("serper", "search")
		resp, err := resilience.DoVal(ctx, cfg, func(ctx context.Context) (*serper.SearchResponse, error) {
			opts := []serper.SearchOption{serper.WithNumResults(searchResultsPerQuery)}
			if req.Location != "" {
				opts = append(opts, serper.WithLocation(req.Location))
			}
			return s.search.Search(ctx, q, opts...)
		})
		if err != nil {
			log.Warn("search query failed, skipping", zap.String("query", q), zap.Error(err))
			continue
		}

		for _, r := range resp.Organic {
			if c, ok := companyFromResult(r); ok {
				companies = append(companies, c)
			}
		}
	}

	companies = DedupeCompanies(companies)
	if len(companies) > s.maxCompanies {
		companies = companies[:s.maxCompanies]
	}
	for _, c := range companies {
		if c.Domain != "" {
			emit(model.DomainEvent(c.Domain))
		}
	}
	return companies, nil
}

// enrichCompanies looks up contacts for each discovered domain. The batch
// continues past individual failures.
func (s *DiscoverSource) enrichCompanies(ctx context.Context, companies []model.Company, emit EmitFunc, log *zap.Logger) ([]model.Lead, error) {
	var leadsOut []model.Lead

	for i, c := range companies {
		if c.Domain == "" {
			continue
		}
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "discover: run cancelled")
		}

		cfg := s.retry
		cfg.OnRetry = resilience.RetryLogger("hunter", "domain-search")
		resp, err := resilience.DoVal(ctx, cfg, func(ctx context.Context) (*hunter.DomainSearchResponse, error) {
			return s.enrich.DomainSearch(ctx, c.Domain, hunter.WithLimit(s.maxContacts))
		})
		if err != nil {
			log.Warn("enrichment failed, skipping company",
				zap.String("company", c.Name),
				zap.String("domain", c.Domain),
				zap.Error(err),
			)
		} else {
			for _, contact := range resp.Data.Emails {
				lead, ok := leadFromContact(contact, c)
				if !ok {
					continue
				}
				leadsOut = append(leadsOut, lead)
				emit(model.LeadEvent(lead))
			}
		}

		pct := discoveryProgressShare + (i+1)*(100-discoveryProgressShare)/len(companies)
		emit(model.ProgressEvent(pct))
	}

	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "discover: run cancelled")
	}
	return leadsOut, nil
}

// companyQueries builds the broad discovery queries for phase 1.
func companyQueries(req model.Request) []string {
	base := strings.TrimSpace(req.Prompt)
	if base == "" {
		base = clipRunes(strings.TrimSpace(req.JobDescription), 120)
	}

	qs := []string{
		"companies hiring " + base,
		base + " careers",
	}
	if req.Industry != "" {
		qs = append(qs, req.Industry+" companies hiring "+base)
	}
	if req.Location != "" {
		qs = append(qs, "companies hiring "+base+" in "+req.Location)
	}
	return qs
}

// companyFromResult derives a Company record from one organic search result.
// Aggregator domains are rejected: their domain is not the employer's.
func companyFromResult(r serper.Result) (model.Company, bool) {
	domain := domainFromLink(r.Link)
	if domain == "" || aggregatorDomains[domain] {
		return model.Company{}, false
	}

	name := companyNameFromTitle(r.Title)
	if name == "" {
		return model.Company{}, false
	}

	c := model.Company{
		Name:   name,
		Domain: domain,
	}
	lower := strings.ToLower(r.Link)
	if strings.Contains(lower, "/careers") || strings.Contains(lower, "/jobs") {
		c.CareersURL = r.Link
	}
	return c, true
}

// domainFromLink extracts the registrable-ish host (minus "www.") from a URL.
func domainFromLink(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.ToLower(u.Host)
	host = strings.TrimPrefix(host, "www.")

	// Reduce subdomains like careers.example.com to example.com so the
	// enrichment lookup hits the organization's primary domain.
	parts := strings.Split(host, ".")
	if len(parts) > 2 {
		host = strings.Join(parts[len(parts)-2:], ".")
	}
	return host
}

// companyNameFromTitle takes the leading segment of a search result title,
// which is almost always the site or company name.
func companyNameFromTitle(title string) string {
	for _, sep := range []string{" - ", " | ", " – ", ": "} {
		if idx := strings.Index(title, sep); idx > 0 {
			title = title[:idx]
			break
		}
	}
	title = strings.TrimSpace(title)
	// Strip common boilerplate prefixes.
	title = strings.TrimPrefix(title, "Careers at ")
	title = strings.TrimPrefix(title, "Jobs at ")
	return strings.TrimSpace(title)
}

// leadFromContact converts one enriched contact into a Lead. Confidence
// doubles as the relevance score; contacts without a name are dropped.
func leadFromContact(c hunter.Contact, company model.Company) (model.Lead, bool) {
	name := strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
	if name == "" || company.Name == "" {
		return model.Lead{}, false
	}

	score := c.Confidence
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return model.Lead{
		Name:           name,
		Title:          c.Position,
		Company:        company.Name,
		Location:       company.Headquarters,
		Contact:        c.Email,
		RelevanceScore: score,
		Source:         fmt.Sprintf("hunter:%s", company.Domain),
	}, true
}
