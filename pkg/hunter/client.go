// Package hunter provides a client for the Hunter.io domain search API,
// which returns known email contacts for a company domain.
package hunter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://api.hunter.io/v2"

// Client performs email enrichment lookups against the Hunter API.
type Client interface {
	DomainSearch(ctx context.Context, domain string, opts ...SearchOption) (*DomainSearchResponse, error)
}

// DomainSearchResponse is the response from GET /domain-search.
type DomainSearchResponse struct {
	Data DomainData `json:"data"`
}

// DomainData holds the contacts found for a domain.
type DomainData struct {
	Domain       string    `json:"domain"`
	Organization string    `json:"organization"`
	Emails       []Contact `json:"emails"`
}

// Contact is a single enriched contact.
type Contact struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"value"`
	Position   string `json:"position"`
	Confidence int    `json:"confidence"`
}

// SearchOption configures a domain search.
type SearchOption func(url.Values)

// WithLimit caps the number of contacts returned.
func WithLimit(n int) SearchOption {
	return func(q url.Values) {
		q.Set("limit", strconv.Itoa(n))
	}
}

// WithDepartment restricts results to one department (e.g. "hr").
func WithDepartment(dept string) SearchOption {
	return func(q url.Values) {
		q.Set("department", dept)
	}
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a Hunter API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) DomainSearch(ctx context.Context, domain string, opts ...SearchOption) (*DomainSearchResponse, error) {
	q := url.Values{}
	q.Set("domain", domain)
	q.Set("api_key", c.apiKey)
	for _, o := range opts {
		o(q)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/domain-search?"+q.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "hunter: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "hunter: send request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "hunter: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("hunter: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var result DomainSearchResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, eris.Wrap(err, "hunter: unmarshal response")
	}

	return &result, nil
}
