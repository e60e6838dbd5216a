package hunter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainSearch(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
		wantLen int
	}{
		{
			name:   "success",
			status: http.StatusOK,
			body: `{
				"data": {
					"domain": "acme.com",
					"organization": "Acme Corp",
					"emails": [
						{"first_name": "Jane", "last_name": "Doe", "value": "jane@acme.com", "position": "Head of Talent", "confidence": 92},
						{"first_name": "John", "last_name": "Smith", "value": "john@acme.com", "position": "Recruiter", "confidence": 78}
					]
				}
			}`,
			wantLen: 2,
		},
		{
			name:    "invalid_key",
			status:  http.StatusUnauthorized,
			body:    `{"errors": [{"details": "invalid API key"}]}`,
			wantErr: "unexpected status 401",
		},
		{
			name:    "rate_limit",
			status:  http.StatusTooManyRequests,
			body:    `{"errors": [{"details": "rate limit"}]}`,
			wantErr: "unexpected status 429",
		},
		{
			name:    "malformed_response",
			status:  http.StatusOK,
			body:    `not json`,
			wantErr: "unmarshal response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/domain-search", r.URL.Path)
				assert.Equal(t, "acme.com", r.URL.Query().Get("domain"))
				assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient("test-key", WithBaseURL(srv.URL))

			resp, err := client.DomainSearch(context.Background(), "acme.com")

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, resp)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, "acme.com", resp.Data.Domain)
			require.Len(t, resp.Data.Emails, tt.wantLen)
			assert.Equal(t, "jane@acme.com", resp.Data.Emails[0].Email)
			assert.Equal(t, 92, resp.Data.Emails[0].Confidence)
		})
	}
}

func TestDomainSearchOptions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Equal(t, "hr", r.URL.Query().Get("department"))

		_, _ = w.Write([]byte(`{"data": {"domain": "acme.com", "emails": []}}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))

	resp, err := client.DomainSearch(context.Background(), "acme.com",
		WithLimit(5), WithDepartment("hr"))
	require.NoError(t, err)
	assert.Empty(t, resp.Data.Emails)
}
