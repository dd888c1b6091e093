package places

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadgen-engine/internal/webutil"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{
		APIKey:  "test-key",
		Referer: "http://localhost:38491",
		BaseURL: srv.URL,
	}, webutil.NewHostLimiter(100, 100))
}

func TestSearchText(t *testing.T) {
	var gotReq searchTextRequest
	var gotHeaders http.Header

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/places:searchText", r.URL.Path)
		gotHeaders = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"places": []map[string]any{
				{
					"id":               "pid-1",
					"displayName":      map[string]any{"text": "Acme Plumbing"},
					"formattedAddress": "1 Main St, Columbus, OH 43004, USA",
					"rating":           4.5,
					"userRatingCount":  120,
					"location":         map[string]any{"latitude": 39.9, "longitude": -82.9},
				},
			},
		})
	})

	hits, err := c.SearchText(context.Background(), "plumbers in Columbus, OH", SearchOpts{MaxResults: 5})
	require.NoError(t, err)
	require.Len(t, hits, 1)

	assert.Equal(t, "pid-1", hits[0].ID)
	assert.Equal(t, "Acme Plumbing", hits[0].Name)
	assert.Equal(t, "1 Main St, Columbus, OH 43004, USA", hits[0].Address)
	assert.Equal(t, 4.5, hits[0].Rating)
	assert.Equal(t, 120, hits[0].RatingCount)
	assert.Equal(t, 39.9, hits[0].Lat)

	assert.Equal(t, "plumbers in Columbus, OH", gotReq.TextQuery)
	assert.Equal(t, 5, gotReq.MaxResultCount)
	assert.Equal(t, "en", gotReq.LanguageCode)
	assert.Equal(t, "test-key", gotHeaders.Get("X-Goog-Api-Key"))
	assert.Equal(t, searchFieldMask, gotHeaders.Get("X-Goog-FieldMask"))
	assert.Equal(t, "http://localhost:38491", gotHeaders.Get("Referer"))
}

func TestSearchTextNoResults(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	_, err := c.SearchText(context.Background(), "nothing here", SearchOpts{})
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestSearchTextUpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"message":"key invalid"}}`))
	})
	_, err := c.SearchText(context.Background(), "anything", SearchOpts{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoResults)
	assert.Contains(t, err.Error(), "status 403")
	assert.Contains(t, err.Error(), "key invalid")
}

func TestSearchWithAlternates(t *testing.T) {
	var queries []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req searchTextRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		queries = append(queries, req.TextQuery)
		if req.TextQuery == "restaurants near Acme Corp" {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"places": []map[string]any{{"id": "pid-2", "displayName": map[string]any{"text": "Diner"}}},
			})
			return
		}
		_, _ = w.Write([]byte(`{}`))
	})

	hits, err := c.SearchWithAlternates(context.Background(),
		"restaurants in Columbus, OH",
		[]string{"restaurants near Acme Corp", "restaurants"},
		SearchOpts{})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "pid-2", hits[0].ID)
	assert.Equal(t, []string{"restaurants in Columbus, OH", "restaurants near Acme Corp"}, queries)
}

func TestSearchWithAlternatesExhausted(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	_, err := c.SearchWithAlternates(context.Background(), "a", []string{"b", "c"}, SearchOpts{})
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestDetails(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/places/pid-1", r.URL.Path)
		require.Equal(t, detailsFieldMask, r.Header.Get("X-Goog-FieldMask"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":                       "pid-1",
			"displayName":              map[string]any{"text": "Acme Plumbing"},
			"internationalPhoneNumber": "+1 614-555-0100",
			"websiteUri":               "https://acmeplumbing.example",
			"googleMapsUri":            "https://maps.google.com/?cid=1",
			"types":                    []string{"plumber"},
		})
	})

	d, err := c.Details(context.Background(), "pid-1")
	require.NoError(t, err)
	assert.Equal(t, "Acme Plumbing", d.Name)
	assert.Equal(t, "+1 614-555-0100", d.Phone)
	assert.Equal(t, "https://acmeplumbing.example", d.Website)
	assert.Equal(t, "https://maps.google.com/?cid=1", d.MapsURL)
	assert.Equal(t, []string{"plumber"}, d.Types)
}

func TestDetailsEmptyID(t *testing.T) {
	c := New(Config{APIKey: "k"}, webutil.NewHostLimiter(1, 1))
	_, err := c.Details(context.Background(), "")
	assert.Error(t, err)
}
