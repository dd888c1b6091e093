package enrich

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/webutil"
)

func newEnricher(aboutPages int) *Enricher {
	return New(Config{
		Workers:    4,
		AboutPages: aboutPages,
		Timeout:    5 * time.Second,
	}, webutil.NewHostLimiter(100, 100))
}

func TestEnrichLandingPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
			<p>Reach us at info@acmewidgets.com</p>
			<p>Founder: Jane Doe leads the company.</p>
		</body></html>`))
	}))
	defer srv.Close()

	c := newEnricher(2).Enrich(context.Background(), srv.URL)
	require.NoError(t, c.Err)
	assert.Equal(t, "info@acmewidgets.com", c.Email)
	assert.Equal(t, "Jane Doe", c.OwnerName)
}

func TestEnrichSkipsNoreply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
			noreply@acme.com then sales@acme.com
		</body></html>`))
	}))
	defer srv.Close()

	c := newEnricher(0).Enrich(context.Background(), srv.URL)
	require.NoError(t, c.Err)
	assert.Equal(t, "sales@acme.com", c.Email)
}

func TestEnrichFollowsAboutPage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
			<a href="/about">About us</a>
			<a href="/contact">Contact</a>
		</body></html>`))
	})
	mux.HandleFunc("/about", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>CEO: John Q. Smith</body></html>`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newEnricher(2).Enrich(context.Background(), srv.URL)
	require.NoError(t, c.Err)
	assert.Equal(t, "John Q. Smith", c.OwnerName)
}

func TestEnrichAboutPagesDisabled(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><a href="/about">About</a></body></html>`))
	})
	mux.HandleFunc("/about", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>Owner: Sam Hill</body></html>`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newEnricher(0).Enrich(context.Background(), srv.URL)
	require.NoError(t, c.Err)
	assert.Empty(t, c.OwnerName)
}

func TestEnrichFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newEnricher(0).Enrich(context.Background(), srv.URL)
	assert.Error(t, c.Err)
	assert.Empty(t, c.Email)
}

func TestEnrichAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>hello@site.test</body></html>`))
	}))
	defer srv.Close()

	leads := []domain.Lead{
		{ID: 1, Website: srv.URL},
		{ID: 2, Website: ""}, // no website, must be skipped
		{ID: 3, Website: srv.URL},
	}

	var mu sync.Mutex
	got := map[int64]Contact{}
	newEnricher(0).EnrichAll(context.Background(), leads, func(id int64, c Contact) {
		mu.Lock()
		got[id] = c
		mu.Unlock()
	})

	require.Len(t, got, 2)
	assert.Equal(t, "hello@site.test", got[1].Email)
	assert.Equal(t, "hello@site.test", got[3].Email)
	_, skipped := got[2]
	assert.False(t, skipped)
}

func TestFindOwnerTitles(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"Our CEO: Maria Garcia founded us in 2010", "Maria Garcia"},
		{"Chief Executive Officer Tom Lee", "Tom Lee"},
		{"President Ana de la Cruz spoke", "Ana"},
		{"nobody in charge here", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, findOwner(tc.text), "text=%q", tc.text)
	}
}
