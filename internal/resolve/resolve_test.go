package resolve

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadgen-engine/internal/places"
)

type fakeSearcher struct {
	gotQuery string
	hits     []places.Place
	err      error
}

func (f *fakeSearcher) SearchText(ctx context.Context, query string, opts places.SearchOpts) ([]places.Place, error) {
	f.gotQuery = query
	return f.hits, f.err
}

func TestExtractDomain(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"full url", "https://www.acmewidgets.com/about", "acmewidgets.com", false},
		{"scheme optional", "acmewidgets.com", "acmewidgets.com", false},
		{"http scheme", "http://Example.COM", "example.com", false},
		{"subdomain kept", "https://shop.acme.co.uk", "shop.acme.co.uk", false},
		{"with port", "https://acme.com:8443/x", "acme.com", false},
		{"empty", "", "", true},
		{"no dot", "localhost", "", true},
		{"whitespace only", "   ", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractDomain(tc.in)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidURL)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCompanyName(t *testing.T) {
	assert.Equal(t, "acmewidgets", CompanyName("acmewidgets.com"))
	assert.Equal(t, "shop", CompanyName("shop.acme.co.uk"))
}

func TestLocalityFromAddress(t *testing.T) {
	cases := []struct {
		addr string
		want string
	}{
		{"123 Main St, Columbus, OH 43004, USA", "Columbus, OH"},
		{"1 Infinite Loop, Cupertino, CA 95014, USA", "Cupertino, CA"},
		{"Columbus, OH 43004", "Columbus, OH"},
		{"Columbus", "Columbus"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, LocalityFromAddress(tc.addr), "addr=%q", tc.addr)
	}
}

func TestResolve(t *testing.T) {
	f := &fakeSearcher{hits: []places.Place{{
		ID:      "pid-1",
		Name:    "Acme Widgets",
		Address: "123 Main St, Columbus, OH 43004, USA",
		Lat:     39.9,
		Lng:     -82.9,
	}}}
	r := &Resolver{Places: f}

	a, err := r.Resolve(context.Background(), "https://www.acmewidgets.com/contact")
	require.NoError(t, err)
	assert.Equal(t, "acmewidgets.com", a.Domain)
	assert.Equal(t, "acmewidgets", a.Company)
	assert.Equal(t, "Columbus, OH", a.Locality)
	assert.Equal(t, 39.9, a.Lat)
	assert.Equal(t, -82.9, a.Lng)
	assert.Equal(t, "acmewidgets", f.gotQuery)
}

func TestResolveInvalidURL(t *testing.T) {
	r := &Resolver{Places: &fakeSearcher{}}
	_, err := r.Resolve(context.Background(), "not a url")
	assert.ErrorIs(t, err, ErrInvalidURL)
}

func TestResolveUnresolvable(t *testing.T) {
	r := &Resolver{Places: &fakeSearcher{err: places.ErrNoResults}}
	_, err := r.Resolve(context.Background(), "ghostcompany.example")
	assert.ErrorIs(t, err, ErrUnresolvable)
}

func TestResolveUpstreamError(t *testing.T) {
	boom := errors.New("quota exceeded")
	r := &Resolver{Places: &fakeSearcher{err: boom}}
	_, err := r.Resolve(context.Background(), "acme.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrUnresolvable)
}
