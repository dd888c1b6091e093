package webutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeWebsite(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"bare domain", "example.com", "https://example.com"},
		{"strips www", "https://www.Example.com/", "https://example.com"},
		{"strips fragment", "https://example.com/page#team", "https://example.com/page"},
		{"strips utm params", "https://example.com/?utm_source=x&utm_medium=y", "https://example.com"},
		{"strips gclid keeps rest", "https://example.com/p?gclid=abc&id=7", "https://example.com/p?id=7"},
		{"trailing slash on path", "https://example.com/about/", "https://example.com/about"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeWebsite(tc.in))
		})
	}
}

func TestNormalizeWebsiteCollapsesVariants(t *testing.T) {
	a := NormalizeWebsite("https://www.acme.io/?utm_campaign=spring")
	b := NormalizeWebsite("acme.io")
	assert.Equal(t, a, b)
}
