// Package resolve turns a submitted business website URL into a
// geographic anchor: extract the domain, derive a company name from
// it, and probe the places API for where that company sits.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"leadgen-engine/internal/places"
)

// ErrInvalidURL rejects input before any network call is made.
var ErrInvalidURL = errors.New("resolve: invalid url")

// ErrUnresolvable means the URL parsed fine but its domain led
// nowhere. Surfaced to the user, never silently defaulted.
var ErrUnresolvable = errors.New("resolve: no location discoverable for url")

// Anchor is the search anchor derived from a URL.
type Anchor struct {
	Domain   string  `json:"domain"`
	Company  string  `json:"company"`
	Locality string  `json:"locality"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
}

type searcher interface {
	SearchText(ctx context.Context, query string, opts places.SearchOpts) ([]places.Place, error)
}

type Resolver struct {
	Places searcher
}

// ExtractDomain pulls the bare domain out of a URL: scheme optional,
// www. stripped, lowercased. Unparseable input falls back to the
// text before the first slash.
func ExtractDomain(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidURL
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		cleaned := strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
		cleaned = strings.ToLower(strings.SplitN(cleaned, "/", 2)[0])
		if cleaned == "" || !strings.Contains(cleaned, ".") {
			return "", ErrInvalidURL
		}
		return strings.TrimPrefix(cleaned, "www."), nil
	}

	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	if !strings.Contains(host, ".") {
		return "", ErrInvalidURL
	}
	return host, nil
}

// CompanyName derives a searchable name from a domain: the label
// before the first dot (acmewidgets.com -> acmewidgets).
func CompanyName(domain string) string {
	name, _, _ := strings.Cut(domain, ".")
	return strings.TrimSpace(name)
}

// Resolve maps a website URL to an Anchor via a places probe on the
// domain-derived company name.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) (Anchor, error) {
	domain, err := ExtractDomain(rawURL)
	if err != nil {
		return Anchor{}, err
	}
	company := CompanyName(domain)
	if company == "" {
		return Anchor{}, ErrInvalidURL
	}

	hits, err := r.Places.SearchText(ctx, company, places.SearchOpts{MaxResults: 1})
	if errors.Is(err, places.ErrNoResults) {
		return Anchor{}, fmt.Errorf("%w: %s", ErrUnresolvable, domain)
	}
	if err != nil {
		return Anchor{}, fmt.Errorf("resolve %s: %w", domain, err)
	}

	top := hits[0]
	locality := LocalityFromAddress(top.Address)
	if locality == "" {
		return Anchor{}, fmt.Errorf("%w: %s", ErrUnresolvable, domain)
	}

	return Anchor{
		Domain:   domain,
		Company:  company,
		Locality: locality,
		Lat:      top.Lat,
		Lng:      top.Lng,
	}, nil
}

// LocalityFromAddress reduces a formatted address to "City, Region".
// "123 Main St, Columbus, OH 43004, USA" -> "Columbus, OH".
func LocalityFromAddress(addr string) string {
	parts := strings.Split(addr, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	switch {
	case len(parts) >= 3:
		city := parts[len(parts)-3]
		region := firstField(parts[len(parts)-2])
		if city == "" {
			return region
		}
		if region == "" {
			return city
		}
		return city + ", " + region
	case len(parts) == 2:
		region := firstField(parts[1])
		if region == "" {
			return parts[0]
		}
		return parts[0] + ", " + region
	default:
		return strings.TrimSpace(addr)
	}
}

func firstField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
