package places

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"leadgen-engine/internal/webutil"
)

// ErrNoResults means the query succeeded but matched nothing. Callers
// surface it to the user; it is never folded into an upstream error.
var ErrNoResults = errors.New("places: no results")

const defaultBaseURL = "https://places.googleapis.com/v1"

// Field masks mirror what the engine actually reads; anything wider
// costs quota for nothing.
const (
	searchFieldMask  = "places.id,places.displayName,places.formattedAddress,places.rating,places.userRatingCount,places.location"
	detailsFieldMask = "id,displayName,formattedAddress,internationalPhoneNumber,websiteUri,rating,userRatingCount,googleMapsUri,types,location"
)

type Config struct {
	APIKey  string
	Referer string // pinned to match API key restrictions
	BaseURL string // override for tests
}

type Client struct {
	cfg     Config
	hc      *http.Client
	limiter *webutil.HostLimiter
}

func New(cfg Config, limiter *webutil.HostLimiter) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Client{
		cfg:     cfg,
		hc:      &http.Client{Timeout: 20 * time.Second},
		limiter: limiter,
	}
}

type SearchOpts struct {
	MaxResults   int
	LanguageCode string
}

// SearchText runs one places:searchText call.
func (c *Client) SearchText(ctx context.Context, query string, opts SearchOpts) ([]Place, error) {
	if opts.MaxResults <= 0 {
		opts.MaxResults = 20
	}
	if opts.LanguageCode == "" {
		opts.LanguageCode = "en"
	}

	body, _ := json.Marshal(searchTextRequest{
		TextQuery:      query,
		LanguageCode:   opts.LanguageCode,
		MaxResultCount: opts.MaxResults,
	})

	u := c.cfg.BaseURL + "/places:searchText"
	if err := c.limiter.WaitURL(ctx, u); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.cfg.APIKey)
	req.Header.Set("X-Goog-FieldMask", searchFieldMask)
	if c.cfg.Referer != "" {
		req.Header.Set("Referer", c.cfg.Referer)
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places search: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("places search status %d: %s", res.StatusCode, string(snippet))
	}

	var out searchTextResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("places search decode: %w", err)
	}
	if len(out.Places) == 0 {
		return nil, ErrNoResults
	}

	places := make([]Place, 0, len(out.Places))
	for _, w := range out.Places {
		places = append(places, w.toPlace())
	}
	return places, nil
}

// SearchWithAlternates tries query first, then each alternate until
// one yields results. Upstream failures on alternates are logged and
// skipped; only an exhausted ladder returns ErrNoResults.
func (c *Client) SearchWithAlternates(ctx context.Context, query string, alternates []string, opts SearchOpts) ([]Place, error) {
	places, err := c.SearchText(ctx, query, opts)
	if err == nil {
		return places, nil
	}
	if !errors.Is(err, ErrNoResults) {
		return nil, err
	}

	for _, alt := range alternates {
		log.Printf("level=info msg=\"places fallback\" query=%q", alt)
		places, err = c.SearchText(ctx, alt, opts)
		if err == nil {
			return places, nil
		}
		if !errors.Is(err, ErrNoResults) {
			log.Printf("level=warn msg=\"places fallback failed\" query=%q err=%v", alt, err)
		}
	}
	return nil, ErrNoResults
}

// Details fetches one place by id with the details field mask.
func (c *Client) Details(ctx context.Context, placeID string) (Details, error) {
	if placeID == "" {
		return Details{}, errors.New("places: empty place id")
	}

	u := c.cfg.BaseURL + "/places/" + placeID
	if err := c.limiter.WaitURL(ctx, u); err != nil {
		return Details{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Details{}, err
	}
	req.Header.Set("X-Goog-Api-Key", c.cfg.APIKey)
	req.Header.Set("X-Goog-FieldMask", detailsFieldMask)
	if c.cfg.Referer != "" {
		req.Header.Set("Referer", c.cfg.Referer)
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return Details{}, fmt.Errorf("places details: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return Details{}, fmt.Errorf("places details status %d: %s", res.StatusCode, string(snippet))
	}

	var w wirePlace
	if err := json.NewDecoder(res.Body).Decode(&w); err != nil {
		return Details{}, fmt.Errorf("places details decode: %w", err)
	}
	return w.toDetails(), nil
}
