// Package enrich augments leads with contact details scraped from
// their own websites. Strictly best-effort: a field that can't be
// discovered stays empty, and failures never block the search flow.
package enrich

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/webutil"
)

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	// Title-prefixed name, capped at four capitalized words so a
	// greedy match can't swallow a paragraph.
	ownerRe = regexp.MustCompile(`(?:CEO|Chief Executive Officer|Founder|President|Owner)[:\s]+([A-Z][a-zA-Z.'-]+(?:\s+[A-Z][a-zA-Z.'-]+){0,3})`)
)

// Contact is the result of enriching one lead. Err records why the
// attempt failed; both fields may be empty even on success.
type Contact struct {
	Email     string
	OwnerName string
	Err       error
}

type Config struct {
	Workers    int
	AboutPages int // team/leadership pages to follow when the landing page has no owner
	Timeout    time.Duration
}

type Enricher struct {
	cfg     Config
	hc      *http.Client
	limiter *webutil.HostLimiter
}

func New(cfg Config, limiter *webutil.HostLimiter) *Enricher {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Enricher{
		cfg:     cfg,
		hc:      &http.Client{Timeout: cfg.Timeout},
		limiter: limiter,
	}
}

// Enrich scrapes one website for an email address and an owner/CEO
// name.
func (e *Enricher) Enrich(ctx context.Context, websiteURL string) Contact {
	doc, err := e.fetchDoc(ctx, websiteURL)
	if err != nil {
		return Contact{Err: err}
	}

	text := doc.Text()
	c := Contact{
		Email:     findEmail(text),
		OwnerName: findOwner(text),
	}

	if c.OwnerName == "" && e.cfg.AboutPages > 0 {
		for _, link := range aboutLinks(doc, websiteURL, e.cfg.AboutPages) {
			aboutDoc, err := e.fetchDoc(ctx, link)
			if err != nil {
				continue
			}
			if name := findOwner(aboutDoc.Text()); name != "" {
				c.OwnerName = name
				break
			}
		}
	}

	return c
}

// EnrichAll fans Enrich out over the leads with a bounded worker
// count, invoking apply for each completed lead. apply must be safe
// for concurrent use.
func (e *Enricher) EnrichAll(ctx context.Context, leads []domain.Lead, apply func(leadID int64, c Contact)) {
	var g errgroup.Group
	g.SetLimit(e.cfg.Workers)

	for _, l := range leads {
		if l.Website == "" {
			continue
		}
		l := l
		g.Go(func() error {
			apply(l.ID, e.Enrich(ctx, l.Website))
			return nil
		})
	}
	_ = g.Wait()
}

func (e *Enricher) fetchDoc(ctx context.Context, rawURL string) (*goquery.Document, error) {
	if err := e.limiter.WaitURL(ctx, rawURL); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "LeadGen/1.0 (+local)")

	res, err := e.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("enrich fetch: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("enrich fetch status %d", res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("enrich parse html: %w", err)
	}
	return doc, nil
}

// findEmail returns the first plausible address, skipping noreply
// inboxes.
func findEmail(text string) string {
	for _, m := range emailRe.FindAllString(text, -1) {
		low := strings.ToLower(m)
		if strings.Contains(low, "noreply") || strings.Contains(low, "no-reply") {
			continue
		}
		return m
	}
	return ""
}

func findOwner(text string) string {
	m := ownerRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// aboutLinks collects up to max links that look like about/team/
// leadership pages, resolved against base.
func aboutLinks(doc *goquery.Document, base string, max int) []string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil
	}

	seen := map[string]bool{}
	var out []string
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, ok := a.Attr("href")
		if !ok {
			return true
		}
		low := strings.ToLower(href + " " + a.Text())
		if !strings.Contains(low, "about") && !strings.Contains(low, "team") && !strings.Contains(low, "leadership") {
			return true
		}

		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return true
		}
		abs := baseURL.ResolveReference(ref).String()
		if seen[abs] || abs == base {
			return true
		}
		seen[abs] = true
		out = append(out, abs)
		return len(out) < max
	})
	return out
}
