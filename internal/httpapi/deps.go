package httpapi

import (
	"context"
	"database/sql"
	"sync/atomic"

	"leadgen-engine/internal/config"
	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/enrich"
	"leadgen-engine/internal/events"
	"leadgen-engine/internal/insight"
	"leadgen-engine/internal/places"
	"leadgen-engine/internal/resolve"
)

// Narrow interfaces over the concrete clients so handlers can be
// tested against fakes.

type LocationResolver interface {
	Resolve(ctx context.Context, rawURL string) (resolve.Anchor, error)
}

type BusinessSearcher interface {
	SearchWithAlternates(ctx context.Context, query string, alternates []string, opts places.SearchOpts) ([]places.Place, error)
	Details(ctx context.Context, placeID string) (places.Details, error)
}

type ContactEnricher interface {
	EnrichAll(ctx context.Context, leads []domain.Lead, apply func(leadID int64, c enrich.Contact))
}

type InsightGenerator interface {
	GenerateBatch(ctx context.Context, leads []domain.Lead) []insight.Result
}

type Deps struct {
	DB  *sql.DB
	Hub *events.Hub

	Resolver  LocationResolver
	Searcher  BusinessSearcher
	Enricher  ContactEnricher
	Generator InsightGenerator

	// Atomic store of config.Config, hot-reloadable over PUT /config.
	CfgVal *atomic.Value

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)
}
