package httpapi

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"leadgen-engine/internal/config"
	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/enrich"
	"leadgen-engine/internal/events"
	"leadgen-engine/internal/places"
	"leadgen-engine/internal/resolve"
	"leadgen-engine/internal/store"
)

type SearchHandler struct {
	DB       *sql.DB
	Hub      *events.Hub
	Resolver LocationResolver
	Searcher BusinessSearcher
	Enricher ContactEnricher
	CfgVal   *atomic.Value
}

// Run handles POST /search: resolve the URL to a locality, pull
// candidate businesses around it, store them as leads, and kick off
// async enrichment.
func (h SearchHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "invalid JSON: "+err.Error())
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "url is required")
		return
	}

	ctx := r.Context()
	reqID := RequestIDFrom(ctx)

	anchor, err := h.Resolver.Resolve(ctx, req.URL)
	switch {
	case errors.Is(err, resolve.ErrInvalidURL):
		WriteError(w, r, http.StatusBadRequest, "invalid_url", "the submitted URL is not valid")
		return
	case errors.Is(err, resolve.ErrUnresolvable):
		WriteError(w, r, http.StatusUnprocessableEntity, "unresolvable_location", "no location could be derived from the URL")
		return
	case err != nil:
		log.Printf("level=error msg=\"resolve failed\" request_id=%s url=%q err=%v", reqID, req.URL, err)
		WriteError(w, r, http.StatusBadGateway, "upstream_error", "location lookup failed")
		return
	}

	keyword := strings.TrimSpace(req.Keyword)
	if keyword == "" {
		keyword = anchor.Company
	}

	search, err := store.CreateSearch(ctx, h.DB, domain.Search{
		URL:      req.URL,
		Domain:   anchor.Domain,
		Keyword:  keyword,
		Locality: anchor.Locality,
		Lat:      anchor.Lat,
		Lng:      anchor.Lng,
	})
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeSearchCreated, 1, map[string]any{
		"search_id": search.ID, "locality": anchor.Locality,
	}))

	cfg := h.CfgVal.Load().(config.Config)
	opts := places.SearchOpts{
		MaxResults:   cfg.Search.MaxResults,
		LanguageCode: cfg.Search.LanguageCode,
	}

	query := keyword + " in " + anchor.Locality
	alternates := []string{
		keyword + " business",
		keyword + " store",
		keyword + " company",
	}

	hits, err := h.Searcher.SearchWithAlternates(ctx, query, alternates, opts)
	if errors.Is(err, places.ErrNoResults) {
		// empty is user-visible but not an error
		writeJSON(w, searchResponse{Search: search, Anchor: anchor, Leads: []domain.Lead{}})
		return
	}
	if err != nil {
		log.Printf("level=error msg=\"places search failed\" request_id=%s query=%q err=%v", reqID, query, err)
		WriteError(w, r, http.StatusBadGateway, "upstream_error", "business search failed")
		return
	}

	leads := make([]domain.Lead, 0, len(hits))
	for _, hit := range hits {
		lead := domain.Lead{
			SearchID:    search.ID,
			PlaceID:     hit.ID,
			Name:        hit.Name,
			Address:     hit.Address,
			Locality:    anchor.Locality,
			Lat:         hit.Lat,
			Lng:         hit.Lng,
			Rating:      hit.Rating,
			RatingCount: hit.RatingCount,
		}

		// Details is where phone/website live; a failed details call
		// keeps the basic row.
		if det, derr := h.Searcher.Details(ctx, hit.ID); derr == nil {
			lead.Phone = det.Phone
			lead.Website = det.Website
			lead.MapsURL = det.MapsURL
		} else {
			log.Printf("level=warn msg=\"place details failed\" request_id=%s place_id=%s err=%v", reqID, hit.ID, derr)
		}

		stored, created, serr := store.InsertLeadIfNew(ctx, h.DB, lead)
		if serr != nil {
			WriteError(w, r, http.StatusInternalServerError, "internal_error", serr.Error())
			return
		}
		if !created {
			continue // duplicate website within this search
		}
		leads = append(leads, stored)
		h.Hub.Publish(events.MakeEvent(reqID, events.TypeLeadFound, 1, map[string]any{
			"search_id": search.ID, "lead_id": stored.ID, "name": stored.Name,
		}))
	}

	writeJSON(w, searchResponse{Search: search, Anchor: anchor, Leads: leads})

	if cfg.Enrich.Enabled && h.Enricher != nil {
		go h.enrichAsync(reqID, cfg, leads)
	}
}

// enrichAsync runs after the search response has been written; each
// completed lead lands in the store and on the event stream.
func (h SearchHandler) enrichAsync(reqID string, cfg config.Config, leads []domain.Lead) {
	timeout := time.Duration(cfg.Enrich.TimeoutSeconds) * time.Second * time.Duration(max(len(leads), 1))
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	h.Enricher.EnrichAll(ctx, leads, func(leadID int64, c enrich.Contact) {
		if c.Err != nil {
			log.Printf("level=warn msg=\"enrich failed\" request_id=%s lead_id=%d err=%v", reqID, leadID, c.Err)
			return
		}
		if c.Email == "" && c.OwnerName == "" {
			return
		}
		if err := store.SetContact(ctx, h.DB, leadID, c.Email, c.OwnerName); err != nil {
			log.Printf("level=warn msg=\"enrich save failed\" request_id=%s lead_id=%d err=%v", reqID, leadID, err)
			return
		}
		h.Hub.Publish(events.MakeEvent(reqID, events.TypeLeadEnriched, 1, map[string]any{
			"lead_id": leadID, "email": c.Email, "owner": c.OwnerName,
		}))
	})
}
