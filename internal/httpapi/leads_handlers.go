package httpapi

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/store"
)

type LeadsHandler struct {
	DB *sql.DB
}

// ListByPath handles GET /searches/{id}/leads. Enrichment runs after
// the search response, so clients poll here (or watch /events) for
// filled-in contact fields.
func (h LeadsHandler) ListByPath(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/searches/")
	idStr, tail, _ := strings.Cut(rest, "/")
	if tail != "leads" {
		WriteError(w, r, http.StatusNotFound, "not_found", "unknown resource")
		return
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "invalid search id")
		return
	}

	search, err := store.GetSearch(r.Context(), h.DB, id)
	if errors.Is(err, sql.ErrNoRows) {
		WriteError(w, r, http.StatusNotFound, "not_found", "search not found")
		return
	}
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	leads, err := store.ListLeads(r.Context(), h.DB, id)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	if leads == nil {
		leads = []domain.Lead{}
	}
	writeJSON(w, leadsResponse{Search: search, Leads: leads})
}
