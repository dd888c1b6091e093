package httpapi

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"leadgen-engine/internal/export"
	"leadgen-engine/internal/store"
)

type ExportHandler struct {
	DB *sql.DB
}

// Run handles POST /export: serialize the selected leads of one
// search to CSV or Excel and stream the file back as a download.
func (h ExportHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "invalid JSON: "+err.Error())
		return
	}

	format, err := export.ParseFormat(req.Format)
	if errors.Is(err, export.ErrUnsupportedFormat) {
		WriteError(w, r, http.StatusBadRequest, "unsupported_format", err.Error())
		return
	}

	if req.SearchID <= 0 || len(req.LeadIDs) == 0 {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "search_id and lead_ids are required")
		return
	}

	leads, err := store.GetLeads(r.Context(), h.DB, req.SearchID, req.LeadIDs)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	if len(leads) == 0 {
		WriteError(w, r, http.StatusNotFound, "not_found", "no matching leads in this search")
		return
	}

	// Render fully before writing headers so a serialization error
	// can still produce a proper error response.
	var buf bytes.Buffer
	if err := export.Write(&buf, format, leads); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	w.Header().Set("Content-Type", format.MIMEType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.Filename()))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = w.Write(buf.Bytes())
}
