package httpapi

import (
	"database/sql"
	"net/http"

	"leadgen-engine/internal/events"
	"leadgen-engine/internal/store"
)

type AnalyzeHandler struct {
	DB        *sql.DB
	Hub       *events.Hub
	Generator InsightGenerator
}

// Run handles POST /analyze: generate insights for the selected leads
// only. Failures are reported per lead; the whole request fails with
// ai_error only when not a single lead could be annotated.
func (h AnalyzeHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "invalid JSON: "+err.Error())
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

	results := h.Generator.GenerateBatch(r.Context(), leads)

	reqID := RequestIDFrom(r.Context())
	resp := analyzeResponse{Results: make([]analyzeResult, 0, len(results))}
	annotated := 0
	for _, res := range results {
		item := analyzeResult{LeadID: res.LeadID}
		if res.Err != nil {
			item.Error = res.Err.Error()
		} else {
			ins := res.Insight
			item.Insight = &ins
			if err := store.SetInsight(r.Context(), h.DB, res.LeadID, ins.Text()); err != nil {
				item.Insight = nil
				item.Error = err.Error()
			} else {
				annotated++
			}
		}
		resp.Results = append(resp.Results, item)
	}

	if annotated == 0 {
		WriteError(w, r, http.StatusBadGateway, "ai_error", "insight generation failed for every selected lead")
		return
	}

	h.Hub.Publish(events.MakeEvent(reqID, events.TypeInsightsReady, 1, map[string]any{
		"search_id": req.SearchID, "annotated": annotated, "requested": len(req.LeadIDs),
	}))
	writeJSON(w, resp)
}
