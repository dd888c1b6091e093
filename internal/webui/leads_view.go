// Package webui renders the collected leads as a plain HTML table —
// the browser-facing result presenter. Anything interactive talks to
// the JSON API instead.
package webui

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"leadgen-engine/internal/store"
)

type Handler struct {
	DB *sql.DB
}

func (h Handler) Leads(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	var searchID int64
	if v := r.URL.Query().Get("search"); v != "" {
		searchID, _ = strconv.ParseInt(v, 10, 64)
	}

	var sdomain string
	var slocality string
	if searchID > 0 {
		srch, err := store.GetSearch(ctx, h.DB, searchID)
		if err != nil {
			http.Error(w, "search not found", http.StatusNotFound)
			return
		}
		sdomain, slocality = srch.Domain, srch.Locality
	} else {
		srch, err := store.LatestSearch(ctx, h.DB)
		if errors.Is(err, sql.ErrNoRows) {
			fmt.Fprintln(w, "<html><body><h1>Lead Engine</h1><p>No searches yet. POST /search to get started.</p></body></html>")
			return
		}
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		searchID, sdomain, slocality = srch.ID, srch.Domain, srch.Locality
	}

	leads, err := store.ListLeads(ctx, h.DB, searchID)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	fmt.Fprintf(w, "<html><body><h1>Lead Engine</h1><p>%s near %s: %d leads</p>",
		escape(sdomain), escape(slocality), len(leads))
	fmt.Fprintln(w, `<table border="1" cellpadding="6"><tr><th>Name</th><th>Email</th><th>Phone</th><th>Website</th><th>Owner</th><th>Location</th><th>AI Insight</th></tr>`)
	for _, l := range leads {
		fmt.Fprintf(w,
			`<tr><td>%s</td><td>%s</td><td>%s</td><td><a href="%s" target="_blank">%s</a></td><td>%s</td><td>%s</td><td>%s</td></tr>`,
			escape(l.Name), escape(l.Email), escape(l.Phone),
			escapeAttr(l.Website), escape(l.Website),
			escape(l.OwnerName), escape(l.Locality), escape(l.Insight),
		)
	}
	fmt.Fprintln(w, "</table></body></html>")
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
func escapeAttr(s string) string { return escape(s) }
