package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown
// (needs srv+token) and the HTML view at "/".
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Search + leads
	sh := SearchHandler{
		DB: d.DB, Hub: d.Hub,
		Resolver: d.Resolver, Searcher: d.Searcher, Enricher: d.Enricher,
		CfgVal: d.CfgVal,
	}
	mux.HandleFunc("/search", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.Run,
	}))

	lh := LeadsHandler{DB: d.DB}
	mux.HandleFunc("/searches/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: lh.ListByPath, // expects /searches/{id}/leads
	}))

	// AI insights
	ah := AnalyzeHandler{DB: d.DB, Hub: d.Hub, Generator: d.Generator}
	mux.HandleFunc("/analyze", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ah.Run,
	}))

	// Export
	xh := ExportHandler{DB: d.DB}
	mux.HandleFunc("/export", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: xh.Run,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))

	// Secrets (keyring-backed API keys)
	sec := SecretsHandler{}
	mux.HandleFunc("/api/secrets/maps", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sec.SetMapsKey,
	}))
	mux.HandleFunc("/api/secrets/openai", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sec.SetOpenAIKey,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// Health
	hh := HealthHandler{}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	return mux
}
