package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus structured
// errors/warnings the UI can show.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	out.Search.LanguageCode = strings.TrimSpace(strings.ToLower(out.Search.LanguageCode))
	if out.Search.LanguageCode == "" {
		out.Search.LanguageCode = "en"
	}
	out.Insight.Model = strings.TrimSpace(out.Insight.Model)

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}
	if out.App.SessionTTLHours <= 0 {
		res.addErr("app.session_ttl_hours must be > 0")
	}

	// Places API v1 caps text-search pages at 20 results
	if out.Search.MaxResults <= 0 {
		res.addErr("search.max_results must be > 0")
	} else if out.Search.MaxResults > 20 {
		res.addWarn("search.max_results is %d; the places API returns at most 20, extra will be ignored.", out.Search.MaxResults)
		out.Search.MaxResults = 20
	}

	if out.Enrich.Enabled {
		if out.Enrich.Workers <= 0 {
			res.addErr("enrich.workers must be > 0 when enrich.enabled=true")
		}
		if out.Enrich.AboutPages < 0 {
			res.addErr("enrich.about_pages must be >= 0")
		}
		if out.Enrich.TimeoutSeconds <= 0 {
			res.addErr("enrich.timeout_seconds must be > 0 when enrich.enabled=true")
		}
		if out.Enrich.HostReqPerSec <= 0 {
			res.addErr("enrich.host_req_per_sec must be > 0 when enrich.enabled=true")
		} else if out.Enrich.HostReqPerSec > 5 {
			res.addWarn("enrich.host_req_per_sec is high (%.1f); lead sites may block the scraper.", out.Enrich.HostReqPerSec)
		}
		if out.Enrich.HostBurst <= 0 {
			res.addErr("enrich.host_burst must be > 0 when enrich.enabled=true")
		}
	}

	if out.Insight.Model == "" {
		res.addErr("insight.model is required")
	}
	if out.Insight.Temperature < 0 || out.Insight.Temperature > 2 {
		res.addErr("insight.temperature must be 0..2")
	}
	if out.Insight.MaxTokens <= 0 {
		res.addErr("insight.max_tokens must be > 0")
	}

	return out, res
}
