package httpapi

import (
	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/insight"
	"leadgen-engine/internal/resolve"
)

type searchRequest struct {
	URL     string `json:"url"`
	Keyword string `json:"keyword"`
}

type searchResponse struct {
	Search domain.Search  `json:"search"`
	Anchor resolve.Anchor `json:"anchor"`
	Leads  []domain.Lead  `json:"leads"`
}

type leadsResponse struct {
	Search domain.Search `json:"search"`
	Leads  []domain.Lead `json:"leads"`
}

type analyzeRequest struct {
	SearchID int64   `json:"search_id"`
	LeadIDs  []int64 `json:"lead_ids"`
}

type analyzeResult struct {
	LeadID  int64            `json:"lead_id"`
	Insight *insight.Insight `json:"insight,omitempty"`
	Error   string           `json:"error,omitempty"`
}

type analyzeResponse struct {
	Results []analyzeResult `json:"results"`
}

type exportRequest struct {
	SearchID int64   `json:"search_id"`
	LeadIDs  []int64 `json:"lead_ids"`
	Format   string  `json:"format"`
}

type setSecretRequest struct {
	Key string `json:"key"`
}
