package domain

import "time"

// Search is one submitted website URL plus the locality derived from it.
// Immutable once created; leads reference it by ID.
type Search struct {
	ID       int64   `json:"id"`
	URL      string  `json:"url"`
	Domain   string  `json:"domain"`
	Keyword  string  `json:"keyword"`
	Locality string  `json:"locality"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`

	CreatedAt time.Time `json:"createdAt"`
}
