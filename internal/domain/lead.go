package domain

import "time"

// Lead is one discovered business, tied to exactly one search.
// Email/OwnerName arrive later from enrichment, Insight from analysis;
// both stay empty when nothing could be discovered.
type Lead struct {
	ID          int64   `json:"id"`
	SearchID    int64   `json:"searchId"`
	PlaceID     string  `json:"placeId"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Phone       string  `json:"phone"`
	Website     string  `json:"website"`
	Email       string  `json:"email"`
	OwnerName   string  `json:"ownerName"`
	Locality    string  `json:"locality"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Rating      float64 `json:"rating"`
	RatingCount int     `json:"ratingCount"`
	MapsURL     string  `json:"mapsUrl"`
	Insight     string  `json:"insight"`

	CreatedAt time.Time `json:"createdAt"`
}
