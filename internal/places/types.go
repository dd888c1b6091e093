package places

// Place is one text-search hit, trimmed to the fields the engine asks
// for via the search field mask.
type Place struct {
	ID          string  `json:"placeId"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Rating      float64 `json:"rating"`
	RatingCount int     `json:"ratingCount"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
}

// Details is the richer per-place record behind the details field mask.
type Details struct {
	Place
	Phone   string   `json:"phone"`
	Website string   `json:"website"`
	MapsURL string   `json:"mapsUrl"`
	Types   []string `json:"types"`
}

// Wire types for the Places API v1 JSON surface.

type searchTextRequest struct {
	TextQuery      string `json:"textQuery"`
	LanguageCode   string `json:"languageCode,omitempty"`
	MaxResultCount int    `json:"maxResultCount,omitempty"`
}

type searchTextResponse struct {
	Places []wirePlace `json:"places"`
}

type wirePlace struct {
	ID          string `json:"id"`
	DisplayName struct {
		Text string `json:"text"`
	} `json:"displayName"`
	FormattedAddress         string   `json:"formattedAddress"`
	InternationalPhoneNumber string   `json:"internationalPhoneNumber"`
	WebsiteURI               string   `json:"websiteUri"`
	GoogleMapsURI            string   `json:"googleMapsUri"`
	Types                    []string `json:"types"`
	Rating                   float64  `json:"rating"`
	UserRatingCount          int      `json:"userRatingCount"`
	Location                 struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"location"`
}

func (w wirePlace) toPlace() Place {
	return Place{
		ID:          w.ID,
		Name:        w.DisplayName.Text,
		Address:     w.FormattedAddress,
		Rating:      w.Rating,
		RatingCount: w.UserRatingCount,
		Lat:         w.Location.Latitude,
		Lng:         w.Location.Longitude,
	}
}

func (w wirePlace) toDetails() Details {
	return Details{
		Place:   w.toPlace(),
		Phone:   w.InternationalPhoneNumber,
		Website: w.WebsiteURI,
		MapsURL: w.GoogleMapsURI,
		Types:   w.Types,
	}
}
