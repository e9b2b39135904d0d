package realty

import (
	"errors"
	"strings"
)

// ErrGeoScopeRequired is returned when a search filter carries neither a city
// nor a state code.
var ErrGeoScopeRequired = errors.New("search requires a city or a state code")

// SearchFilter holds the optional caller-supplied filters for a listings
// search. At least one of City or StateCode must be set before a request is
// issued.
type SearchFilter struct {
	City         string
	StateCode    string
	MaxPrice     float64
	PropertyType string
}

type SortSpec struct {
	Direction string `json:"direction"`
	Field     string `json:"field"`
}

// SearchBody is the upstream list-query wire shape. Paging, status set, and
// sort order are fixed constants independent of input.
type SearchBody struct {
	Limit      int      `json:"limit"`
	Offset     int      `json:"offset"`
	PostalCode string   `json:"postal_code,omitempty"`
	City       string   `json:"city,omitempty"`
	StateCode  string   `json:"state_code,omitempty"`
	PriceMax   float64  `json:"price_max,omitempty"`
	HomeType   []string `json:"home_type,omitempty"`
	Status     []string `json:"status"`
	Sort       SortSpec `json:"sort"`
}

const pageLimit = 50

func baseBody() SearchBody {
	return SearchBody{
		Limit:  pageLimit,
		Offset: 0,
		Status: []string{"for_sale", "ready_to_build"},
		Sort:   SortSpec{Direction: "desc", Field: "list_date"},
	}
}

// BuildSearchBody validates the filter and shapes the outbound request body.
// A city narrows within a state, so the state is optional alongside it; with
// no city the state becomes the sole geographic scope and is mandatory.
func BuildSearchBody(f SearchFilter) (SearchBody, error) {
	body := baseBody()

	city := strings.TrimSpace(f.City)
	state := strings.TrimSpace(f.StateCode)
	switch {
	case city != "":
		body.City = city
		if state != "" {
			body.StateCode = state
		}
	case state != "":
		body.StateCode = state
	default:
		return SearchBody{}, ErrGeoScopeRequired
	}

	if f.MaxPrice > 0 {
		body.PriceMax = f.MaxPrice
	}
	if t := strings.TrimSpace(f.PropertyType); t != "" {
		body.HomeType = []string{t}
	}
	return body, nil
}

// DefaultFeedBody builds the fixed default-feed query scoped to one postal
// code.
func DefaultFeedBody(postalCode string) SearchBody {
	body := baseBody()
	body.PostalCode = postalCode
	return body
}
