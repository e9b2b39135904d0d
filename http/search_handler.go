package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/yourorg/listings-proxy/realty"
)

// SearchAPI is the slice of the upstream client the search handlers need.
type SearchAPI interface {
	Search(ctx context.Context, body realty.SearchBody) ([]byte, error)
}

type SearchDeps struct {
	API SearchAPI
}

// msgStateRequired is the exact message the mobile client matches on.
const msgStateRequired = "State is required when city is empty"

func RegisterSearch(r chi.Router, d SearchDeps) {
	r.Get("/search", func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		filter := realty.SearchFilter{
			City:         q.Get("city"),
			StateCode:    q.Get("state"),
			PropertyType: q.Get("type"),
		}
		if v := q.Get("maxPrice"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				filter.MaxPrice = f
			}
		}

		body, err := realty.BuildSearchBody(filter)
		if err != nil {
			if errors.Is(err, realty.ErrGeoScopeRequired) {
				writeError(w, req, http.StatusBadRequest, msgStateRequired)
				return
			}
			writeError(w, req, http.StatusBadRequest, err.Error())
			return
		}

		raw, err := d.API.Search(req.Context(), body)
		if err != nil {
			writeError(w, req, http.StatusInternalServerError, err.Error())
			return
		}
		writeRaw(w, raw)
	})
}
