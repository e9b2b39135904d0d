package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/yourorg/listings-proxy/realty"
)

type ListingsDeps struct {
	API SearchAPI
	// PostalCode scopes the default feed.
	PostalCode string
}

func RegisterListings(r chi.Router, d ListingsDeps) {
	r.Get("/listings", func(w http.ResponseWriter, req *http.Request) {
		raw, err := d.API.Search(req.Context(), realty.DefaultFeedBody(d.PostalCode))
		if err != nil {
			writeError(w, req, http.StatusInternalServerError, err.Error())
			return
		}
		writeRaw(w, raw)
	})

	// Retired endpoint, kept so old clients get a pointer instead of a 404.
	r.HandleFunc("/details", func(w http.ResponseWriter, req *http.Request) {
		render.JSON(w, req, map[string]any{
			"message": "Deprecated. Use /photos with property_id instead.",
		})
	})
}
