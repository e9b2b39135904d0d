package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/yourorg/listings-proxy/internal/photos"
)

type PhotoResolver interface {
	Resolve(ctx context.Context, q photos.Query) ([]string, error)
}

type PhotosDeps struct {
	Resolver PhotoResolver
}

// msgPhotoQueryRequired is the exact message the mobile client matches on.
const msgPhotoQueryRequired = "property_id or url is required"

func RegisterPhotos(r chi.Router, d PhotosDeps) {
	r.Get("/photos", func(w http.ResponseWriter, req *http.Request) {
		q := photos.Query{
			PropertyID: req.URL.Query().Get("property_id"),
			ListingURL: req.URL.Query().Get("url"),
		}

		urls, err := d.Resolver.Resolve(req.Context(), q)
		if err != nil {
			if errors.Is(err, photos.ErrMissingQuery) {
				writeError(w, req, http.StatusBadRequest, msgPhotoQueryRequired)
				return
			}
			writeError(w, req, http.StatusInternalServerError, err.Error())
			return
		}
		render.JSON(w, req, map[string]any{"photos": urls})
	})
}
