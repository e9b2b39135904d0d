package httpapi

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/yourorg/listings-proxy/internal/photos"
)

type fakeResolver struct {
	urls []string
	err  error
	q    photos.Query
}

func (f *fakeResolver) Resolve(_ context.Context, q photos.Query) ([]string, error) {
	f.q = q
	if f.err != nil {
		return nil, f.err
	}
	return f.urls, nil
}

func TestPhotosMissingIdentifiers(t *testing.T) {
	r := chi.NewRouter()
	RegisterPhotos(r, PhotosDeps{Resolver: &fakeResolver{err: photos.ErrMissingQuery}})

	rec := doRequest(t, r, "/photos")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if decodeBody(t, rec)["error"] != "property_id or url is required" {
		t.Fatalf("unexpected message %s", rec.Body.String())
	}
}

func TestPhotosSuccess(t *testing.T) {
	resolver := &fakeResolver{urls: []string{"a-l.jpg", "b-l.jpg"}}
	r := chi.NewRouter()
	RegisterPhotos(r, PhotosDeps{Resolver: resolver})

	rec := doRequest(t, r, "/photos?property_id=M1&url=https%3A%2F%2Fexample.com%2Flisting")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	list, ok := body["photos"].([]any)
	if !ok || len(list) != 2 || list[0] != "a-l.jpg" {
		t.Fatalf("unexpected photos %v", body["photos"])
	}
	if resolver.q.PropertyID != "M1" || resolver.q.ListingURL != "https://example.com/listing" {
		t.Fatalf("query not forwarded: %+v", resolver.q)
	}
}

func TestPhotosEmptyResultIsSuccess(t *testing.T) {
	r := chi.NewRouter()
	RegisterPhotos(r, PhotosDeps{Resolver: &fakeResolver{urls: []string{}}})

	rec := doRequest(t, r, "/photos?property_id=M1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for zero photos, got %d", rec.Code)
	}
	list, ok := decodeBody(t, rec)["photos"].([]any)
	if !ok || len(list) != 0 {
		t.Fatalf("expected empty photos array, got %s", rec.Body.String())
	}
}

func TestPhotosResolverFailure(t *testing.T) {
	r := chi.NewRouter()
	RegisterPhotos(r, PhotosDeps{Resolver: &fakeResolver{err: errors.New("detail fetch failed")}})

	rec := doRequest(t, r, "/photos?property_id=M1")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if decodeBody(t, rec)["error"] != "detail fetch failed" {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}
