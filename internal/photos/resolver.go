package photos

import (
	"context"
	"errors"
	"log/slog"

	"github.com/yourorg/listings-proxy/realty"
)

// ErrMissingQuery is returned when a resolve call carries neither a property
// id nor a listing page URL.
var ErrMissingQuery = errors.New("photo query requires a property id or a listing url")

type DetailAPI interface {
	Detail(ctx context.Context, propertyID string) (*realty.DetailResponse, error)
}

type PageScraper interface {
	Photos(ctx context.Context, pageURL string) ([]string, error)
}

type Query struct {
	PropertyID string
	ListingURL string
}

// Resolver produces a de-duplicated, HD-normalized photo URL list, trying the
// structured detail API first and an HTML scrape of the listing page second.
type Resolver struct {
	API     DetailAPI
	Scraper PageScraper
	Log     *slog.Logger
}

// stageResult keeps "stage failed" distinct from "stage found zero photos";
// both leave the candidate list empty but only the former is worth logging.
type stageResult struct {
	urls []string
	err  error
}

func (r *Resolver) Resolve(ctx context.Context, q Query) ([]string, error) {
	if q.PropertyID == "" && q.ListingURL == "" {
		return nil, ErrMissingQuery
	}

	var urls []string
	if q.PropertyID != "" {
		res := r.lookup(ctx, q.PropertyID)
		if res.err != nil {
			return nil, res.err
		}
		urls = res.urls
	}

	if len(urls) == 0 && q.ListingURL != "" {
		res := r.scrape(ctx, q.ListingURL)
		if res.err != nil {
			// best effort: a failed scrape degrades to zero photos
			r.log().Warn("photo scrape failed", "url", q.ListingURL, "error", res.err)
		} else {
			urls = res.urls
		}
	}

	return dedupe(urls), nil
}

func (r *Resolver) lookup(ctx context.Context, propertyID string) stageResult {
	detail, err := r.API.Detail(ctx, propertyID)
	if err != nil {
		return stageResult{err: err}
	}
	var urls []string
	for _, p := range detail.Photos() {
		if p.Href == "" {
			continue
		}
		urls = append(urls, realty.ToHD(p.Href))
	}
	return stageResult{urls: urls}
}

func (r *Resolver) scrape(ctx context.Context, pageURL string) stageResult {
	if r.Scraper == nil {
		return stageResult{err: errors.New("no page scraper configured")}
	}
	srcs, err := r.Scraper.Photos(ctx, pageURL)
	if err != nil {
		return stageResult{err: err}
	}
	urls := make([]string, 0, len(srcs))
	for _, src := range srcs {
		urls = append(urls, realty.ToHD(src))
	}
	return stageResult{urls: urls}
}

// dedupe removes duplicates keeping first-seen order. Always returns a
// non-nil slice so an empty result serializes as [].
func dedupe(urls []string) []string {
	out := make([]string, 0, len(urls))
	seen := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}

func (r *Resolver) log() *slog.Logger {
	if r.Log != nil {
		return r.Log
	}
	return slog.Default()
}
