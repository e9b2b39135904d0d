package photos

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/yourorg/listings-proxy/realty"
)

type fakeAPI struct {
	raw   string
	err   error
	calls int
}

func (f *fakeAPI) Detail(_ context.Context, _ string) (*realty.DetailResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var d realty.DetailResponse
	if err := json.Unmarshal([]byte(f.raw), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

type fakeScraper struct {
	srcs  []string
	err   error
	calls int
}

func (f *fakeScraper) Photos(_ context.Context, _ string) ([]string, error) {
	f.calls++
	return f.srcs, f.err
}

func TestResolveRequiresQuery(t *testing.T) {
	api := &fakeAPI{}
	scraper := &fakeScraper{}
	r := &Resolver{API: api, Scraper: scraper}

	_, err := r.Resolve(context.Background(), Query{})
	if !errors.Is(err, ErrMissingQuery) {
		t.Fatalf("expected ErrMissingQuery, got %v", err)
	}
	if api.calls != 0 || scraper.calls != 0 {
		t.Fatal("validation must happen before any network call")
	}
}

func TestResolveAPIStageOnly(t *testing.T) {
	api := &fakeAPI{raw: `{"data":{"home":{"photos":[{"href":"a-s.jpg"},{"href":"b-s.jpg"},{"href":""}]}}}`}
	scraper := &fakeScraper{srcs: []string{"https://ap.rdcpix.com/never-s.jpg"}}
	r := &Resolver{API: api, Scraper: scraper}

	urls, err := r.Resolve(context.Background(), Query{PropertyID: "M1", ListingURL: "https://example.com/listing"})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if len(urls) != 2 || urls[0] != "a-l.jpg" || urls[1] != "b-l.jpg" {
		t.Fatalf("unexpected urls %v", urls)
	}
	if scraper.calls != 0 {
		t.Fatal("scrape must not run when the API stage found photos")
	}
}

func TestResolveEmptyDetailIsNotAnError(t *testing.T) {
	api := &fakeAPI{raw: `{"data":{}}`}
	r := &Resolver{API: api}

	urls, err := r.Resolve(context.Background(), Query{PropertyID: "M1"})
	if err != nil {
		t.Fatalf("expected success with zero results, got %v", err)
	}
	if urls == nil || len(urls) != 0 {
		t.Fatalf("expected empty non-nil list, got %v", urls)
	}
}

func TestResolveAPIErrorPropagates(t *testing.T) {
	api := &fakeAPI{err: errors.New("upstream down")}
	scraper := &fakeScraper{}
	r := &Resolver{API: api, Scraper: scraper}

	_, err := r.Resolve(context.Background(), Query{PropertyID: "M1", ListingURL: "https://example.com/listing"})
	if err == nil {
		t.Fatal("expected API stage error to propagate")
	}
	if scraper.calls != 0 {
		t.Fatal("scrape must not mask an API transport error")
	}
}

func TestResolveScrapeFallbackDedupes(t *testing.T) {
	scraper := &fakeScraper{srcs: []string{
		"https://ap.rdcpix.com/abc-s.jpg",
		"https://ap.rdcpix.com/abc-s.jpg",
	}}
	r := &Resolver{API: &fakeAPI{raw: `{}`}, Scraper: scraper}

	urls, err := r.Resolve(context.Background(), Query{ListingURL: "https://example.com/listing"})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if len(urls) != 1 || urls[0] != "https://ap.rdcpix.com/abc-l.jpg" {
		t.Fatalf("expected one deduped HD url, got %v", urls)
	}
}

func TestResolveScrapeRunsAfterEmptyAPIStage(t *testing.T) {
	api := &fakeAPI{raw: `{"data":{"home":{"photos":[]}}}`}
	scraper := &fakeScraper{srcs: []string{"https://ap.rdcpix.com/xyz-s.jpg"}}
	r := &Resolver{API: api, Scraper: scraper}

	urls, err := r.Resolve(context.Background(), Query{PropertyID: "M1", ListingURL: "https://example.com/listing"})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if api.calls != 1 || scraper.calls != 1 {
		t.Fatalf("expected both stages to run, got api=%d scrape=%d", api.calls, scraper.calls)
	}
	if len(urls) != 1 || urls[0] != "https://ap.rdcpix.com/xyz-l.jpg" {
		t.Fatalf("unexpected urls %v", urls)
	}
}

func TestResolveScrapeFailureIsSwallowed(t *testing.T) {
	scraper := &fakeScraper{err: errors.New("page fetch failed")}
	r := &Resolver{API: &fakeAPI{raw: `{}`}, Scraper: scraper}

	urls, err := r.Resolve(context.Background(), Query{ListingURL: "https://example.com/listing"})
	if err != nil {
		t.Fatalf("scrape failure must not surface, got %v", err)
	}
	if len(urls) != 0 {
		t.Fatalf("expected empty result, got %v", urls)
	}
}
