package scrape

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// photoHost is the listing photo CDN; only <img> tags served from it are
// listing photos, everything else on the page is chrome.
const photoHost = "ap.rdcpix.com"

type Scraper struct {
	client *http.Client
	host   string
}

func New() *Scraper {
	return &Scraper{
		client: &http.Client{Timeout: 10 * time.Second},
		host:   photoHost,
	}
}

// Photos fetches the listing page and returns the src of every photo-CDN
// <img>, in document order. Duplicates are kept; the caller normalizes and
// de-duplicates.
func (s *Scraper) Photos(ctx context.Context, pageURL string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("listing page returned %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse listing page: %w", err)
	}

	var srcs []string
	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		if src, ok := sel.Attr("src"); ok && strings.Contains(src, s.host) {
			srcs = append(srcs, src)
		}
	})
	return srcs, nil
}
