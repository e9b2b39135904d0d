package realty

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	defaultBaseURL = "https://realty-in-us.p.rapidapi.com"
	apiHost        = "realty-in-us.p.rapidapi.com"
)

// Client talks to the realty-in-us RapidAPI gateway.
type Client struct {
	key     string
	baseURL string
	http    *retryablehttp.Client

	// OnCall, when set, observes every upstream call (endpoint, error).
	OnCall func(endpoint string, err error)
}

func NewClient(apiKey string) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 0 // one upstream call per inbound request
	rc.Logger = nil
	rc.HTTPClient.Timeout = 6 * time.Second

	return &Client{
		key:     apiKey,
		baseURL: defaultBaseURL,
		http:    rc,
	}
}

// Search POSTs a list query and returns the raw upstream JSON body.
// Non-2xx status and non-JSON bodies are surfaced as errors.
func (c *Client) Search(ctx context.Context, body SearchBody) (raw []byte, err error) {
	defer func() { c.report("properties/list", err) }()

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode search body: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/properties/v3/list", payload)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	c.setAuthHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, upstreamError("list", resp)
	}

	raw, err = ioReadAllLimit(resp.Body, 4<<20) // 4MB guard
	if err != nil {
		return nil, err
	}
	if !json.Valid(raw) {
		return nil, errors.New("upstream returned a non-JSON body")
	}
	return raw, nil
}

// Detail fetches a single property by id and decodes its nested detail shape.
func (c *Client) Detail(ctx context.Context, propertyID string) (out *DetailResponse, err error) {
	defer func() { c.report("properties/detail", err) }()

	u := fmt.Sprintf("%s/properties/v3/detail?property_id=%s", c.baseURL, url.QueryEscape(propertyID))
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	c.setAuthHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, upstreamError("detail", resp)
	}

	out = &DetailResponse{}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4<<20)).Decode(out); err != nil {
		return nil, fmt.Errorf("decode detail response: %w", err)
	}
	return out, nil
}

func (c *Client) setAuthHeaders(req *retryablehttp.Request) {
	req.Header.Set("x-rapidapi-key", c.key)
	req.Header.Set("x-rapidapi-host", apiHost)
}

func (c *Client) report(endpoint string, err error) {
	if c.OnCall != nil {
		c.OnCall(endpoint, err)
	}
}

func upstreamError(endpoint string, resp *http.Response) error {
	var body map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return fmt.Errorf("realty %s error %d: %v", endpoint, resp.StatusCode, body)
}

func ioReadAllLimit(r io.Reader, limit int64) ([]byte, error) {
	lr := io.LimitReader(r, limit+1)
	b, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, errors.New("payload too large")
	}
	return b, nil
}
