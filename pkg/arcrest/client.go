// Package arcrest is a client for the ArcGIS for Server REST API. It models
// the service hierarchy (catalog, folders, typed services, layers, tables,
// geoprocessing tasks and jobs) as lightweight handles over fetched endpoint
// documents, so endpoints can be navigated by name instead of by hand-built
// URLs.
package arcrest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds every individual HTTP round trip. The job-polling
// loop has its own caller-supplied budget on top of this.
const DefaultTimeout = 30 * time.Second

// Client represents an ArcGIS REST client with configuration.
type Client struct {
	HTTPClient *http.Client
	Timeout    time.Duration
}

// NewClient creates a new ArcGIS REST client with the specified per-request
// timeout. A non-positive timeout selects DefaultTimeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		Timeout: timeout,
	}
}

// FetchJSON fetches urlStr with the fixed f=json format selector and decodes
// the response into target. When params is nil the request is a plain GET;
// otherwise the parameters are form-encoded and POSTed, which is how the
// server expects operation arguments. Network, HTTP-status, and decode
// failures are returned wrapped with the URL; there is no retry.
func (c *Client) FetchJSON(ctx context.Context, urlStr string, params url.Values, target any) error {
	var (
		req *http.Request
		err error
	)
	if params == nil {
		u, perr := url.Parse(urlStr)
		if perr != nil {
			return fmt.Errorf("invalid URL %s: %w", urlStr, perr)
		}
		q := u.Query()
		q.Set("f", "json")
		u.RawQuery = q.Encode()
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	} else {
		form := url.Values{}
		for k, vs := range params {
			form[k] = vs
		}
		form.Set("f", "json")
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, urlStr, strings.NewReader(form.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	}
	if err != nil {
		return fmt.Errorf("failed to create request for %s: %w", urlStr, err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		if urlErr, ok := err.(*url.Error); ok && urlErr.Timeout() {
			return fmt.Errorf("request timed out fetching data from %s: %w", urlStr, err)
		}
		return fmt.Errorf("failed to fetch data from %s: %w", urlStr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("received non-OK HTTP status %d from %s", resp.StatusCode, urlStr)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to parse JSON from %s: %w", urlStr, err)
	}

	return nil
}

// FetchDocument fetches urlStr and returns the decoded endpoint document.
func (c *Client) FetchDocument(ctx context.Context, urlStr string, params url.Values) (Document, error) {
	var doc Document
	if err := c.FetchJSON(ctx, urlStr, params, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
