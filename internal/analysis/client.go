// Package analysis talks to the backend analysis service that produces
// liquidity recommendations.
package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/guttosm/stabletide/internal/domain/models"
)

const maxErrorBody = 4096

// Client calls GET /recommendations on the analysis service. It makes exactly
// one attempt per call.
type Client struct {
	baseURL string
	hc      *http.Client
	timeout time.Duration
}

// NewClient builds a client for baseURL (scheme://host:port). timeout bounds
// each call; zero means no deadline beyond the caller's context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{},
		timeout: timeout,
	}
}

// Validate returns a *ValidationError naming every empty field, or nil.
func Validate(p models.QueryParams) error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"start", p.Start},
		{"end", p.End},
		{"asset", p.Asset},
		{"time_intervals", p.TimeIntervals},
		{"time_interval_length", p.TimeIntervalLength},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// RecommendationsURL renders the request URL for p. Values are forwarded
// unchanged apart from query escaping.
func (c *Client) RecommendationsURL(p models.QueryParams) string {
	q := url.Values{}
	q.Set("start", p.Start)
	q.Set("end", p.End)
	q.Set("asset", p.Asset)
	q.Set("time_intervals", p.TimeIntervals)
	q.Set("time_interval_length", p.TimeIntervalLength)
	return c.baseURL + "/recommendations?" + q.Encode()
}

// FetchRecommendations validates p, performs the request and decodes the
// result. On success CurrentDay is set to p.End.
//
// Errors:
//   - *ValidationError: a field is empty; no request was made.
//   - *UpstreamError: non-2xx status.
//   - ErrUpstreamTimeout, ErrUpstreamUnavailable: transport failures.
//   - ErrMalformedPayload: the body is not a result document.
func (c *Client) FetchRecommendations(ctx context.Context, p models.QueryParams) (models.CachedQueryResult, error) {
	var out models.CachedQueryResult
	if err := Validate(p); err != nil {
		return out, err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.RecommendationsURL(p), nil)
	if err != nil {
		return out, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.hc.Do(req)
	if err != nil {
		return out, classifyTransport(err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return out, &UpstreamError{Status: res.StatusCode, Body: string(body)}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		if isTimeout(err) {
			return out, fmt.Errorf("%w: %v", ErrUpstreamTimeout, err)
		}
		return out, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return decodeResult(body, p.End)
}

// decodeResult checks body against the result shape and returns it with
// current_day set. Raw keeps every field of body untouched.
func decodeResult(body []byte, currentDay string) (models.CachedQueryResult, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil || doc == nil {
		return models.CachedQueryResult{}, fmt.Errorf("%w: not a JSON object", ErrMalformedPayload)
	}
	var out models.CachedQueryResult
	if err := json.Unmarshal(body, &out); err != nil {
		return models.CachedQueryResult{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	day, err := json.Marshal(currentDay)
	if err != nil {
		return models.CachedQueryResult{}, err
	}
	doc["current_day"] = day
	raw, err := json.Marshal(doc)
	if err != nil {
		return models.CachedQueryResult{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	out.CurrentDay = currentDay
	out.Raw = raw
	return out, nil
}

// Ping checks that the analysis service accepts TCP connections.
func (c *Client) Ping(ctx context.Context) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return err
	}
	host := u.Host
	if u.Port() == "" {
		if u.Scheme == "https" {
			host = net.JoinHostPort(u.Hostname(), "443")
		} else {
			host = net.JoinHostPort(u.Hostname(), "80")
		}
	}
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", host)
	if err != nil {
		return classifyTransport(err)
	}
	return conn.Close()
}

func classifyTransport(err error) error {
	if isTimeout(err) {
		return fmt.Errorf("%w: %v", ErrUpstreamTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
