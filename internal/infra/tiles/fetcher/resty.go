package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/yanqian/bitebrain/internal/domain/tiles"
)

const defaultContentType = "application/octet-stream"

// HTTPFetcher downloads tiles from an XYZ URL template such as
// https://host/{z}/{x}/{y}.png?access_token={token}.
type HTTPFetcher struct {
	client   *resty.Client
	template string
	token    string
}

// New builds an HTTPFetcher with a retrying resty client.
func New(template, token string) (*HTTPFetcher, error) {
	client := resty.New()
	client.SetTimeout(15 * time.Second)
	client.SetRetryCount(2)
	client.SetRetryWaitTime(500 * time.Millisecond)
	client.AddRetryCondition(func(r *resty.Response, err error) bool {
		return err != nil || r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= 500
	})
	return NewWithClient(client, template, token)
}

// NewWithClient wraps an existing resty client.
func NewWithClient(client *resty.Client, template, token string) (*HTTPFetcher, error) {
	for _, ph := range []string{"{z}", "{x}", "{y}"} {
		if !strings.Contains(template, ph) {
			return nil, fmt.Errorf("tile url template must contain %s", ph)
		}
	}
	return &HTTPFetcher{client: client, template: template, token: token}, nil
}

// Enabled reports whether the template can be rendered. Templates with a
// {token} placeholder need a non-empty token.
func (f *HTTPFetcher) Enabled() bool {
	return !strings.Contains(f.template, "{token}") || f.token != ""
}

// URL renders the template for c.
func (f *HTTPFetcher) URL(c tiles.Coord) string {
	return strings.NewReplacer(
		"{z}", strconv.Itoa(c.Z),
		"{x}", strconv.Itoa(c.X),
		"{y}", strconv.Itoa(c.Y),
		"{token}", f.token,
	).Replace(f.template)
}

// Fetch implements tiles.Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, c tiles.Coord) ([]byte, string, error) {
	if !f.Enabled() {
		return nil, "", fmt.Errorf("%w: map access token not configured", tiles.ErrSourceUnavailable)
	}
	resp, err := f.client.R().
		SetContext(ctx).
		Get(f.URL(c))
	if err != nil {
		return nil, "", fmt.Errorf("fetch tile %d/%d/%d: %w", c.Z, c.X, c.Y, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, "", fmt.Errorf("tile server returned status %d for %d/%d/%d", resp.StatusCode(), c.Z, c.X, c.Y)
	}
	body := resp.Body()
	if len(body) == 0 {
		return nil, "", fmt.Errorf("tile server returned empty body for %d/%d/%d", c.Z, c.X, c.Y)
	}
	contentType := resp.Header().Get("Content-Type")
	if contentType == "" {
		contentType = defaultContentType
	}
	return body, contentType, nil
}

var _ tiles.Fetcher = (*HTTPFetcher)(nil)
