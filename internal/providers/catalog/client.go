package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sandevgo/gadgetbot/internal/core"
	"github.com/sandevgo/gadgetbot/pkg/retry"
)

const maxErrorBody = 256

// Client searches the catalog store over its HTTP surface.
type Client struct {
	baseURL string
	http    *http.Client
	retrier *retry.Retrier
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return NewClientWithRetry(baseURL, timeout, retry.NewQuickConfig())
}

func NewClientWithRetry(baseURL string, timeout time.Duration, cfg *retry.Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		retrier: retry.NewRetrier(cfg),
	}
}

func (c *Client) Search(ctx context.Context, query string) ([]core.Listing, error) {
	endpoint := c.baseURL + "/listings?search=" + url.QueryEscape(query)

	var listings []core.Listing
	err := c.retrier.Do(ctx, func() error {
		var err error
		listings, err = c.fetch(ctx, endpoint)
		return err
	})
	if err != nil {
		return nil, err
	}
	return listings, nil
}

func (c *Client) fetch(ctx context.Context, endpoint string) ([]core.Listing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, retry.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", core.BotUserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, retry.Permanent(ctxErr)
		}
		return nil, fmt.Errorf("%w: catalog: %v", core.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		upErr := &core.UpstreamError{Service: "catalog", Status: resp.StatusCode, Body: string(body)}
		if resp.StatusCode < http.StatusInternalServerError {
			return nil, retry.Permanent(upErr)
		}
		return nil, upErr
	}

	var listings []core.Listing
	if err := json.NewDecoder(resp.Body).Decode(&listings); err != nil {
		return nil, retry.Permanent(fmt.Errorf("catalog: decode: %w", err))
	}
	return listings, nil
}
