package webdav

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"onthisday/internal/config"
	appErrors "onthisday/internal/errors"
	"onthisday/internal/logging"
)

const MethodPropfind = "PROPFIND"

// Client issues single, non-retried WebDAV requests. A nil HTTP client is
// replaced per request by one honouring the config timeout.
type Client struct {
	HTTP   *http.Client
	Logger logging.Logger
}

// Propfind sends a Depth: 1 PROPFIND for the configured folder and returns
// the raw response body.
func (c *Client) Propfind(ctx context.Context, cfg config.ServerConfig, body string) (string, error) {
	target, err := cfg.CollectionURL()
	if err != nil {
		return "", err
	}
	targetURL := target.String()

	req, err := http.NewRequestWithContext(ctx, MethodPropfind, targetURL, strings.NewReader(body))
	if err != nil {
		return "", appErrors.Wrap(appErrors.InvalidURL, "propfind", targetURL, err)
	}
	req.Header.Set("Depth", "1")
	req.Header.Set("Content-Type", "application/xml; charset=utf-8")
	req.SetBasicAuth(cfg.Username, cfg.Password)

	c.Logger.Verbosef("sending PROPFIND %s", targetURL)
	res, err := c.client(cfg).Do(req)
	if err != nil {
		return "", classifyTransport(ctx, "propfind", targetURL, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, res.Body)
		c.Logger.Warnf("PROPFIND %s returned %s", targetURL, res.Status)
		return "", appErrors.Status("propfind", targetURL, res.StatusCode)
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return "", classifyTransport(ctx, "read response", targetURL, err)
	}
	c.Logger.Verbosef("PROPFIND %s returned %d bytes", targetURL, len(data))
	return string(data), nil
}

// Download streams the resource at rawURL into w. Credentials are only
// attached when rawURL points at the configured server.
func (c *Client) Download(ctx context.Context, cfg config.ServerConfig, rawURL string, w io.Writer) (int64, error) {
	cfg = cfg.Normalized()
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		if err == nil {
			err = errors.New("missing host")
		}
		return 0, appErrors.Wrap(appErrors.InvalidURL, "download", rawURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, appErrors.Wrap(appErrors.InvalidURL, "download", rawURL, err)
	}
	if base, err := url.Parse(cfg.BaseAddress); err == nil && strings.EqualFold(base.Host, u.Host) {
		req.SetBasicAuth(cfg.Username, cfg.Password)
	}

	c.Logger.Verbosef("sending GET %s", rawURL)
	res, err := c.client(cfg).Do(req)
	if err != nil {
		return 0, classifyTransport(ctx, "download", rawURL, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, res.Body)
		return 0, appErrors.Status("download", rawURL, res.StatusCode)
	}

	n, err := io.Copy(w, res.Body)
	if err != nil {
		return n, classifyTransport(ctx, "download", rawURL, err)
	}
	return n, nil
}

func (c *Client) client(cfg config.ServerConfig) *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return &http.Client{Timeout: cfg.Timeout}
}

func classifyTransport(ctx context.Context, op, target string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(ctxErr, context.Canceled) {
		return appErrors.Wrap(appErrors.Canceled, op, target, ctxErr)
	}
	return appErrors.Wrap(appErrors.NetworkFailure, op, target, fmt.Errorf("transport: %w", err))
}
