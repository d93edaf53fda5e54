// Package ioadyen downloads Adyen reports over HTTP.
// This is an impure I/O package.
//
// Reports are addressed by day:
//
//	{base}/reports/download/{account_type}/{account}/{prefix}_{YYYY_MM_DD}.csv
//
// The client probes every day from the stream bookmark until yesterday
// and yields the reports that exist.
package ioadyen

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gnames/tapadyen/pkg/config"
)

// Client implements tap.Enumerator and tap.Retriever.
type Client struct {
	base     string
	user     string
	password string
	hc       *http.Client
	now      func() time.Time
}

// Option modifies a Client.
type Option func(*Client)

// OptHTTPClient replaces the HTTP client, mostly for tests.
func OptHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.hc = hc
	}
}

// OptNow replaces the clock that decides which day is yesterday.
func OptNow(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// New creates a Client for the report account in cfg.
func New(cfg config.AdyenConfig, opts ...Option) *Client {
	base := strings.TrimSuffix(cfg.BaseURL, "/")
	base += "/reports/download/" + url.PathEscape(cfg.AccountType) +
		"/" + url.PathEscape(cfg.Account)

	res := &Client{
		base:     base,
		user:     cfg.ReportUser,
		password: cfg.ReportPassword,
		hc:       &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Second},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Base returns the URL all report locators start with.
func (c *Client) Base() string {
	return c.base
}

func (c *Client) request(
	ctx context.Context,
	method, loc string,
) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, loc, nil)
	if err != nil {
		return nil, ReportRequestError(loc, err)
	}
	if c.user != "" {
		req.SetBasicAuth(c.user, c.password)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, ReportRequestError(loc, err)
	}
	return resp, nil
}
