// Package fetcher downloads Project Gutenberg plain-text ebooks and isolates
// the book body between the standard START/END markers. An optional
// Redis-backed DocumentCache can sit in front of the network fetch.
package fetcher

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"golang.org/x/net/html/charset"

	"github.com/Adithya-Monish-Kumar-K/wordfreq/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/wordfreq/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/wordfreq/pkg/metrics"
)

// Fetcher performs a single HTTP GET per call. It never retries.
type Fetcher struct {
	client    *http.Client
	userAgent string
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// New creates a Fetcher. A zero cfg.Timeout keeps the transport defaults.
func New(cfg config.FetchConfig, m *metrics.Metrics) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: cfg.Timeout},
		userAgent: cfg.UserAgent,
		metrics:   m,
		logger:    slog.Default().With("component", "fetcher"),
	}
}

// Fetch downloads location and returns the text between the Gutenberg markers.
func (f *Fetcher) Fetch(ctx context.Context, location string) (string, error) {
	doc, err := f.Download(ctx, location)
	if err != nil {
		return "", err
	}
	body, err := ExtractBody(doc)
	if err != nil {
		f.logger.Debug("markers missing from document", "url", location, "document_bytes", len(doc), "error", err)
		return "", err
	}
	return body, nil
}

// Download returns the whole decoded response body. Connection failures and
// non-2xx responses are reported as transfer errors.
func (f *Fetcher) Download(ctx context.Context, location string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return "", apperrors.TransferError(0, err, "building request for %s: %v", location, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", apperrors.TransferError(0, err, "GET %s: %v", location, unwrapURLError(err))
	}
	defer resp.Body.Close()
	f.metrics.FetchStatusTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", apperrors.TransferError(resp.StatusCode, nil, "GET %s returned %s", location, resp.Status)
	}

	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		f.logger.Debug("charset detection failed, using raw body", "url", location, "error", err)
		reader = resp.Body
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", apperrors.TransferError(resp.StatusCode, err, "reading body of %s: %v", location, err)
	}

	f.logger.Debug("document downloaded",
		"url", location,
		"status", resp.StatusCode,
		"content_type", resp.Header.Get("Content-Type"),
		"bytes", len(data),
	)
	return string(data), nil
}

// unwrapURLError strips the *url.Error envelope, whose message already
// repeats the method and URL.
func unwrapURLError(err error) error {
	if inner := errors.Unwrap(err); inner != nil {
		return inner
	}
	return err
}
