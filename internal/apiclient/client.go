// Package apiclient is the shared HTTP layer for the read-only provider APIs.
//
// Every request is a GET whose body is decoded as JSON. Failures are reported
// as *Error with one of two kinds (transport or decode). Each request runs
// inside an OpenTelemetry span, and identical in-flight GETs are collapsed so
// a burst of keystrokes that settles on the same query hits the network once.
package apiclient

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/singleflight"

	"apiviews/internal/jsonutil"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 8 << 20
)

// Client issues GET requests against one provider base URL.
type Client struct {
	provider string
	baseURL  string
	http     *http.Client
	tracer   oteltrace.Tracer
	log      *slog.Logger
	inflight singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout on the underlying *http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = &http.Client{Timeout: d, Transport: c.http.Transport}
		}
	}
}

// WithTracer sets the tracer used for request spans.
func WithTracer(t oteltrace.Tracer) Option {
	return func(c *Client) {
		if t != nil {
			c.tracer = t
		}
	}
}

// WithLogger sets the logger for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New constructs a Client for provider rooted at baseURL.
// A trailing slash on baseURL is ignored.
func New(provider, baseURL string, opts ...Option) *Client {
	c := &Client{
		provider: provider,
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: defaultTimeout},
		tracer:   noop.NewTracerProvider().Tracer("apiviews/apiclient"),
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Provider returns the provider name used in spans and logs.
func (c *Client) Provider() string { return c.provider }

// URL joins path onto the base URL and appends the encoded query, if any.
// path is used verbatim; callers escape dynamic segments.
func (c *Client) URL(path string, query url.Values) string {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// GetJSON fetches path with query and decodes the JSON body into dst.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, dst any) error {
	rawURL := c.URL(path, query)

	ctx, span := c.tracer.Start(ctx, "GET "+c.provider,
		oteltrace.WithSpanKind(oteltrace.SpanKindClient),
		oteltrace.WithAttributes(
			attribute.String("http.method", http.MethodGet),
			attribute.String("http.url", rawURL),
			attribute.String("apiviews.provider", c.provider),
		),
	)
	defer span.End()

	start := time.Now()
	v, err, shared := c.inflight.Do(rawURL, func() (interface{}, error) {
		return c.fetch(ctx, rawURL)
	})
	span.SetAttributes(attribute.Bool("apiviews.shared", shared))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	res := v.(fetchResult)
	span.SetAttributes(attribute.Int("http.status_code", res.status))

	if err := jsonutil.UnmarshalWithContext(res.body, dst, "decoding "+c.provider+" response"); err != nil {
		decErr := &Error{Kind: KindDecode, URL: rawURL, Err: err}
		span.RecordError(decErr)
		span.SetStatus(codes.Error, decErr.Error())
		return decErr
	}

	c.log.Debug("provider request",
		"provider", c.provider,
		"url", rawURL,
		"status", res.status,
		"bytes", len(res.body),
		"shared", shared,
		"elapsed", time.Since(start),
	)
	return nil
}

type fetchResult struct {
	status int
	body   []byte
}

func (c *Client) fetch(ctx context.Context, rawURL string) (fetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fetchResult{}, &Error{Kind: KindTransport, URL: rawURL, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fetchResult{}, &Error{Kind: KindTransport, URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fetchResult{status: resp.StatusCode}, &Error{
			Kind: KindTransport,
			URL:  rawURL,
			Err:  fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fetchResult{}, &Error{Kind: KindTransport, URL: rawURL, Err: fmt.Errorf("reading body: %w", err)}
	}
	return fetchResult{status: resp.StatusCode, body: body}, nil
}
