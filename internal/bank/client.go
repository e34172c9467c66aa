package bank

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"apiviews/internal/apiclient"
)

// Client wraps the bank branch API.
type Client struct {
	api *apiclient.Client
}

// NewClient returns a bank client on top of api.
func NewClient(api *apiclient.Client) *Client {
	return &Client{api: api}
}

// statePath builds STATE/{seg}/.../ with each segment path-escaped.
func statePath(segments ...string) string {
	var b strings.Builder
	b.WriteString("STATE/")
	for _, s := range segments {
		b.WriteString(url.PathEscape(s))
		b.WriteByte('/')
	}
	return b.String()
}

// States lists every state.
func (c *Client) States(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.api.GetJSON(ctx, statePath(), nil, &out); err != nil {
		return nil, fmt.Errorf("fetching states: %w", err)
	}
	return out, nil
}

// Districts lists the districts of state.
func (c *Client) Districts(ctx context.Context, state string) ([]string, error) {
	var out []string
	if err := c.api.GetJSON(ctx, statePath(state), nil, &out); err != nil {
		return nil, fmt.Errorf("fetching districts for %s: %w", state, err)
	}
	return out, nil
}

// Cities lists the cities of (state, district).
func (c *Client) Cities(ctx context.Context, state, district string) ([]string, error) {
	var out []string
	if err := c.api.GetJSON(ctx, statePath(state, district), nil, &out); err != nil {
		return nil, fmt.Errorf("fetching cities for %s/%s: %w", state, district, err)
	}
	return out, nil
}

// Centers lists the centers of (state, district, city).
func (c *Client) Centers(ctx context.Context, state, district, city string) ([]Center, error) {
	var out []Center
	if err := c.api.GetJSON(ctx, statePath(state, district, city), nil, &out); err != nil {
		return nil, fmt.Errorf("fetching centers for %s/%s/%s: %w", state, district, city, err)
	}
	return out, nil
}

// BranchAt fetches the branch record for a fully resolved location.
func (c *Client) BranchAt(ctx context.Context, state, district, city, center string) (*Branch, error) {
	var out Branch
	if err := c.api.GetJSON(ctx, statePath(state, district, city, center), nil, &out); err != nil {
		return nil, fmt.Errorf("fetching branch at %s/%s/%s/%s: %w", state, district, city, center, err)
	}
	return &out, nil
}

// NormalizeIFSC trims and upper-cases an IFSC code.
func NormalizeIFSC(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ByIFSC fetches a branch directly by IFSC code.
func (c *Client) ByIFSC(ctx context.Context, code string) (*Branch, error) {
	code = NormalizeIFSC(code)
	if code == "" {
		return nil, fmt.Errorf("empty IFSC code")
	}
	var out Branch
	if err := c.api.GetJSON(ctx, "IFSC/"+url.PathEscape(code)+"/", nil, &out); err != nil {
		return nil, fmt.Errorf("fetching branch by IFSC %s: %w", code, err)
	}
	return &out, nil
}
