// Package cocktail is the client for the cocktail recipe API.
package cocktail

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"apiviews/internal/apiclient"
)

// drinksEnvelope is the {"drinks": [...]} wrapper; drinks is null when
// nothing matched.
type drinksEnvelope struct {
	Drinks []Drink `json:"drinks"`
}

// Client wraps the cocktail API.
type Client struct {
	api *apiclient.Client
}

// NewClient returns a cocktail client on top of api.
func NewClient(api *apiclient.Client) *Client {
	return &Client{api: api}
}

// Search runs the query shape for mode. A null result is an empty slice.
func (c *Client) Search(ctx context.Context, mode FilterMode, text string) ([]Drink, error) {
	path, query := Endpoint(mode, strings.TrimSpace(text))
	var env drinksEnvelope
	if err := c.api.GetJSON(ctx, path, query, &env); err != nil {
		return nil, fmt.Errorf("cocktail search (%s %q): %w", mode, text, err)
	}
	if env.Drinks == nil {
		return []Drink{}, nil
	}
	return env.Drinks, nil
}

// Lookup fetches the full record for a drink id.
// Returns nil, nil when the id is unknown.
func (c *Client) Lookup(ctx context.Context, id string) (*Drink, error) {
	var env drinksEnvelope
	if err := c.api.GetJSON(ctx, "lookup.php", url.Values{"i": {id}}, &env); err != nil {
		return nil, fmt.Errorf("cocktail lookup %s: %w", id, err)
	}
	if len(env.Drinks) == 0 {
		return nil, nil
	}
	return &env.Drinks[0], nil
}
