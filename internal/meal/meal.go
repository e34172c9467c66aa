// Package meal is the client for the meal recipe API.
package meal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"apiviews/internal/apiclient"
	"apiviews/internal/jsonutil"
)

// Meal is one recipe record.
type Meal struct {
	ID           string
	Name         string
	Thumb        string
	Category     string
	Area         string
	Instructions string
	YouTube      string
	Ingredients  []string
}

// UnmarshalJSON decodes the provider's str-prefixed keys.
func (m *Meal) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = Meal{
		ID:           jsonutil.ToString(raw["idMeal"]),
		Name:         jsonutil.GetString(raw, "strMeal"),
		Thumb:        jsonutil.GetString(raw, "strMealThumb"),
		Category:     jsonutil.GetString(raw, "strCategory"),
		Area:         jsonutil.GetString(raw, "strArea"),
		Instructions: jsonutil.GetString(raw, "strInstructions"),
		YouTube:      strings.TrimSpace(jsonutil.GetString(raw, "strYoutube")),
		Ingredients:  jsonutil.NumberedStrings(raw, "strIngredient", 20),
	}
	return nil
}

// EmbedURL rewrites a watch URL into its embeddable form.
func EmbedURL(raw string) string {
	return strings.Replace(raw, "watch?v=", "embed/", 1)
}

// Video returns the embeddable video URL, if the meal has one.
func (m *Meal) Video() (string, bool) {
	if m.YouTube == "" {
		return "", false
	}
	return EmbedURL(m.YouTube), true
}

type mealsEnvelope struct {
	Meals []Meal `json:"meals"`
}

// Client wraps the meal API.
type Client struct {
	api *apiclient.Client
}

// NewClient returns a meal client on top of api.
func NewClient(api *apiclient.Client) *Client {
	return &Client{api: api}
}

// SearchByName finds meals whose name matches. A null result is an empty slice.
func (c *Client) SearchByName(ctx context.Context, name string) ([]Meal, error) {
	var env mealsEnvelope
	if err := c.api.GetJSON(ctx, "search.php", url.Values{"s": {strings.TrimSpace(name)}}, &env); err != nil {
		return nil, fmt.Errorf("meal search %q: %w", name, err)
	}
	if env.Meals == nil {
		return []Meal{}, nil
	}
	return env.Meals, nil
}
