package cocktail

import (
	"encoding/json"

	"apiviews/internal/jsonutil"
)

// MaxIngredients is the number of numbered strIngredientN fields.
const MaxIngredients = 15

// Drink is one cocktail record. Filter endpoints populate only ID, Name
// and Thumb; search, random and lookup populate everything.
type Drink struct {
	ID        string
	Name      string
	Thumb     string
	Category  string
	Alcoholic string
	Glass     string
	Method    string

	ingredients []string
}

// UnmarshalJSON decodes the provider's str-prefixed keys and collapses the
// sparse strIngredient1..15 fields into an ordered list.
func (d *Drink) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*d = Drink{
		ID:          jsonutil.ToString(m["idDrink"]),
		Name:        jsonutil.GetString(m, "strDrink"),
		Thumb:       jsonutil.GetString(m, "strDrinkThumb"),
		Category:    jsonutil.GetString(m, "strCategory"),
		Alcoholic:   jsonutil.GetString(m, "strAlcoholic"),
		Glass:       jsonutil.GetString(m, "strGlass"),
		Method:      jsonutil.GetString(m, "strInstructions"),
		ingredients: jsonutil.NumberedStrings(m, "strIngredient", MaxIngredients),
	}
	return nil
}

// Ingredients returns the non-empty ingredients in position order.
func (d *Drink) Ingredients() []string {
	out := make([]string, len(d.ingredients))
	copy(out, d.ingredients)
	return out
}

// SetIngredients replaces the ingredient list; used when building records
// outside JSON decoding.
func (d *Drink) SetIngredients(in []string) {
	d.ingredients = append([]string(nil), in...)
}

// Partial reports whether the record came from a filter endpoint and lacks
// the detail fields.
func (d *Drink) Partial() bool {
	return d.Category == "" && d.Alcoholic == "" && len(d.ingredients) == 0
}

// CategoryOrUnknown returns the category or a placeholder.
func (d *Drink) CategoryOrUnknown() string {
	if d.Category == "" {
		return "Unknown Category"
	}
	return d.Category
}

// AlcoholicOrUnknown returns the alcoholic type or a placeholder.
func (d *Drink) AlcoholicOrUnknown() string {
	if d.Alcoholic == "" {
		return "Unknown Type"
	}
	return d.Alcoholic
}
