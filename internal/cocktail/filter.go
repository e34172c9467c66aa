package cocktail

import (
	"fmt"
	"net/url"
	"strings"
)

// FilterMode selects which query shape is sent to the cocktail API.
type FilterMode int

const (
	ByName FilterMode = iota
	ByFirstLetter
	Random
	ByCategory
	ByIngredient
	ByAlcoholic
	modeCount
)

// Modes lists every filter mode in selector order.
var Modes = []FilterMode{ByName, ByFirstLetter, Random, ByCategory, ByIngredient, ByAlcoholic}

func (m FilterMode) String() string {
	switch m {
	case ByName:
		return "name"
	case ByFirstLetter:
		return "firstLetter"
	case Random:
		return "random"
	case ByCategory:
		return "category"
	case ByIngredient:
		return "ingredient"
	case ByAlcoholic:
		return "alcoholic"
	default:
		return "unknown"
	}
}

// Label is the human-readable selector text.
func (m FilterMode) Label() string {
	switch m {
	case ByName:
		return "Search by Name"
	case ByFirstLetter:
		return "Search by First Letter"
	case Random:
		return "Random Cocktail"
	case ByCategory:
		return "Filter by Category"
	case ByIngredient:
		return "Filter by Ingredient"
	case ByAlcoholic:
		return "Filter by Alcoholic/Non-Alcoholic"
	default:
		return "Unknown"
	}
}

// ParseFilterMode maps a mode name (as returned by String) back to a mode.
func ParseFilterMode(s string) (FilterMode, error) {
	for _, m := range Modes {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return ByName, fmt.Errorf("unknown filter mode %q", s)
}

// Next returns the following mode, wrapping around.
func (m FilterMode) Next() FilterMode {
	return (m + 1) % modeCount
}

// Prev returns the preceding mode, wrapping around.
func (m FilterMode) Prev() FilterMode {
	return (m + modeCount - 1) % modeCount
}

// TakesText reports whether the mode uses the search text.
func (m FilterMode) TakesText() bool {
	return m != Random
}

// ShouldFetch reports whether a request should fire for (mode, text).
// Random always fires; every other mode needs non-blank text.
func ShouldFetch(mode FilterMode, text string) bool {
	return mode == Random || strings.TrimSpace(text) != ""
}

// Endpoint maps (mode, text) to a request path and query. Random ignores text.
func Endpoint(mode FilterMode, text string) (string, url.Values) {
	switch mode {
	case ByFirstLetter:
		return "search.php", url.Values{"f": {text}}
	case Random:
		return "random.php", nil
	case ByCategory:
		return "filter.php", url.Values{"c": {text}}
	case ByIngredient:
		return "filter.php", url.Values{"i": {text}}
	case ByAlcoholic:
		return "filter.php", url.Values{"a": {text}}
	default:
		return "search.php", url.Values{"s": {text}}
	}
}
