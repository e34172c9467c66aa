package ui

import (
	"fmt"
	"strings"
)

// Screen is one of the top-level views shown in the tab bar.
type Screen int

const (
	ScreenBank Screen = iota
	ScreenCocktails
	ScreenMeals
	screenCount
)

// Screens lists every screen in tab order.
var Screens = []Screen{ScreenBank, ScreenCocktails, ScreenMeals}

func (s Screen) String() string {
	switch s {
	case ScreenBank:
		return "bank"
	case ScreenCocktails:
		return "cocktails"
	case ScreenMeals:
		return "meals"
	default:
		return "unknown"
	}
}

// Title is the tab label.
func (s Screen) Title() string {
	switch s {
	case ScreenBank:
		return "Bank IFSC"
	case ScreenCocktails:
		return "Cocktails"
	case ScreenMeals:
		return "Meals"
	default:
		return "?"
	}
}

// Next returns the following screen, wrapping around.
func (s Screen) Next() Screen { return (s + 1) % screenCount }

// Prev returns the preceding screen, wrapping around.
func (s Screen) Prev() Screen { return (s + screenCount - 1) % screenCount }

// ParseScreen maps a screen name back to a Screen.
func ParseScreen(name string) (Screen, error) {
	for _, s := range Screens {
		if strings.EqualFold(name, s.String()) {
			return s, nil
		}
	}
	return ScreenBank, fmt.Errorf("unknown screen %q (want bank, cocktails or meals)", name)
}
