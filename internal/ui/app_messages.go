package ui

import (
	"apiviews/internal/bank"
	"apiviews/internal/cocktail"
	"apiviews/internal/load"
	"apiviews/internal/meal"
)

// SwitchScreenMsg makes Screen the visible screen.
type SwitchScreenMsg struct {
	Screen Screen
}

// CycleScreenMsg moves to the next (Delta > 0) or previous screen.
type CycleScreenMsg struct {
	Delta int
}

// OpenOverlayMsg pushes View onto the overlay stack.
type OpenOverlayMsg struct {
	View View
}

// DismissModalMsg is sent when user closes a modal (Esc).
type DismissModalMsg struct{}

// BankResponseMsg carries the outcome of one cascade or IFSC request.
type BankResponseMsg struct {
	Response bank.Response
}

// ResetCascadeMsg clears every bank selection and reloads the state list.
type ResetCascadeMsg struct{}

// CocktailsLoadedMsg carries the outcome of one cocktail search.
type CocktailsLoadedMsg struct {
	Ticket load.Ticket
	Drinks []cocktail.Drink
	Err    error
}

// SetFilterModeMsg switches the cocktail filter mode.
type SetFilterModeMsg struct {
	Mode cocktail.FilterMode
}

// DrinkHydratedMsg carries the full record for a drink opened from a filter
// result.
type DrinkHydratedMsg struct {
	ID    string
	Drink *cocktail.Drink
	Err   error
}

// MealsLoadedMsg carries the outcome of one meal search.
type MealsLoadedMsg struct {
	Ticket load.Ticket
	Meals  []meal.Meal
	Err    error
}

// ClipboardMsg reports the result of a clipboard copy.
type ClipboardMsg struct {
	Text string
	Err  error
}
