package ui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"apiviews/internal/bank"
	"apiviews/internal/cocktail"
	"apiviews/internal/load"
	"apiviews/internal/meal"
)

// CocktailSource is what the cocktail screen needs from the cocktail API.
type CocktailSource interface {
	Search(ctx context.Context, mode cocktail.FilterMode, text string) ([]cocktail.Drink, error)
	Lookup(ctx context.Context, id string) (*cocktail.Drink, error)
}

// MealSource is what the meal screen needs from the meal API.
type MealSource interface {
	SearchByName(ctx context.Context, name string) ([]meal.Meal, error)
}

var (
	_ CocktailSource = (*cocktail.Client)(nil)
	_ MealSource     = (*meal.Client)(nil)
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// requestContext bounds one fetch. A non-positive timeout means no deadline.
func requestContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), timeout)
}

// bankCmd executes a cascade or IFSC request off the update loop.
func bankCmd(src bank.Source, timeout time.Duration, req bank.Request) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		return BankResponseMsg{Response: bank.Execute(ctx, src, req)}
	}
}

// searchCocktailsCmd runs one cocktail search tagged with tk.
func searchCocktailsCmd(src CocktailSource, timeout time.Duration, tk load.Ticket, mode cocktail.FilterMode, text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		drinks, err := src.Search(ctx, mode, text)
		return CocktailsLoadedMsg{Ticket: tk, Drinks: drinks, Err: err}
	}
}

// lookupDrinkCmd fetches the full record for a partial drink.
func lookupDrinkCmd(src CocktailSource, timeout time.Duration, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		d, err := src.Lookup(ctx, id)
		return DrinkHydratedMsg{ID: id, Drink: d, Err: err}
	}
}

// searchMealsCmd runs one meal search tagged with tk.
func searchMealsCmd(src MealSource, timeout time.Duration, tk load.Ticket, text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		meals, err := src.SearchByName(ctx, text)
		return MealsLoadedMsg{Ticket: tk, Meals: meals, Err: err}
	}
}

// copyCmd writes text to the system clipboard.
func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return ClipboardMsg{Text: text, Err: writeClipboard(text)}
	}
}

func dismissCmd() tea.Msg { return DismissModalMsg{} }

func openOverlay(v View) tea.Cmd {
	return func() tea.Msg { return OpenOverlayMsg{View: v} }
}
