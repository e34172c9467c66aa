package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"apiviews/internal/bank"
	"apiviews/internal/cocktail"
	"apiviews/internal/meal"
)

// fakeBank is an in-memory bank.Source that records every call.
type fakeBank struct {
	mu    sync.Mutex
	calls []string

	states    []string
	districts map[string][]string
	cities    map[string][]string
	centers   map[string][]bank.Center
	branch    *bank.Branch
	err       error
}

func newFakeBank() *fakeBank {
	return &fakeBank{
		states: []string{"Karnataka", "Kerala"},
		districts: map[string][]string{
			"Karnataka": {"Bangalore", "Mysore"},
			"Kerala":    {"Ernakulam"},
		},
		cities: map[string][]string{
			"Karnataka/Bangalore": {"Bangalore Urban", "Yelahanka"},
		},
		centers: map[string][]bank.Center{
			"Karnataka/Bangalore/Bangalore Urban": {
				{Name: "MG Road", Bank: "State Bank of India", Branch: "MG Road"},
			},
		},
		branch: &bank.Branch{
			Bank:   "State Bank of India",
			Branch: "MG Road",
			IFSC:   "SBIN0000001",
			City:   "Bangalore Urban",
			State:  "Karnataka",
		},
	}
}

func (f *fakeBank) record(format string, args ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeBank) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeBank) States(context.Context) ([]string, error) {
	f.record("states")
	return f.states, f.err
}

func (f *fakeBank) Districts(_ context.Context, state string) ([]string, error) {
	f.record("districts %s", state)
	return f.districts[state], f.err
}

func (f *fakeBank) Cities(_ context.Context, state, district string) ([]string, error) {
	f.record("cities %s/%s", state, district)
	return f.cities[state+"/"+district], f.err
}

func (f *fakeBank) Centers(_ context.Context, state, district, city string) ([]bank.Center, error) {
	f.record("centers %s/%s/%s", state, district, city)
	return f.centers[state+"/"+district+"/"+city], f.err
}

func (f *fakeBank) BranchAt(_ context.Context, state, district, city, center string) (*bank.Branch, error) {
	f.record("branch %s/%s/%s/%s", state, district, city, center)
	return f.branch, f.err
}

func (f *fakeBank) ByIFSC(_ context.Context, code string) (*bank.Branch, error) {
	f.record("ifsc %s", code)
	return f.branch, f.err
}

// fakeCocktails answers searches from a fixed table keyed by "mode:text".
type fakeCocktails struct {
	mu       sync.Mutex
	searches []string
	lookups  []string

	results map[string][]cocktail.Drink
	full    map[string]cocktail.Drink
	err     error
}

func (f *fakeCocktails) Search(_ context.Context, mode cocktail.FilterMode, text string) ([]cocktail.Drink, error) {
	key := mode.String() + ":" + text
	if mode == cocktail.Random {
		key = mode.String()
	}
	f.mu.Lock()
	f.searches = append(f.searches, key)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if d, ok := f.results[key]; ok {
		return d, nil
	}
	return []cocktail.Drink{}, nil
}

func (f *fakeCocktails) Lookup(_ context.Context, id string) (*cocktail.Drink, error) {
	f.mu.Lock()
	f.lookups = append(f.lookups, id)
	f.mu.Unlock()
	d, ok := f.full[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (f *fakeCocktails) Searches() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.searches...)
}

// fakeMeals answers name searches from a fixed table.
type fakeMeals struct {
	mu      sync.Mutex
	queries []string
	results map[string][]meal.Meal
	err     error
}

func (f *fakeMeals) SearchByName(_ context.Context, name string) ([]meal.Meal, error) {
	f.mu.Lock()
	f.queries = append(f.queries, name)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if m, ok := f.results[strings.ToLower(name)]; ok {
		return m, nil
	}
	return []meal.Meal{}, nil
}

func (f *fakeMeals) Queries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

func drink(id, name, category, alcoholic string, ingredients ...string) cocktail.Drink {
	d := cocktail.Drink{ID: id, Name: name, Category: category, Alcoholic: alcoholic}
	d.SetIngredients(ingredients)
	return d
}

// drain runs cmd and every command it batches, returning the messages
// produced. Commands that block (cursor blink, spinner frames) are abandoned
// after a short wait.
func drain(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	var out []tea.Msg
	var run func(tea.Cmd)
	run = func(c tea.Cmd) {
		if c == nil {
			return
		}
		ch := make(chan tea.Msg, 1)
		go func() { ch <- c() }()
		select {
		case msg := <-ch:
			if batch, ok := msg.(tea.BatchMsg); ok {
				for _, bc := range batch {
					run(bc)
				}
				return
			}
			if msg != nil {
				out = append(out, msg)
			}
		case <-time.After(50 * time.Millisecond):
		}
	}
	run(cmd)
	return out
}

// only returns the messages of type T.
func only[T any](msgs []tea.Msg) []T {
	var out []T
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// one returns the single message of type T, failing otherwise.
func one[T any](t *testing.T, msgs []tea.Msg) T {
	t.Helper()
	got := only[T](msgs)
	if len(got) != 1 {
		var zero T
		t.Fatalf("expected exactly one %T, got %d in %v", zero, len(got), msgs)
	}
	return got[0]
}

// keyMsg creates a tea.KeyMsg for testing. Bubble Tea uses KeyType and Runes.
// KeyCtrlX.String() returns "ctrl+x", KeyEsc returns "esc", etc.
func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "space", " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+x":
		return tea.KeyMsg{Type: tea.KeyCtrlX}
	case "f1":
		return tea.KeyMsg{Type: tea.KeyF1}
	case "f2":
		return tea.KeyMsg{Type: tea.KeyF2}
	case "f3":
		return tea.KeyMsg{Type: tea.KeyF3}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}
