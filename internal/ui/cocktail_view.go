package ui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"apiviews/internal/cocktail"
	"apiviews/internal/load"
)

const (
	cocktailFailedText = "Failed to fetch cocktails. Please try again."
	cocktailEmptyText  = "No cocktails found."
	loadingText        = "Loading…"
)

// drinkItem implements list.DefaultItem for a result card.
type drinkItem struct {
	cocktail.Drink
}

func (d drinkItem) FilterValue() string { return d.Name }
func (d drinkItem) Title() string       { return d.Name }
func (d drinkItem) Description() string {
	return d.CategoryOrUnknown() + " · " + d.AlcoholicOrUnknown()
}

// CocktailView searches the cocktail API with one of six filter modes.
type CocktailView struct {
	src     CocktailSource
	timeout time.Duration
	log     *slog.Logger

	mode     cocktail.FilterMode
	input    textinput.Model
	state    *load.State[cocktail.Drink]
	results  list.Model
	activity activity

	width, height int
}

// Ensure CocktailView implements View.
var _ View = (*CocktailView)(nil)

// NewCocktailView creates the cocktail screen in name mode.
func NewCocktailView(src CocktailSource, timeout time.Duration, log *slog.Logger) *CocktailView {
	ti := textinput.New()
	ti.Placeholder = "Search cocktails"
	ti.Width = 40
	ti.Focus()
	return &CocktailView{
		src:      src,
		timeout:  timeout,
		log:      log,
		mode:     cocktail.ByName,
		input:    ti,
		state:    load.New[cocktail.Drink](load.Surface),
		results:  newList("Cocktails", NewCardListDelegate(), 60, 16),
		activity: newActivity(),
	}
}

// Init implements View.
func (c *CocktailView) Init() tea.Cmd {
	return textinput.Blink
}

// Mode returns the active filter mode.
func (c *CocktailView) Mode() cocktail.FilterMode { return c.mode }

// Phase returns the lifecycle phase of the latest search.
func (c *CocktailView) Phase() load.Phase { return c.state.Phase() }

// Drinks returns the drinks of the last successful search.
func (c *CocktailView) Drinks() []cocktail.Drink { return c.state.Items() }

// SetSize implements sizer.
func (c *CocktailView) SetSize(width, height int) {
	c.width, c.height = width, height
	h := height - 12
	if h < 4 {
		h = 4
	}
	c.results.SetSize(width-2, h)
}

// SetMode switches the filter mode and refetches when the new mode allows.
func (c *CocktailView) SetMode(m cocktail.FilterMode) tea.Cmd {
	c.mode = m
	if m.TakesText() {
		c.input.Focus()
	} else {
		c.input.Blur()
	}
	return c.refetch()
}

// refetch starts a search for the current (mode, text), superseding any
// search in flight. A blank text in a text mode returns to idle.
func (c *CocktailView) refetch() tea.Cmd {
	text := strings.TrimSpace(c.input.Value())
	if !cocktail.ShouldFetch(c.mode, text) {
		c.state.Reset()
		return nil
	}
	tk := c.state.Begin()
	c.log.Debug("cocktail search", "mode", c.mode, "text", text)
	return tea.Batch(searchCocktailsCmd(c.src, c.timeout, tk, c.mode, text), c.activity.Start())
}

// Update implements View.
func (c *CocktailView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.SetSize(msg.Width, msg.Height)
		return c, nil
	case spinner.TickMsg:
		return c, c.activity.Update(msg, c.state.Loading())
	case SetFilterModeMsg:
		return c, c.SetMode(msg.Mode)
	case CocktailsLoadedMsg:
		return c, c.resolve(msg)
	case tea.KeyMsg:
		return c, c.handleKey(msg)
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

func (c *CocktailView) resolve(msg CocktailsLoadedMsg) tea.Cmd {
	if !c.state.Resolve(msg.Ticket, msg.Drinks, msg.Err) {
		c.log.Debug("dropped stale cocktail result")
		return nil
	}
	if msg.Err != nil {
		c.log.Error("cocktail search failed", "mode", c.mode, "err", msg.Err)
		return nil
	}
	items := make([]list.Item, len(msg.Drinks))
	for i, d := range msg.Drinks {
		items[i] = drinkItem{Drink: d}
	}
	c.results.Title = fmt.Sprintf("Cocktails (%d)", len(items))
	cmd := c.results.SetItems(items)
	c.results.Select(0)
	return cmd
}

func (c *CocktailView) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab":
		return c.SetMode(c.mode.Next())
	case "shift+tab":
		return c.SetMode(c.mode.Prev())
	case "up", "down", "pgup", "pgdown":
		var cmd tea.Cmd
		c.results, cmd = c.results.Update(msg)
		return cmd
	case "enter":
		return c.openSelected()
	}

	if !c.mode.TakesText() {
		return nil
	}
	before := c.input.Value()
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	if c.input.Value() != before {
		return tea.Batch(cmd, c.refetch())
	}
	return cmd
}

func (c *CocktailView) openSelected() tea.Cmd {
	if c.state.Phase() != load.Populated {
		return nil
	}
	it, ok := c.results.SelectedItem().(drinkItem)
	if !ok {
		return nil
	}
	modal := NewDrinkDetailModal(it.Drink)
	modal.SetSize(c.width, c.height)
	cmds := []tea.Cmd{openOverlay(modal)}
	if it.Partial() {
		cmds = append(cmds, lookupDrinkCmd(c.src, c.timeout, it.ID))
	}
	return tea.Batch(cmds...)
}

// View implements View.
func (c *CocktailView) View() string {
	var s strings.Builder
	s.WriteString(Styles.Title.Render("Cocktail Explorer") + "\n\n")
	s.WriteString(Styles.Muted.Render("Filter: ") + Styles.Selected.Render("◀ "+c.mode.Label()+" ▶") + "\n")
	if c.mode.TakesText() {
		s.WriteString(Styles.PanelFocus.Render(c.input.View()) + "\n")
	} else {
		s.WriteString(Styles.Panel.Render(Styles.Muted.Render("Search disabled in random mode")) + "\n")
	}

	switch c.state.Phase() {
	case load.Idle:
		s.WriteString(Styles.Empty.Render("Type to search, or press tab to change the filter."))
	case load.Loading:
		s.WriteString(c.activity.View() + " " + Styles.Status.Render(loadingText))
	case load.Failed:
		s.WriteString(Styles.Error.Render(cocktailFailedText))
	case load.Empty:
		s.WriteString(Styles.Empty.Render(cocktailEmptyText))
	case load.Populated:
		s.WriteString(c.results.View())
	}
	s.WriteString("\n\n" + footerHelp(
		hint("tab", "filter"),
		hint("↑/↓", "move"),
		hint("enter", "details"),
		hint("C-x", "menu"),
	))
	return s.String()
}
