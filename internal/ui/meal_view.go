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

	"apiviews/internal/load"
	"apiviews/internal/meal"
)

const (
	mealIdleText  = "Start by searching for a delicious meal."
	mealEmptyText = "No meals found. Try searching for something else!"
)

type mealItem struct {
	meal.Meal
}

func (m mealItem) FilterValue() string { return m.Name }
func (m mealItem) Title() string       { return m.Name }
func (m mealItem) Description() string {
	desc := mealMeta(m.Meal)
	if _, ok := m.Video(); ok {
		if desc != "" {
			desc += " · "
		}
		desc += "▶ video"
	}
	return desc
}

// MealView searches meals by name on every keystroke.
// Failures are logged and leave the previous results on screen.
type MealView struct {
	src     MealSource
	timeout time.Duration
	log     *slog.Logger

	input    textinput.Model
	state    *load.State[meal.Meal]
	results  list.Model
	activity activity

	width, height int
}

// Ensure MealView implements View.
var _ View = (*MealView)(nil)

// NewMealView creates the meal screen.
func NewMealView(src MealSource, timeout time.Duration, log *slog.Logger) *MealView {
	ti := textinput.New()
	ti.Placeholder = "Search for a meal..."
	ti.Width = 40
	ti.Focus()
	return &MealView{
		src:      src,
		timeout:  timeout,
		log:      log,
		input:    ti,
		state:    load.New[meal.Meal](load.Silent),
		results:  newList("Meals", NewCardListDelegate(), 60, 16),
		activity: newActivity(),
	}
}

// Init implements View.
func (m *MealView) Init() tea.Cmd {
	return textinput.Blink
}

// Phase returns the lifecycle phase of the latest search.
func (m *MealView) Phase() load.Phase { return m.state.Phase() }

// Meals returns the meals of the last successful search.
func (m *MealView) Meals() []meal.Meal { return m.state.Items() }

// SetSize implements sizer.
func (m *MealView) SetSize(width, height int) {
	m.width, m.height = width, height
	h := height - 10
	if h < 4 {
		h = 4
	}
	m.results.SetSize(width-2, h)
}

func (m *MealView) refetch() tea.Cmd {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		m.state.Reset()
		return nil
	}
	tk := m.state.Begin()
	return tea.Batch(searchMealsCmd(m.src, m.timeout, tk, text), m.activity.Start())
}

// Update implements View.
func (m *MealView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	case spinner.TickMsg:
		return m, m.activity.Update(msg, m.state.Loading())
	case MealsLoadedMsg:
		return m, m.resolve(msg)
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.results, cmd = m.results.Update(msg)
			return m, cmd
		case "enter":
			return m, m.openSelected()
		}
		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != before {
			return m, tea.Batch(cmd, m.refetch())
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *MealView) resolve(msg MealsLoadedMsg) tea.Cmd {
	if !m.state.Resolve(msg.Ticket, msg.Meals, msg.Err) {
		m.log.Debug("dropped stale meal result")
		return nil
	}
	if msg.Err != nil {
		m.log.Error("meal search failed", "query", m.input.Value(), "err", msg.Err)
		return nil
	}
	items := make([]list.Item, len(msg.Meals))
	for i, ml := range msg.Meals {
		items[i] = mealItem{Meal: ml}
	}
	m.results.Title = fmt.Sprintf("Meals (%d)", len(items))
	cmd := m.results.SetItems(items)
	m.results.Select(0)
	return cmd
}

func (m *MealView) openSelected() tea.Cmd {
	if len(m.state.Items()) == 0 {
		return nil
	}
	it, ok := m.results.SelectedItem().(mealItem)
	if !ok {
		return nil
	}
	modal := NewMealDetailModal(it.Meal)
	modal.SetSize(m.width, m.height)
	return openOverlay(modal)
}

// View implements View.
func (m *MealView) View() string {
	var s strings.Builder
	s.WriteString(Styles.Title.Render("Meal Finder") + "\n\n")
	s.WriteString(Styles.PanelFocus.Render(m.input.View()))
	if m.state.Loading() {
		s.WriteString(" " + m.activity.View())
	}
	s.WriteString("\n")

	switch {
	case len(m.state.Items()) > 0 && m.state.Phase() != load.Idle:
		s.WriteString(m.results.View())
	case strings.TrimSpace(m.input.Value()) == "":
		s.WriteString(Styles.Empty.Render(mealIdleText))
	case m.state.Loading():
		s.WriteString(Styles.Status.Render(loadingText))
	case m.state.Phase() == load.Empty:
		s.WriteString(Styles.Empty.Render(mealEmptyText))
	}
	s.WriteString("\n\n" + footerHelp(
		hint("↑/↓", "move"),
		hint("enter", "recipe"),
		hint("C-x", "menu"),
	))
	return s.String()
}
