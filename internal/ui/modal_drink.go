package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"apiviews/internal/cocktail"
)

// DrinkDetailModal shows one drink. Drinks opened from a filter result
// arrive partial and are filled in by a DrinkHydratedMsg.
type DrinkDetailModal struct {
	drink     cocktail.Drink
	hydrating bool
	err       error
	width     int
}

// Ensure DrinkDetailModal implements View.
var _ View = (*DrinkDetailModal)(nil)

// NewDrinkDetailModal creates a detail modal for d.
func NewDrinkDetailModal(d cocktail.Drink) *DrinkDetailModal {
	return &DrinkDetailModal{
		drink:     d,
		hydrating: d.Partial(),
		width:     60,
	}
}

// Drink returns the record being shown.
func (m *DrinkDetailModal) Drink() cocktail.Drink { return m.drink }

// SetSize implements sizer.
func (m *DrinkDetailModal) SetSize(width, _ int) {
	if width > 20 {
		m.width = min(width-8, 80)
	}
}

// Init implements View.
func (m *DrinkDetailModal) Init() tea.Cmd { return nil }

// Update implements View.
func (m *DrinkDetailModal) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case DrinkHydratedMsg:
		if msg.ID != m.drink.ID {
			return m, nil
		}
		m.hydrating = false
		m.err = msg.Err
		if msg.Err == nil && msg.Drink != nil {
			m.drink = *msg.Drink
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "enter", "q":
			return m, dismissCmd
		}
	}
	return m, nil
}

// View implements View.
func (m *DrinkDetailModal) View() string {
	d := &m.drink
	wrap := lipgloss.NewStyle().Width(m.width)

	var s strings.Builder
	s.WriteString(Styles.Title.Render(d.Name) + "\n\n")
	s.WriteString(Styles.Label.Render("Category: ") + d.CategoryOrUnknown() + "\n")
	s.WriteString(Styles.Label.Render("Type:     ") + d.AlcoholicOrUnknown() + "\n")
	if d.Glass != "" {
		s.WriteString(Styles.Label.Render("Glass:    ") + d.Glass + "\n")
	}

	s.WriteString("\n" + Styles.Section.Render("Ingredients") + "\n")
	switch ings := d.Ingredients(); {
	case m.hydrating:
		s.WriteString(Styles.Muted.Render(loadingText) + "\n")
	case m.err != nil:
		s.WriteString(Styles.Error.Render("Could not load details.") + "\n")
	case len(ings) == 0:
		s.WriteString(Styles.Empty.Render("None listed") + "\n")
	default:
		for _, ing := range ings {
			s.WriteString("  • " + ing + "\n")
		}
	}

	if d.Method != "" {
		s.WriteString("\n" + Styles.Section.Render("Method") + "\n")
		s.WriteString(wrap.Render(d.Method) + "\n")
	}
	s.WriteString("\n" + Styles.Muted.Render("Esc: close"))
	return Styles.Box.Render(s.String())
}
