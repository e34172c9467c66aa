package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"apiviews/internal/meal"
)

const (
	defaultMealModalWidth  = 70
	defaultMealModalHeight = 14
)

// MealDetailModal shows a recipe with scrollable instructions.
// A terminal cannot play the video, so its embed URL is shown and can be
// copied with y.
type MealDetailModal struct {
	meal     meal.Meal
	viewport viewport.Model
	status   string
}

// Ensure MealDetailModal implements View.
var _ View = (*MealDetailModal)(nil)

// NewMealDetailModal creates a detail modal for ml.
func NewMealDetailModal(ml meal.Meal) *MealDetailModal {
	m := &MealDetailModal{
		meal:     ml,
		viewport: viewport.New(defaultMealModalWidth, defaultMealModalHeight),
	}
	m.refreshContent()
	return m
}

// Meal returns the record being shown.
func (m *MealDetailModal) Meal() meal.Meal { return m.meal }

// SetSize implements sizer.
func (m *MealDetailModal) SetSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	m.viewport.Width = max(width-10, 40)
	m.viewport.Height = max(height-14, 6)
	m.refreshContent()
}

func (m *MealDetailModal) refreshContent() {
	var s strings.Builder
	if len(m.meal.Ingredients) > 0 {
		s.WriteString(Styles.Section.Render("Ingredients") + "\n")
		for _, ing := range m.meal.Ingredients {
			s.WriteString("  • " + ing + "\n")
		}
		s.WriteString("\n")
	}
	s.WriteString(Styles.Section.Render("Instructions") + "\n")
	instr := strings.TrimSpace(m.meal.Instructions)
	if instr == "" {
		instr = "No instructions provided."
	}
	s.WriteString(lipgloss.NewStyle().Width(m.viewport.Width).Render(instr))
	m.viewport.SetContent(s.String())
}

// Init implements View.
func (m *MealDetailModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *MealDetailModal) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return m, dismissCmd
		case "y":
			if url, ok := m.meal.Video(); ok {
				return m, copyCmd(url)
			}
			return m, nil
		}
	case ClipboardMsg:
		if msg.Err != nil {
			m.status = Styles.Error.Render("Copy failed: " + msg.Err.Error())
		} else {
			m.status = Styles.Status.Render("Copied video link")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements View.
func (m *MealDetailModal) View() string {
	var s strings.Builder
	s.WriteString(Styles.Title.Render(m.meal.Name) + "\n")
	if meta := mealMeta(m.meal); meta != "" {
		s.WriteString(Styles.Muted.Render(meta) + "\n")
	}
	if url, ok := m.meal.Video(); ok {
		s.WriteString(Styles.Label.Render("Video: ") + url + "\n")
	}
	s.WriteString("\n" + m.viewport.View() + "\n\n")

	help := []string{"↑/↓: scroll"}
	if _, ok := m.meal.Video(); ok {
		help = append(help, "y: copy video link")
	}
	help = append(help, "Esc: close")
	s.WriteString(Styles.Muted.Render(strings.Join(help, "  ")))
	if m.status != "" {
		s.WriteString("  " + m.status)
	}
	return Styles.Box.Render(s.String())
}

func mealMeta(ml meal.Meal) string {
	var parts []string
	for _, p := range []string{ml.Category, ml.Area} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " · ")
}
