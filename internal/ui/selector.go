package ui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// option implements list.Item for a selector entry.
type option string

func (o option) FilterValue() string { return string(o) }
func (o option) Title() string       { return string(o) }
func (o option) Description() string { return "" }

// Selector is a titled single-choice list. It holds the highlighted row
// (cursor) separately from the chosen value so moving the cursor never
// triggers a fetch; only Enter commits a choice.
type Selector struct {
	title   string
	list    list.Model
	options []string
	chosen  string
	pending bool
}

// NewSelector creates an empty selector.
func NewSelector(title string) *Selector {
	return &Selector{
		title: title,
		list:  newList(title, NewCompactListDelegate(), 24, 10),
	}
}

// SetOptions replaces the option list and moves the cursor to the top.
func (s *Selector) SetOptions(opts []string) tea.Cmd {
	s.options = opts
	items := make([]list.Item, len(opts))
	for i, o := range opts {
		items[i] = option(o)
	}
	cmd := s.list.SetItems(items)
	s.list.Select(0)
	return cmd
}

// Options returns the current options.
func (s *Selector) Options() []string { return s.options }

// SetChosen records the committed value.
func (s *Selector) SetChosen(v string) {
	s.chosen = v
	s.refreshTitle()
}

// Chosen returns the committed value, or "".
func (s *Selector) Chosen() string { return s.chosen }

// SetPending marks the option list as loading.
func (s *Selector) SetPending(p bool) {
	s.pending = p
	s.refreshTitle()
}

func (s *Selector) refreshTitle() {
	t := s.title
	if s.chosen != "" {
		t += ": " + s.chosen
	}
	if s.pending {
		t += " …"
	}
	s.list.Title = t
}

// Highlighted returns the option under the cursor.
func (s *Selector) Highlighted() (string, int, bool) {
	i := s.list.Index()
	if i < 0 || i >= len(s.options) {
		return "", -1, false
	}
	return s.options[i], i, true
}

// SetSize resizes the list.
func (s *Selector) SetSize(w, h int) {
	s.list.SetSize(w, h)
}

// Update forwards navigation keys to the list.
func (s *Selector) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return cmd
}

// View renders the list.
func (s *Selector) View() string {
	return s.list.View()
}
