package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
)

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - for titles, highlights
	ColorHighlight = "205" // Magenta - for selected items, borders
	ColorDanger    = "196" // Red - for errors
	ColorMuted     = "241" // Gray - for dimmed text, hints
	ColorText      = "252" // Light gray - for normal text
	ColorDim       = "238" // Dark gray - for inactive borders
)

// Styles contains shared style definitions used across views and modals.
var Styles = struct {
	Title lipgloss.Style // Bold accent color - for main titles

	Box        lipgloss.Style // Modal box with rounded border
	Panel      lipgloss.Style // Unfocused panel
	PanelFocus lipgloss.Style // Focused panel

	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	Selected lipgloss.Style // Highlighted/selected items (bold highlight color)
	Muted    lipgloss.Style // Dimmed text (muted color)
	Normal   lipgloss.Style // Normal text (text color)
	Status   lipgloss.Style // Status indicators (accent color)
	Section  lipgloss.Style // Section headers (highlight color)
	Empty    lipgloss.Style // Empty state text (muted, italic)
	Error    lipgloss.Style // Error text (danger color)
	Label    lipgloss.Style // Field labels in detail panels
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(1, 2),
	Panel: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorDim)).
		Padding(0, 1),
	PanelFocus: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(0, 1),
	TabActive: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorHighlight)).
		Padding(0, 2),
	TabInactive: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Padding(0, 2),
	Selected: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	Section: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)),
	Empty: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Italic(true),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDanger)),
	Label: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Bold(true),
}

// NewCompactListDelegate returns a single-line delegate with zero spacing.
// Used for the location selectors.
func NewCompactListDelegate() list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	d.SetSpacing(0)
	d.ShowDescription = false
	d.Styles.SelectedTitle = Styles.Selected
	d.Styles.SelectedDesc = Styles.Selected
	d.Styles.NormalTitle = Styles.Muted
	d.Styles.NormalDesc = Styles.Muted
	return d
}

// NewCardListDelegate returns a two-line delegate for result cards.
func NewCardListDelegate() list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	d.SetSpacing(1)
	d.Styles.SelectedTitle = Styles.Selected
	d.Styles.SelectedDesc = Styles.Selected.Bold(false)
	d.Styles.NormalTitle = Styles.Normal
	d.Styles.NormalDesc = Styles.Muted
	return d
}

// newList builds a list with the app's shared chrome: no filter, no status
// bar, no built-in help or quit keys.
func newList(title string, d list.ItemDelegate, w, h int) list.Model {
	l := list.New(nil, d, w, h)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = Styles.Title
	l.Styles.NoItems = Styles.Empty
	return l
}
