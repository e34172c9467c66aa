package ui

import (
	"sort"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// RenderKeybindHelp produces the transient help bar shown after the leader key.
// Only bindings active on screen s are listed.
func RenderKeybindHelp(h *KeyHandler, s Screen) string {
	if h == nil || !h.LeaderWaiting {
		return ""
	}
	currentSeq := h.CurrentSeq()
	hints := h.Registry.LeaderHints(currentSeq, s)
	if len(hints) == 0 {
		return ""
	}

	keys := make([]string, 0, len(hints))
	for k := range hints {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	bindings := make([]key.Binding, 0, len(keys)+1)
	for _, k := range keys {
		bindings = append(bindings, key.NewBinding(
			key.WithKeys(k),
			key.WithHelp(k, hints[k]),
		))
	}
	bindings = append(bindings, key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	))

	hm := help.New()
	hm.Styles.ShortKey = Styles.Selected
	hm.Styles.ShortDesc = Styles.Muted
	hm.Styles.ShortSeparator = Styles.Muted

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccent)).
		Padding(0, 1)
	return box.Render(Styles.Muted.Render(currentSeq) + " " + hm.ShortHelpView(bindings))
}

// footerHelp renders the always-visible hint line for a screen.
func footerHelp(bindings ...key.Binding) string {
	hm := help.New()
	hm.Styles.ShortKey = Styles.Status
	hm.Styles.ShortDesc = Styles.Muted
	hm.Styles.ShortSeparator = Styles.Muted
	return hm.ShortHelpView(bindings)
}

func hint(keys, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(keys), key.WithHelp(keys, desc))
}
