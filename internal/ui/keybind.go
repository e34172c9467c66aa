package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// KeybindRegistry maps key sequences to commands.
// Sequences use emacs-style notation: "C-x" for ctrl+x, "C-x 1" for C-x then 1.
// Single keys: "f1", "ctrl+c".
type KeybindRegistry struct {
	bindings     map[string]tea.Cmd
	descriptions map[string]string
	screenFilter map[string][]Screen // nil/empty = applies to all screens
}

// NewKeybindRegistry creates an empty registry.
func NewKeybindRegistry() *KeybindRegistry {
	return &KeybindRegistry{
		bindings:     make(map[string]tea.Cmd),
		descriptions: make(map[string]string),
		screenFilter: make(map[string][]Screen),
	}
}

// Bind registers a key sequence to a command.
// Overwrites any existing binding for the sequence.
func (r *KeybindRegistry) Bind(seq string, cmd tea.Cmd) {
	r.BindWithDesc(seq, cmd, "")
}

// BindWithDesc registers a key sequence with a description for the help bar.
// The binding applies on every screen.
func (r *KeybindRegistry) BindWithDesc(seq string, cmd tea.Cmd, desc string) {
	r.BindForScreens(seq, cmd, desc, nil)
}

// BindForScreens registers a key sequence that is only active on the given
// screens. If screens is empty, the binding applies everywhere.
func (r *KeybindRegistry) BindForScreens(seq string, cmd tea.Cmd, desc string, screens []Screen) {
	n := normalizeSeq(seq)
	r.bindings[n] = cmd
	if desc != "" {
		r.descriptions[n] = desc
	}
	if len(screens) > 0 {
		r.screenFilter[n] = screens
	}
}

// Lookup returns the command for a key sequence on screen s, or nil if the
// sequence is unbound or filtered out.
func (r *KeybindRegistry) Lookup(seq string, s Screen) tea.Cmd {
	n := normalizeSeq(seq)
	if !r.appliesTo(n, s) {
		return nil
	}
	return r.bindings[n]
}

// HasPrefix returns true if any binding starts with seq and a space (i.e. more keys follow).
func (r *KeybindRegistry) HasPrefix(seq string) bool {
	prefix := normalizeSeq(seq) + " "
	for k := range r.bindings {
		if strings.HasPrefix(k, prefix) {
			return true
		}
	}
	return false
}

// LeaderHints returns the next keys available after currentSeq on screen s,
// mapped to their descriptions. Keys that open a further level are shown
// as "key…".
func (r *KeybindRegistry) LeaderHints(currentSeq string, s Screen) map[string]string {
	out := make(map[string]string)
	prefix := normalizeSeq(currentSeq) + " "
	for seq, cmd := range r.bindings {
		if cmd == nil || !strings.HasPrefix(seq, prefix) || !r.appliesTo(seq, s) {
			continue
		}
		rest := strings.TrimPrefix(seq, prefix)
		key := rest
		if parts := strings.Fields(rest); len(parts) > 0 {
			key = parts[0]
		}
		if r.HasPrefix(prefix + key) {
			out[key] = key + "…"
			continue
		}
		if d, ok := r.descriptions[seq]; ok && d != "" {
			out[key] = d
		} else {
			out[key] = seq
		}
	}
	return out
}

func (r *KeybindRegistry) appliesTo(seq string, s Screen) bool {
	screens, ok := r.screenFilter[seq]
	if !ok || len(screens) == 0 {
		return true
	}
	for _, m := range screens {
		if m == s {
			return true
		}
	}
	return false
}

// normalizeSeq converts tea key strings to the canonical format.
// "ctrl+x 1" -> "C-x 1".
func normalizeSeq(seq string) string {
	parts := strings.Fields(seq)
	for i, p := range parts {
		parts[i] = keyToSeqPart(p)
	}
	return strings.Join(parts, " ")
}

// keyToSeqPart converts a tea key string to a sequence part.
// Only ctrl chords inside a sequence are abbreviated; a lone "ctrl+c"
// stays as Bubble Tea reports it.
func keyToSeqPart(s string) string {
	if s == "ctrl+x" {
		return "C-x"
	}
	return s
}

// KeyHandler manages leader key state and dispatches to the registry.
type KeyHandler struct {
	Registry      *KeybindRegistry
	LeaderKey     string   // "ctrl+x" (tea.KeyMsg.String() format)
	LeaderSeq     string   // "C-x"
	LeaderWaiting bool     // true when waiting for key after leader
	Buffer        []string // accumulated sequence in leader mode
}

// NewKeyHandler creates a handler with ctrl+x as leader.
// Space cannot lead here because every screen has a text input.
func NewKeyHandler(reg *KeybindRegistry) *KeyHandler {
	return &KeyHandler{
		Registry:  reg,
		LeaderKey: "ctrl+x",
		LeaderSeq: "C-x",
	}
}

// Handle processes a KeyMsg on screen s. Returns (consumed, cmd).
// If consumed is true the key must not reach the views.
func (h *KeyHandler) Handle(msg tea.KeyMsg, s Screen) (consumed bool, cmd tea.Cmd) {
	key := msg.String()

	if key == "esc" {
		if h.LeaderWaiting {
			h.reset()
			return true, nil
		}
		return false, nil
	}

	if key == h.LeaderKey && !h.LeaderWaiting {
		h.LeaderWaiting = true
		h.Buffer = []string{h.LeaderSeq}
		return true, nil
	}

	if h.LeaderWaiting {
		h.Buffer = append(h.Buffer, keyToSeqPart(key))
		seq := strings.Join(h.Buffer, " ")
		if c := h.Registry.Lookup(seq, s); c != nil {
			h.reset()
			return true, c
		}
		if h.Registry.HasPrefix(seq) {
			return true, nil
		}
		// Unknown sequence: swallow the key and leave leader mode.
		h.reset()
		return true, nil
	}

	if c := h.Registry.Lookup(key, s); c != nil {
		return true, c
	}
	return false, nil
}

// CurrentSeq returns the buffered leader sequence, or "" outside leader mode.
func (h *KeyHandler) CurrentSeq() string {
	return strings.Join(h.Buffer, " ")
}

func (h *KeyHandler) reset() {
	h.LeaderWaiting = false
	h.Buffer = nil
}
