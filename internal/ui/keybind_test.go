package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestKeybindRegistry_BindLookup(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("ctrl+c", tea.Quit)
	reg.Bind("C-x q", tea.Quit)
	reg.Bind("j", nil)

	if reg.Lookup("ctrl+c", ScreenBank) == nil {
		t.Error("expected ctrl+c to be bound")
	}
	if reg.Lookup("C-x q", ScreenBank) == nil {
		t.Error("expected C-x q to be bound")
	}
	if reg.Lookup("ctrl+x q", ScreenBank) == nil {
		t.Error("tea-style ctrl+x should normalize to C-x")
	}
	if reg.Lookup("unknown", ScreenBank) != nil {
		t.Error("expected unknown to be unbound")
	}
}

func TestKeybindRegistry_ScreenFilter(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.BindForScreens("C-x r", tea.Quit, "Reset", []Screen{ScreenBank})

	if reg.Lookup("C-x r", ScreenBank) == nil {
		t.Error("expected C-x r on the bank screen")
	}
	if reg.Lookup("C-x r", ScreenMeals) != nil {
		t.Error("C-x r must not apply on the meals screen")
	}
	if _, ok := reg.LeaderHints("C-x", ScreenMeals)["r"]; ok {
		t.Error("filtered binding should not appear in hints")
	}
}

func TestKeybindRegistry_LeaderHintsSubmenu(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("C-x 1", tea.Quit, "Bank IFSC")
	reg.BindWithDesc("C-x f 1", tea.Quit, "Search by Name")
	reg.BindWithDesc("C-x f 2", tea.Quit, "Search by First Letter")

	top := reg.LeaderHints("C-x", ScreenCocktails)
	if top["1"] != "Bank IFSC" {
		t.Errorf("hint for 1 = %q", top["1"])
	}
	if top["f"] != "f…" {
		t.Errorf("submenu hint for f = %q, want f…", top["f"])
	}

	sub := reg.LeaderHints("C-x f", ScreenCocktails)
	if len(sub) != 2 || sub["2"] != "Search by First Letter" {
		t.Errorf("unexpected submenu hints: %v", sub)
	}
}

func TestKeyHandler_LeaderKey(t *testing.T) {
	reg := NewKeybindRegistry()
	var executed bool
	reg.Bind("C-x 2", func() tea.Msg {
		executed = true
		return nil
	})
	h := NewKeyHandler(reg)

	consumed, cmd := h.Handle(keyMsg("ctrl+x"), ScreenBank)
	if !consumed || cmd != nil {
		t.Errorf("ctrl+x: consumed=%v cmd=%v", consumed, cmd)
	}
	if !h.LeaderWaiting {
		t.Error("expected leader waiting after ctrl+x")
	}
	if h.CurrentSeq() != "C-x" {
		t.Errorf("CurrentSeq = %q", h.CurrentSeq())
	}

	consumed, cmd = h.Handle(keyMsg("2"), ScreenBank)
	if !consumed {
		t.Errorf("2: expected consumed")
	}
	if h.LeaderWaiting {
		t.Error("leader should not be waiting after completing sequence")
	}
	if cmd == nil {
		t.Fatal("expected a command")
	}
	cmd()
	if !executed {
		t.Error("expected command to execute")
	}
}

func TestKeyHandler_MultiKeySequence(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("C-x f 3", tea.Quit)
	h := NewKeyHandler(reg)

	h.Handle(keyMsg("ctrl+x"), ScreenCocktails)
	consumed, cmd := h.Handle(keyMsg("f"), ScreenCocktails)
	if !consumed || cmd != nil || !h.LeaderWaiting {
		t.Fatalf("f: consumed=%v cmd=%v waiting=%v", consumed, cmd, h.LeaderWaiting)
	}
	_, cmd = h.Handle(keyMsg("3"), ScreenCocktails)
	if cmd == nil {
		t.Error("expected C-x f 3 to resolve")
	}
}

func TestKeyHandler_EscCancelsLeader(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("C-x q", tea.Quit)
	h := NewKeyHandler(reg)

	h.Handle(keyMsg("ctrl+x"), ScreenBank)
	if !h.LeaderWaiting {
		t.Fatal("expected leader waiting")
	}

	consumed, cmd := h.Handle(keyMsg("esc"), ScreenBank)
	if !consumed || cmd != nil {
		t.Errorf("esc: consumed=%v cmd=%v", consumed, cmd)
	}
	if h.LeaderWaiting {
		t.Error("esc should cancel leader mode")
	}
}

func TestKeyHandler_EscPassesThroughOutsideLeader(t *testing.T) {
	h := NewKeyHandler(NewKeybindRegistry())
	if consumed, _ := h.Handle(keyMsg("esc"), ScreenBank); consumed {
		t.Error("esc outside leader mode belongs to the views")
	}
}

func TestKeyHandler_UnknownSequenceIsSwallowed(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("C-x q", tea.Quit)
	h := NewKeyHandler(reg)

	h.Handle(keyMsg("ctrl+x"), ScreenBank)
	consumed, cmd := h.Handle(keyMsg("z"), ScreenBank)
	if !consumed || cmd != nil {
		t.Errorf("z: consumed=%v cmd=%v", consumed, cmd)
	}
	if h.LeaderWaiting {
		t.Error("unknown sequence should leave leader mode")
	}
}

func TestKeyHandler_SingleKey(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("f1", tea.Quit)
	h := NewKeyHandler(reg)

	consumed, cmd := h.Handle(keyMsg("f1"), ScreenMeals)
	if !consumed || cmd == nil {
		t.Errorf("f1: consumed=%v cmd=%v", consumed, cmd)
	}
}

func TestKeyHandler_UnboundFallsThrough(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("f1", tea.Quit)
	h := NewKeyHandler(reg)

	consumed, _ := h.Handle(keyMsg("j"), ScreenBank)
	if consumed {
		t.Error("unbound j should not be consumed")
	}
}

func TestRenderKeybindHelp(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("C-x 1", tea.Quit, "Bank IFSC")
	h := NewKeyHandler(reg)

	if got := RenderKeybindHelp(h, ScreenBank); got != "" {
		t.Errorf("help should be hidden outside leader mode, got %q", got)
	}
	h.Handle(keyMsg("ctrl+x"), ScreenBank)
	got := RenderKeybindHelp(h, ScreenBank)
	for _, want := range []string{"C-x", "Bank IFSC", "cancel"} {
		if !strings.Contains(got, want) {
			t.Errorf("help missing %q:\n%s", want, got)
		}
	}
}
