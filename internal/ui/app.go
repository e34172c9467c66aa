package ui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"apiviews/internal/bank"
	"apiviews/internal/cocktail"
	"apiviews/internal/logging"
)

// tabBarHeight is the number of rows above the screen body.
const tabBarHeight = 2

// Deps are the API sources and settings shared by every screen.
type Deps struct {
	Bank      bank.Source
	Cocktails CocktailSource
	Meals     MealSource
	Timeout   time.Duration
	Logger    *slog.Logger
}

// AppModel is the root model. It owns one view per screen and shows one
// at a time under a tab bar; modals stack on top.
type AppModel struct {
	Screen     Screen
	Bank       *BankView
	Cocktails  *CocktailView
	Meals      *MealView
	Overlays   OverlayStack
	KeyHandler *KeyHandler

	log           *slog.Logger
	width, height int
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel creates the root application model showing start.
func NewAppModel(deps Deps, start Screen) *AppModel {
	log := deps.Logger
	if log == nil {
		log = logging.Discard()
	}
	return &AppModel{
		Screen:     start,
		Bank:       NewBankView(deps.Bank, deps.Timeout, log.With("screen", ScreenBank.String())),
		Cocktails:  NewCocktailView(deps.Cocktails, deps.Timeout, log.With("screen", ScreenCocktails.String())),
		Meals:      NewMealView(deps.Meals, deps.Timeout, log.With("screen", ScreenMeals.String())),
		KeyHandler: NewKeyHandler(newRegistry()),
		log:        log,
	}
}

func newRegistry() *KeybindRegistry {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("ctrl+c", tea.Quit, "Quit")
	reg.BindWithDesc("C-x q", tea.Quit, "Quit")
	for i, s := range Screens {
		sw := func() tea.Msg { return SwitchScreenMsg{Screen: s} }
		reg.BindWithDesc(fmt.Sprintf("C-x %d", i+1), sw, s.Title())
		reg.Bind(fmt.Sprintf("f%d", i+1), sw)
	}
	reg.BindWithDesc("C-x n", func() tea.Msg { return CycleScreenMsg{Delta: 1} }, "Next screen")
	reg.BindWithDesc("C-x p", func() tea.Msg { return CycleScreenMsg{Delta: -1} }, "Previous screen")

	reg.BindForScreens("C-x r", func() tea.Msg { return ResetCascadeMsg{} }, "Reset location", []Screen{ScreenBank})
	for i, mode := range cocktail.Modes {
		reg.BindForScreens(fmt.Sprintf("C-x f %d", i+1),
			func() tea.Msg { return SetFilterModeMsg{Mode: mode} },
			mode.Label(), []Screen{ScreenCocktails})
	}
	return reg
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// Init implements tea.Model. Every screen starts loading at once so
// switching tabs never waits on a first fetch.
func (a *appModelAdapter) Init() tea.Cmd {
	return tea.Batch(a.Bank.Init(), a.Cocktails.Init(), a.Meals.Init())
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		inner := tea.WindowSizeMsg{Width: msg.Width, Height: max(msg.Height-tabBarHeight, 0)}
		var cmds []tea.Cmd
		for _, v := range a.screens() {
			_, cmd := v.Update(inner)
			cmds = append(cmds, cmd)
		}
		a.Overlays.Resize(inner.Width, inner.Height)
		return a, tea.Batch(cmds...)

	case SwitchScreenMsg:
		a.log.Debug("switch screen", "from", a.Screen, "to", msg.Screen)
		a.Screen = msg.Screen
		return a, nil
	case CycleScreenMsg:
		if msg.Delta < 0 {
			a.Screen = a.Screen.Prev()
		} else {
			a.Screen = a.Screen.Next()
		}
		return a, nil

	case OpenOverlayMsg:
		if sz, ok := msg.View.(sizer); ok && a.width > 0 {
			sz.SetSize(a.width, max(a.height-tabBarHeight, 0))
		}
		a.Overlays.Push(Overlay{View: msg.View})
		return a, msg.View.Init()
	case DismissModalMsg:
		a.Overlays.Pop()
		return a, nil

	case BankResponseMsg, ResetCascadeMsg:
		return a, a.updateScreen(ScreenBank, msg)
	case CocktailsLoadedMsg, SetFilterModeMsg:
		return a, a.updateScreen(ScreenCocktails, msg)
	case MealsLoadedMsg:
		return a, a.updateScreen(ScreenMeals, msg)
	case DrinkHydratedMsg, ClipboardMsg:
		cmd, _ := a.Overlays.UpdateTop(msg)
		return a, cmd

	case spinner.TickMsg:
		var cmds []tea.Cmd
		for _, v := range a.screens() {
			_, cmd := v.Update(msg)
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case tea.KeyMsg:
		if a.Overlays.Len() > 0 {
			if msg.String() == "ctrl+c" {
				return a, tea.Quit
			}
			cmd, _ := a.Overlays.UpdateTop(msg)
			return a, cmd
		}
		if a.KeyHandler != nil {
			if consumed, cmd := a.KeyHandler.Handle(msg, a.Screen); consumed {
				return a, cmd
			}
		}
		return a, a.updateScreen(a.Screen, msg)
	}

	if cmd, ok := a.Overlays.UpdateTop(msg); ok {
		return a, cmd
	}
	return a, a.updateScreen(a.Screen, msg)
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	var b strings.Builder
	b.WriteString(a.renderTabs() + "\n\n")

	if top, ok := a.Overlays.Peek(); ok {
		body := top.View.View()
		if a.width > 0 && a.height > tabBarHeight {
			body = lipgloss.Place(a.width, a.height-tabBarHeight, lipgloss.Center, lipgloss.Center, body)
		}
		b.WriteString(body)
	} else {
		b.WriteString(a.view(a.Screen).View())
	}

	if help := RenderKeybindHelp(a.KeyHandler, a.Screen); help != "" {
		b.WriteString("\n" + help)
	}
	return b.String()
}

func (a *AppModel) renderTabs() string {
	tabs := make([]string, len(Screens))
	for i, s := range Screens {
		label := fmt.Sprintf("%d %s", i+1, s.Title())
		if s == a.Screen {
			tabs[i] = Styles.TabActive.Render(label)
		} else {
			tabs[i] = Styles.TabInactive.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (a *AppModel) screens() []View {
	return []View{a.Bank, a.Cocktails, a.Meals}
}

func (a *AppModel) view(s Screen) View {
	switch s {
	case ScreenCocktails:
		return a.Cocktails
	case ScreenMeals:
		return a.Meals
	default:
		return a.Bank
	}
}

// updateScreen routes msg to the view for s. Screen views are pointers
// that update in place.
func (a *AppModel) updateScreen(s Screen, msg tea.Msg) tea.Cmd {
	_, cmd := a.view(s).Update(msg)
	return cmd
}
