package ui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"apiviews/internal/bank"
	"apiviews/internal/ui/textutil"
)

// Focus IDs on the bank screen, in tab order.
const (
	focusIFSC     = "ifsc"
	focusState    = "state"
	focusDistrict = "district"
	focusCity     = "city"
	focusCenter   = "center"
)

// BankView looks up a branch either by IFSC code or by walking
// state → district → city → center.
type BankView struct {
	src     bank.Source
	timeout time.Duration
	log     *slog.Logger

	cascade *bank.Cascade
	ifsc    textinput.Model

	states    *Selector
	districts *Selector
	cities    *Selector
	centers   *Selector

	focus    *FocusManager
	activity activity
	width    int
}

// Ensure BankView implements View.
var _ View = (*BankView)(nil)

// NewBankView creates the bank screen. The state list is requested by Init.
func NewBankView(src bank.Source, timeout time.Duration, log *slog.Logger) *BankView {
	ti := textinput.New()
	ti.Placeholder = "Enter IFSC code"
	ti.CharLimit = 11
	ti.Width = 20
	ti.Focus()

	b := &BankView{
		src:       src,
		timeout:   timeout,
		log:       log,
		cascade:   bank.NewCascade(),
		ifsc:      ti,
		states:    NewSelector("State"),
		districts: NewSelector("District"),
		cities:    NewSelector("City"),
		centers:   NewSelector("Center"),
		focus:     NewFocusManager(focusIFSC, focusState, focusDistrict, focusCity, focusCenter),
		activity:  newActivity(),
	}
	b.focus.OnChange = func(from, to string) {
		if to == focusIFSC {
			b.ifsc.Focus()
		} else {
			b.ifsc.Blur()
		}
	}
	return b
}

// Init implements View.
func (b *BankView) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, b.issue(b.cascade.LoadStates()))
}

// Cascade exposes the resolver state.
func (b *BankView) Cascade() *bank.Cascade { return b.cascade }

// Focused returns the focused panel ID.
func (b *BankView) Focused() string { return b.focus.Current }

// SetSize implements sizer.
func (b *BankView) SetSize(width, height int) {
	b.width = width
	col := (width - 6) / 3
	if col < 16 {
		col = 16
	}
	h := (height - 12) / 2
	if h < 5 {
		h = 5
	}
	b.states.SetSize(col, h)
	b.districts.SetSize(col, h)
	b.cities.SetSize(col, h)
	b.centers.SetSize(col*2, h)
}

func (b *BankView) issue(req bank.Request) tea.Cmd {
	b.syncPending()
	return tea.Batch(bankCmd(b.src, b.timeout, req), b.activity.Start())
}

func (b *BankView) busy() bool {
	for _, l := range []bank.Level{bank.LevelStates, bank.LevelDistricts, bank.LevelCities, bank.LevelCenters, bank.LevelBranch} {
		if b.cascade.Pending(l) {
			return true
		}
	}
	return false
}

func (b *BankView) syncPending() {
	b.states.SetPending(b.cascade.Pending(bank.LevelStates))
	b.districts.SetPending(b.cascade.Pending(bank.LevelDistricts))
	b.cities.SetPending(b.cascade.Pending(bank.LevelCities))
	b.centers.SetPending(b.cascade.Pending(bank.LevelCenters))
}

// clearBelow empties every selector beneath sel to match the cascade.
func (b *BankView) clearBelow(sel *Selector) {
	below := map[*Selector][]*Selector{
		b.states:    {b.districts, b.cities, b.centers},
		b.districts: {b.cities, b.centers},
		b.cities:    {b.centers},
	}
	for _, s := range below[sel] {
		s.SetOptions(nil)
		s.SetChosen("")
	}
}

// Update implements View.
func (b *BankView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.SetSize(msg.Width, msg.Height)
		return b, nil
	case spinner.TickMsg:
		return b, b.activity.Update(msg, b.busy())
	case BankResponseMsg:
		return b, b.apply(msg.Response)
	case ResetCascadeMsg:
		b.cascade.Reset()
		b.states.SetOptions(nil)
		b.states.SetChosen("")
		b.clearBelow(b.states)
		b.ifsc.SetValue("")
		return b, b.issue(b.cascade.LoadStates())
	case tea.KeyMsg:
		return b, b.handleKey(msg)
	}

	if b.focus.Is(focusIFSC) {
		var cmd tea.Cmd
		b.ifsc, cmd = b.ifsc.Update(msg)
		return b, cmd
	}
	return b, nil
}

func (b *BankView) apply(resp bank.Response) tea.Cmd {
	req := resp.Request
	if !b.cascade.Apply(resp) {
		b.log.Debug("dropped stale bank response", "level", req.Level, "gen", req.Gen)
		return nil
	}
	b.syncPending()
	if resp.Err != nil {
		b.log.Error("bank request failed", "level", req.Level,
			"state", req.State, "district", req.District, "city", req.City,
			"ifsc", req.IFSC, "err", resp.Err)
		return nil
	}
	switch req.Level {
	case bank.LevelStates:
		return b.states.SetOptions(b.cascade.States)
	case bank.LevelDistricts:
		return b.districts.SetOptions(b.cascade.Districts)
	case bank.LevelCities:
		return b.cities.SetOptions(b.cascade.Cities)
	case bank.LevelCenters:
		labels := make([]string, len(b.cascade.Centers))
		for i, c := range b.cascade.Centers {
			labels[i] = c.Label()
		}
		return b.centers.SetOptions(labels)
	}
	return nil
}

func (b *BankView) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab":
		b.focus.Next()
		return nil
	case "shift+tab":
		b.focus.Prev()
		return nil
	case "enter":
		return b.commit()
	}

	switch b.focus.Current {
	case focusIFSC:
		var cmd tea.Cmd
		b.ifsc, cmd = b.ifsc.Update(msg)
		return cmd
	case focusState:
		return b.states.Update(msg)
	case focusDistrict:
		return b.districts.Update(msg)
	case focusCity:
		return b.cities.Update(msg)
	case focusCenter:
		return b.centers.Update(msg)
	}
	return nil
}

// commit acts on Enter for the focused panel.
func (b *BankView) commit() tea.Cmd {
	switch b.focus.Current {
	case focusIFSC:
		if req, ok := b.cascade.SearchIFSC(b.ifsc.Value()); ok {
			return b.issue(req)
		}
	case focusState:
		v, _, ok := b.states.Highlighted()
		if !ok {
			return nil
		}
		return b.selectLevel(b.states, v, b.cascade.SelectState, focusDistrict)
	case focusDistrict:
		v, _, ok := b.districts.Highlighted()
		if !ok {
			return nil
		}
		return b.selectLevel(b.districts, v, b.cascade.SelectDistrict, focusCity)
	case focusCity:
		v, _, ok := b.cities.Highlighted()
		if !ok {
			return nil
		}
		return b.selectLevel(b.cities, v, b.cascade.SelectCity, focusCenter)
	case focusCenter:
		label, i, ok := b.centers.Highlighted()
		if !ok || i >= len(b.cascade.Centers) {
			return nil
		}
		b.centers.SetChosen(label)
		return b.issue(b.cascade.SelectCenter(b.cascade.Centers[i]))
	}
	return nil
}

func (b *BankView) selectLevel(sel *Selector, v string, choose func(string) (bank.Request, bool), next string) tea.Cmd {
	req, ok := choose(v)
	sel.SetChosen(v)
	b.clearBelow(sel)
	b.syncPending()
	if !ok {
		return nil
	}
	b.focus.SetFocus(next)
	return b.issue(req)
}

// View implements View.
func (b *BankView) View() string {
	var s strings.Builder

	s.WriteString(Styles.Title.Render("Search by IFSC") + "\n")
	s.WriteString(b.panel(focusIFSC, b.ifsc.View()) + "\n")

	s.WriteString(Styles.Title.Render("Or browse by location"))
	if b.busy() {
		s.WriteString(" " + b.activity.View())
	}
	s.WriteString("\n")
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		b.panel(focusState, b.states.View()),
		b.panel(focusDistrict, b.districts.View()),
		b.panel(focusCity, b.cities.View()),
	) + "\n")
	if len(b.centers.Options()) > 0 || b.cascade.Pending(bank.LevelCenters) {
		s.WriteString(b.panel(focusCenter, b.centers.View()) + "\n")
	}

	if br := b.cascade.Branch; br != nil {
		s.WriteString(renderBranch(br, b.width))
	}
	return s.String()
}

func (b *BankView) panel(id, body string) string {
	if b.focus.Is(id) {
		return Styles.PanelFocus.Render(body)
	}
	return Styles.Panel.Render(body)
}

// renderBranch renders the detail rows as aligned label/value pairs.
func renderBranch(br *bank.Branch, width int) string {
	fields := br.Fields()
	labelWidth := 0
	for _, f := range fields {
		if w := textutil.Width(f.Label); w > labelWidth {
			labelWidth = w
		}
	}
	valueWidth := width - labelWidth - 8
	if valueWidth < 20 {
		valueWidth = 60
	}

	var s strings.Builder
	s.WriteString(Styles.Section.Render("Branch details") + "\n")
	for _, f := range fields {
		label := Styles.Label.Render(textutil.PadRight(f.Label, labelWidth))
		value := f.Value
		if value == "" {
			value = "-"
		}
		s.WriteString(label + "  " + Styles.Normal.Render(textutil.Truncate(value, valueWidth)) + "\n")
	}
	return Styles.Box.Render(strings.TrimRight(s.String(), "\n"))
}
