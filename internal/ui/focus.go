package ui

// FocusManager tracks and rotates focus across the panels of a screen.
type FocusManager struct {
	Current  string   // ID of the currently focused panel
	Order    []string // Tab order for focus rotation
	OnChange func(from, to string)
}

// NewFocusManager focuses the first panel in order.
func NewFocusManager(order ...string) *FocusManager {
	f := &FocusManager{Order: order}
	if len(order) > 0 {
		f.Current = order[0]
	}
	return f
}

func (f *FocusManager) index() int {
	for i, id := range f.Order {
		if id == f.Current {
			return i
		}
	}
	return -1
}

func (f *FocusManager) move(to string) {
	from := f.Current
	f.Current = to
	if f.OnChange != nil && from != to {
		f.OnChange(from, to)
	}
}

// Next advances focus to the next panel in order, wrapping around.
// Returns the new current focus ID.
func (f *FocusManager) Next() string {
	if len(f.Order) == 0 {
		return ""
	}
	f.move(f.Order[(f.index()+1)%len(f.Order)])
	return f.Current
}

// Prev moves focus to the previous panel in order, wrapping around.
func (f *FocusManager) Prev() string {
	if len(f.Order) == 0 {
		return ""
	}
	i := f.index() - 1
	if i < 0 {
		i = len(f.Order) - 1
	}
	f.move(f.Order[i])
	return f.Current
}

// SetFocus sets focus to the given panel ID.
// Returns false if the ID is not in order.
func (f *FocusManager) SetFocus(id string) bool {
	for _, o := range f.Order {
		if o == id {
			f.move(id)
			return true
		}
	}
	return false
}

// Is reports whether id has focus.
func (f *FocusManager) Is(id string) bool {
	return f.Current == id
}
