package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings of the seat plan, booking form and the global
// navigation keys. List screens keep the list component's own bindings.
type keyMap struct {
	Quit       key.Binding
	QuitLetter key.Binding
	Back       key.Binding

	// Seat plan.
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Toggle      key.Binding
	ToggleLabel key.Binding
	OpenForm    key.Binding

	// Booking form.
	NextField key.Binding
	PrevField key.Binding
	PrevPoint key.Binding
	NextPoint key.Binding
	Submit    key.Binding
}

var defaultKeyMap = keyMap{
	Quit:        key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	QuitLetter:  key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	Back:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
	Toggle:      key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle seat")),
	ToggleLabel: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "toggle numbers")),
	OpenForm:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "booking form")),
	NextField:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	PrevField:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
	PrevPoint:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "previous point")),
	NextPoint:   key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next point")),
	Submit:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "confirm booking")),
}

func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return joinBullets(parts)
}
