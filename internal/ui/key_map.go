package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up         key.Binding
	down       key.Binding
	toggle     key.Binding
	toggleAll  key.Binding
	search     key.Binding
	level      key.Binding
	remove     key.Binding
	bulkRemove key.Binding
	upload     key.Binding
	reload     key.Binding
	submit     key.Binding
	back       key.Binding
	quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		toggle:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
		toggleAll:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select all")),
		search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		level:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "level")),
		remove:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		bulkRemove: key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "delete selected")),
		upload:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import")),
		reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.toggle, k.remove, k.search, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.toggle, k.toggleAll},
		{k.search, k.level, k.reload},
		{k.remove, k.bulkRemove, k.upload},
		{k.back, k.quit},
	}
}
