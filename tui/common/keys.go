package common

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines shared key bindings across all views.
type KeyMap struct {
	Quit        key.Binding
	ForceQuit   key.Binding
	Refresh     key.Binding
	Sync        key.Binding // s — pull new comments from Instagram
	Filter      key.Binding // / — search comments
	Reply       key.Binding // c — reply to the selected comment
	AddAccount  key.Binding // a — open the add-account form
	NextAccount key.Binding
	PrevAccount key.Binding
	Up          key.Binding
	Down        key.Binding
	Submit      key.Binding // ctrl+d — submit a draft
	Editor      key.Binding // ctrl+e — edit the draft in $EDITOR
	Cancel      key.Binding
	Confirm     key.Binding
	ToggleMode  key.Binding // tab — OAuth / direct token
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Sync: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sync"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Reply: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "reply"),
		),
		AddAccount: key.NewBinding(
			key.WithKeys("a", "+"),
			key.WithHelp("a", "add account"),
		),
		NextAccount: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next account"),
		),
		PrevAccount: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev account"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "submit"),
		),
		Editor: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "open $EDITOR"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		ToggleMode: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch method"),
		),
	}
}
