// Package keyboard defines the key bindings for the dashboard and the help
// entries derived from them.
package keyboard

import "github.com/charmbracelet/bubbles/key"

type Map struct {
	NextFocus   key.Binding
	PrevFocus   key.Binding
	PrevTab     key.Binding
	NextTab     key.Binding
	Activate    key.Binding
	Generate    key.Binding
	ToggleWatch key.Binding
	Check       key.Binding
	FollowLogs  key.Binding
	Save        key.Binding
	Quit        key.Binding
	ModalToggle key.Binding
}

// NewMap builds the default bindings. The single-letter shortcuts only fire
// on the overview tab so they never swallow text input on settings.
func NewMap() Map {
	return Map{
		NextFocus: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next control"),
		),
		PrevFocus: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "previous control"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("ctrl+left"),
			key.WithHelp("ctrl+←", "previous tab"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("ctrl+right"),
			key.WithHelp("ctrl+→", "next tab"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "activate"),
		),
		Generate: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "generate icons"),
		),
		ToggleWatch: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "toggle watch"),
		),
		Check: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "check freshness"),
		),
		FollowLogs: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "follow logs"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save settings"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		ModalToggle: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
		),
	}
}

func (m Map) ShortHelp() []key.Binding {
	return []key.Binding{m.NextFocus, m.Activate, m.Generate, m.ToggleWatch, m.Quit}
}

func (m Map) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.NextFocus, m.PrevFocus, m.NextTab, m.PrevTab},
		{m.Activate, m.Generate, m.ToggleWatch, m.Check},
		{m.FollowLogs, m.Save, m.ModalToggle, m.Quit},
	}
}
