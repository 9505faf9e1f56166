package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap lists the widget controls.
type KeyMap struct {
	Next  key.Binding
	Copy  key.Binding
	Share key.Binding
	Quit  key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("n", " ", "right"),
			key.WithHelp("n", "следующая"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "копировать"),
		),
		Share: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "поделиться"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", keyCtrlC),
			key.WithHelp("q", "выход"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Copy, k.Share, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// sync enables bindings to mirror the control states so disabled controls
// drop out of the help row.
func (k *KeyMap) sync(next, copyOK, shareOK bool) {
	k.Next.SetEnabled(next)
	k.Copy.SetEnabled(copyOK)
	k.Share.SetEnabled(shareOK)
}
