// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the review screen.
type KeyMap struct {
	// Parse extracts a record from the recognised text.
	Parse key.Binding

	// Save appends the parsed record to the configured stores.
	Save key.Binding

	// Next moves to the next file.
	Next key.Binding

	// Help toggles the full help.
	Help key.Binding

	// Quit exits the review.
	Quit key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Parse: key.NewBinding(
			key.WithKeys("p", "enter"),
			key.WithHelp("p", "parse"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save"),
		),
		Next: key.NewBinding(
			key.WithKeys("n", "tab"),
			key.WithHelp("n", "next file"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Parse, k.Save, k.Next, k.Quit}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Parse, k.Save, k.Next},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
