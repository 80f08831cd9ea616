// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// Form bindings for the registration page.
var Form = struct {
	Next           key.Binding
	Prev           key.Binding
	Submit         key.Binding
	Confirm        key.Binding
	TogglePassword key.Binding
	ToggleConfirm  key.Binding
	Login          key.Binding
}{
	Next: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("shift+tab", "previous field"),
	),
	Submit: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "register"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "next / register"),
	),
	TogglePassword: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("ctrl+o", "show password"),
	),
	ToggleConfirm: key.NewBinding(
		key.WithKeys("ctrl+k"),
		key.WithHelp("ctrl+k", "show confirmation"),
	),
	Login: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "sign in"),
	),
}

// Landing bindings for pages shown after registration.
var Landing = struct {
	Logout key.Binding
	Back   key.Binding
}{
	Logout: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "sign out"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
}

// App bindings available on every page.
var App = struct {
	Quit     key.Binding
	Language key.Binding
	Logs     key.Binding
}{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Language: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "switch language"),
	),
	Logs: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "debug log"),
	),
}
