package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Add      key.Binding
	Project  key.Binding
	Status   key.Binding
	Complete key.Binding
	Delete   key.Binding
	DelProj  key.Binding
	Grab     key.Binding
	Refresh  key.Binding
	Help     key.Binding
	Quit     key.Binding
	Escape   key.Binding
	Enter    key.Binding
	Logout   key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev project")),
	Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next project")),
	Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
	Project:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "new project")),
	Status:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cycle status")),
	Complete: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete project")),
	Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete task")),
	DelProj:  key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete project")),
	Grab:     key.NewBinding(key.WithKeys("m", " "), key.WithHelp("m", "grab/drop task")),
	Refresh:  key.NewBinding(key.WithKeys("r", "R"), key.WithHelp("r", "refresh")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Escape:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
	Logout:   key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "logout")),
}
