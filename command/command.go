// Package command defines the Command value: a named, described, zero-argument unit
// of work. Commands are immutable once constructed and may be shared between goroutines.
package command

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyName is returned when a command has no name.
	ErrEmptyName = errors.New("command name is empty")
	// ErrNilAction is returned when a command has no action to invoke.
	ErrNilAction = errors.New("command action is nil")
	// ErrNilCommand is returned when a nil *Command is passed where one is required.
	ErrNilCommand = errors.New("command is nil")
)

// Action is the work a command performs. Invoke may be called from any goroutine.
type Action interface {
	Invoke()
}

// ActionFunc adapts a plain function to Action.
type ActionFunc func()

// Invoke calls f.
func (f ActionFunc) Invoke() {
	f()
}

// Command is a named, described action.
type Command struct {
	name        string
	description string
	action      Action
}

// New creates a command. It never fails; Validate reports unusable values.
func New(name, description string, action Action) *Command {
	return &Command{
		name:        name,
		description: description,
		action:      action,
	}
}

// NewFunc creates a command from a plain function.
func NewFunc(name, description string, fn func()) *Command {
	var action Action
	if fn != nil {
		action = ActionFunc(fn)
	}
	return New(name, description, action)
}

func (c *Command) Name() string {
	return c.name
}

func (c *Command) Description() string {
	return c.description
}

func (c *Command) Action() Action {
	return c.action
}

// Validate checks that the command can be registered and executed.
func (c *Command) Validate() error {
	if c.name == "" {
		return ErrEmptyName
	}
	if c.action == nil {
		return fmt.Errorf("command %s: %w", c.name, ErrNilAction)
	}
	return nil
}

// String renders the command as two lines: its name, then its description.
func (c *Command) String() string {
	return fmt.Sprintf("Command Name:     %s\nDescription:    '%s'", c.name, c.description)
}
