package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/ByteMirror/cmdsys/command"
)

// Builtins returns the commands every App starts with.
func (a *App) Builtins() []*command.Command {
	return []*command.Command{
		command.NewFunc("ping", "replies pong", func() {
			fmt.Fprintln(a.out, "pong")
		}),
		command.NewFunc("time", "prints the current UTC time", func() {
			fmt.Fprintln(a.out, time.Now().UTC().Format(time.RFC3339))
		}),
		command.NewFunc("commands", "prints every registered command", func() {
			for _, cmd := range a.Registry.List() {
				fmt.Fprintln(a.out, cmd.String())
			}
		}),
		command.NewFunc("fail", "panics on purpose to show how faults are reported", func() {
			panic("fail: deliberate fault")
		}),
	}
}

// RegisterBuiltins registers Builtins. It fails for names that are already taken.
func (a *App) RegisterBuiltins() error {
	var errs []error
	for _, cmd := range a.Builtins() {
		if err := a.Registry.RegisterUnique(cmd); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
