package app

import (
	"errors"
	"io"
	"os"

	"github.com/muesli/termenv"

	"github.com/ByteMirror/cmdsys/command"
	"github.com/ByteMirror/cmdsys/config"
	"github.com/ByteMirror/cmdsys/executor"
	"github.com/ByteMirror/cmdsys/log"
	"github.com/ByteMirror/cmdsys/registry"
)

// App is the application context: one registry, one executor and one logger.
type App struct {
	Registry *registry.Registry
	Executor *executor.Executor
	Logger   *log.Logger

	out     io.Writer
	profile termenv.Profile
}

// New builds an App writing command output and log lines to out.
func New(cfg *config.Config, out io.Writer, opts ...log.Option) *App {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if out == nil {
		out = os.Stdout
	}

	profile := cfg.ColorProfile(out)
	logOpts := append([]log.Option{
		log.WithProfile(profile),
		log.WithMinLevel(cfg.MinLevel()),
	}, opts...)
	logger := log.New(out, logOpts...)

	return &App{
		Registry: registry.New(registry.WithLogger(logger)),
		Executor: executor.New(logger, executor.WithMaxParallel(cfg.MaxParallel)),
		Logger:   logger,
		out:      out,
		profile:  profile,
	}
}

// Register adds a command built from fn. A command already registered under name
// is replaced.
func (a *App) Register(name, description string, fn func()) error {
	return a.Registry.Register(command.NewFunc(name, description, fn))
}

// Execute looks up name and runs it. An unknown name and a faulting action are both
// reported as exception lines and returned.
func (a *App) Execute(name string) error {
	cmd, err := a.Registry.Get(name)
	if err != nil {
		a.Logger.Exception("%v", err)
		return err
	}
	return a.Executor.Execute(cmd)
}

// ExecuteAll looks up every name and runs the ones found concurrently. Lookup and
// execution failures are joined into the returned error.
func (a *App) ExecuteAll(names []string) error {
	var errs []error
	cmds := make([]*command.Command, 0, len(names))
	for _, name := range names {
		cmd, err := a.Registry.Get(name)
		if err != nil {
			a.Logger.Exception("%v", err)
			errs = append(errs, err)
			continue
		}
		cmds = append(cmds, cmd)
	}

	if err := a.Executor.ExecuteAll(cmds); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Out returns the writer commands print to.
func (a *App) Out() io.Writer {
	return a.out
}
