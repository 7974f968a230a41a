// Package executor runs command actions on their own goroutine and reports faults.
//
// Every Execute call spawns exactly one worker goroutine and blocks until it returns.
// A panic inside an action is recovered on the worker, logged once at exception level
// and handed back to the caller as a *FaultError; it never unwinds the calling goroutine.
package executor

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ByteMirror/cmdsys/command"
	"github.com/ByteMirror/cmdsys/log"
)

const defaultMaxParallel = 4

// Executor runs commands. It is safe for concurrent use. The zero value runs
// commands without logging.
type Executor struct {
	logger      *log.Logger
	maxParallel int
	stats       Stats
}

// Option configures an Executor.
type Option func(*Executor)

// WithMaxParallel bounds how many commands ExecuteAll runs at once.
func WithMaxParallel(n int) Option {
	return func(e *Executor) {
		if n > 0 {
			e.maxParallel = n
		}
	}
}

// New creates an Executor reporting through logger.
func New(logger *log.Logger, opts ...Option) *Executor {
	e := &Executor{
		logger:      logger,
		maxParallel: defaultMaxParallel,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute invokes the command's action on a new goroutine and waits for it.
// The command is borrowed, not consumed, and is never modified.
func (e *Executor) Execute(cmd *command.Command) error {
	if cmd == nil {
		e.logger.Exception("execute: %v", command.ErrNilCommand)
		return fmt.Errorf("execute: %w", command.ErrNilCommand)
	}
	if cmd.Action() == nil {
		err := fmt.Errorf("execute %s: %w", cmd.Name(), command.ErrNilAction)
		e.logger.Exception("%v", err)
		return err
	}

	e.logger.Info("running command %s", cmd.Name())
	e.stats.Runs.Add(1)
	e.stats.Running.Add(1)
	start := time.Now()

	done := make(chan error, 1)
	go func() {
		// Stays set if the action calls runtime.Goexit.
		err := error(&FaultError{Command: cmd.Name(), Value: "worker goroutine exited"})
		defer func() { done <- err }()
		err = invokeSafely(cmd.Name(), cmd.Action().Invoke)
	}()
	err := <-done

	e.stats.Running.Add(-1)
	e.stats.recordLatency(time.Since(start))

	if err != nil {
		e.stats.Faulted.Add(1)
		e.logger.Exception("%v", err)
		return err
	}

	e.stats.Completed.Add(1)
	e.logger.Info("command %s finished in %v", cmd.Name(), time.Since(start).Round(time.Microsecond))
	return nil
}

// ExecuteAll runs every command concurrently, at most WithMaxParallel at a time.
// Each command still gets its own worker and fault handling. All commands run even
// when some fault; the returned error joins every failure.
func (e *Executor) ExecuteAll(cmds []*command.Command) error {
	limit := e.maxParallel
	if limit <= 0 {
		limit = defaultMaxParallel
	}

	var g errgroup.Group
	g.SetLimit(limit)

	errs := make([]error, len(cmds))
	for i, cmd := range cmds {
		g.Go(func() error {
			errs[i] = e.Execute(cmd)
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}

// Stats returns the executor's counters.
func (e *Executor) Stats() *Stats {
	return &e.stats
}
