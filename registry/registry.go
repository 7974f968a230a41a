package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/ByteMirror/cmdsys/command"
	"github.com/ByteMirror/cmdsys/log"
)

var (
	// ErrNotFound is returned when no command is registered under a name.
	ErrNotFound = errors.New("command not found")
	// ErrDuplicateName is returned by RegisterUnique when the name is taken.
	ErrDuplicateName = errors.New("command already registered")
)

// Registry maps command names to commands. It is safe for concurrent use: a single
// mutex orders every read and write. The zero value is ready to use; the underlying
// map is created on first access.
type Registry struct {
	once     sync.Once
	mu       sync.Mutex
	commands map[string]*command.Command
	logger   *log.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger reports overwritten registrations at warning level.
func WithLogger(logger *log.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// lock initializes the map exactly once and acquires the registry lock.
func (r *Registry) lock() {
	r.once.Do(func() {
		r.commands = make(map[string]*command.Command)
	})
	r.mu.Lock()
}

// Register stores cmd under its name. An existing command with the same name is
// replaced; the last registration wins.
func (r *Registry) Register(cmd *command.Command) error {
	if cmd == nil {
		return fmt.Errorf("register command: %w", command.ErrNilCommand)
	}
	if err := cmd.Validate(); err != nil {
		return fmt.Errorf("register command: %w", err)
	}

	r.lock()
	_, replaced := r.commands[cmd.Name()]
	r.commands[cmd.Name()] = cmd
	r.mu.Unlock()

	if replaced {
		r.logger.Warn("command %s overwritten by a later registration", cmd.Name())
	}
	return nil
}

// RegisterUnique stores cmd under its name and fails if the name is already taken.
func (r *Registry) RegisterUnique(cmd *command.Command) error {
	if cmd == nil {
		return fmt.Errorf("register command: %w", command.ErrNilCommand)
	}
	if err := cmd.Validate(); err != nil {
		return fmt.Errorf("register command: %w", err)
	}

	r.lock()
	defer r.mu.Unlock()

	if _, exists := r.commands[cmd.Name()]; exists {
		return fmt.Errorf("register command %s: %w", cmd.Name(), ErrDuplicateName)
	}
	r.commands[cmd.Name()] = cmd
	return nil
}

// Get returns the command registered under name.
func (r *Registry) Get(name string) (*command.Command, error) {
	r.lock()
	defer r.mu.Unlock()

	cmd, ok := r.commands[name]
	if !ok {
		return nil, fmt.Errorf("get command %s: %w", name, ErrNotFound)
	}
	return cmd, nil
}

// Remove deletes the command registered under name.
func (r *Registry) Remove(name string) error {
	r.lock()
	defer r.mu.Unlock()

	if _, ok := r.commands[name]; !ok {
		return fmt.Errorf("remove command %s: %w", name, ErrNotFound)
	}
	delete(r.commands, name)
	return nil
}

// List returns all registered commands sorted by name.
func (r *Registry) List() []*command.Command {
	r.lock()
	commands := make([]*command.Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		commands = append(commands, cmd)
	}
	r.mu.Unlock()

	sort.Slice(commands, func(i, j int) bool {
		return commands[i].Name() < commands[j].Name()
	})
	return commands
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	r.lock()
	defer r.mu.Unlock()
	return len(r.commands)
}
