package app

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByteMirror/cmdsys/config"
	"github.com/ByteMirror/cmdsys/executor"
	"github.com/ByteMirror/cmdsys/registry"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestApp(t *testing.T) (*App, *syncBuffer) {
	t.Helper()
	out := &syncBuffer{}
	cfg := config.DefaultConfig()
	cfg.Color = config.ColorNever
	cfg.LogLevel = "normal"
	return New(cfg, out), out
}

func TestApp_PingRoundTrip(t *testing.T) {
	a, out := newTestApp(t)
	require.NoError(t, a.RegisterBuiltins())

	require.NoError(t, a.Execute("ping"))

	assert.Equal(t, 1, strings.Count(out.String(), "pong\n"))
	assert.NotContains(t, out.String(), "(EXCEPTION)")
}

func TestApp_Register(t *testing.T) {
	a, out := newTestApp(t)
	hit := 0
	require.NoError(t, a.Register("hello", "says hello", func() { hit++ }))

	require.NoError(t, a.Execute("hello"))
	require.NoError(t, a.Execute("hello"))

	assert.Equal(t, 2, hit)
	assert.Contains(t, out.String(), "(INFORMATION): running command hello")
}

func TestApp_ExecuteUnknown(t *testing.T) {
	a, out := newTestApp(t)

	err := a.Execute("nope")

	assert.ErrorIs(t, err, registry.ErrNotFound)
	assert.Equal(t, 1, strings.Count(out.String(), "(EXCEPTION):"))
	assert.Contains(t, out.String(), "nope")
}

func TestApp_ExecuteFault(t *testing.T) {
	a, out := newTestApp(t)
	require.NoError(t, a.RegisterBuiltins())

	err := a.Execute("fail")

	assert.ErrorIs(t, err, executor.ErrExecutionFault)
	assert.Equal(t, 1, strings.Count(out.String(), "(EXCEPTION):"))
	assert.Contains(t, out.String(), "deliberate fault")

	// The app keeps working after a fault.
	require.NoError(t, a.Execute("ping"))
}

func TestApp_ExecuteAll(t *testing.T) {
	a, out := newTestApp(t)
	require.NoError(t, a.RegisterBuiltins())

	err := a.ExecuteAll([]string{"ping", "missing", "fail", "ping"})

	require.Error(t, err)
	assert.ErrorIs(t, err, registry.ErrNotFound)
	assert.ErrorIs(t, err, executor.ErrExecutionFault)
	assert.Equal(t, 2, strings.Count(out.String(), "pong\n"))
	assert.Equal(t, 2, strings.Count(out.String(), "(EXCEPTION):"))
}

func TestApp_RegisterBuiltinsTwiceFails(t *testing.T) {
	a, _ := newTestApp(t)
	require.NoError(t, a.RegisterBuiltins())

	err := a.RegisterBuiltins()

	assert.ErrorIs(t, err, registry.ErrDuplicateName)
	assert.Equal(t, len(a.Builtins()), a.Registry.Len())
}

func TestApp_CommandsBuiltinPrintsDescriptions(t *testing.T) {
	a, out := newTestApp(t)
	require.NoError(t, a.RegisterBuiltins())

	require.NoError(t, a.Execute("commands"))

	assert.Contains(t, out.String(), "Command Name:     ping\nDescription:    'replies pong'")
	assert.Contains(t, out.String(), "Command Name:     time")
}

func TestApp_Describe(t *testing.T) {
	a, _ := newTestApp(t)

	var empty bytes.Buffer
	require.NoError(t, a.Describe(&empty))
	assert.Contains(t, empty.String(), "no commands registered")

	require.NoError(t, a.RegisterBuiltins())
	require.NoError(t, a.Register("long", strings.Repeat("word ", 30), func() {}))

	var buf bytes.Buffer
	require.NoError(t, a.Describe(&buf))
	listing := buf.String()

	assert.Contains(t, listing, "Commands")
	assert.Contains(t, listing, "ping")
	assert.Contains(t, listing, "replies pong")
	assert.Less(t, strings.Index(listing, "commands"), strings.Index(listing, "ping"))
	assert.Greater(t, strings.Count(listing, "\n"), len(a.Builtins())+2, "long descriptions wrap")
}
