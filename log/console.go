package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
)

// prefixLayout renders as [HH:MM:SS - DD.MM.YYYY] with every field zero padded.
const prefixLayout = "15:04:05 - 02.01.2006"

// entry is a single console line. It lives only for the duration of one Log call.
type entry struct {
	prefix  string
	message string
	color   termenv.ANSIColor
}

func newEntry(now time.Time, level Level, message string) entry {
	return entry{
		prefix:  fmt.Sprintf("[%s] (%s):", now.UTC().Format(prefixLayout), level.Label()),
		message: message,
		color:   level.Color(),
	}
}

func (e entry) String() string {
	return e.prefix + " " + e.message
}

// render applies the entry color for profile. termenv closes every styled span with a
// reset sequence, so the following output is not affected.
func (e entry) render(profile termenv.Profile) string {
	if profile == termenv.Ascii {
		return e.String() + "\n"
	}
	return profile.String(e.String()).Foreground(profile.Convert(e.color)).String() + "\n"
}

// Logger writes leveled, timestamped, colored lines to a console stream.
// A Logger is safe for concurrent use.
type Logger struct {
	mu       sync.Mutex
	w        io.Writer
	profile  termenv.Profile
	minLevel Level
	now      func() time.Time
	onError  func(error)
}

// Option configures a Logger.
type Option func(*Logger)

// WithProfile forces the color profile instead of detecting it from the stream.
func WithProfile(profile termenv.Profile) Option {
	return func(l *Logger) {
		l.profile = profile
	}
}

// WithMinLevel drops entries below level.
func WithMinLevel(level Level) Option {
	return func(l *Logger) {
		l.minLevel = level
	}
}

// WithClock replaces the time source used for prefixes.
func WithClock(now func() time.Time) Option {
	return func(l *Logger) {
		if now != nil {
			l.now = now
		}
	}
}

// WithErrorHandler receives console write failures. The default reports them to DiagnosticLog.
func WithErrorHandler(handler func(error)) Option {
	return func(l *Logger) {
		if handler != nil {
			l.onError = handler
		}
	}
}

// New creates a Logger writing to w. The color profile is detected from w and the
// environment unless WithProfile is given.
func New(w io.Writer, opts ...Option) *Logger {
	if w == nil {
		w = os.Stdout
	}
	l := &Logger{
		w:       w,
		profile: termenv.NewOutput(w).EnvColorProfile(),
		now:     time.Now,
		onError: func(err error) {
			DiagnosticLog.Printf("console write failed: %v", err)
		},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Log writes message at level. It never fails from the caller's point of view.
func (l *Logger) Log(level Level, message string) {
	if l == nil || level < l.minLevel {
		return
	}

	line := newEntry(l.now(), level, message).render(l.profile)

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := io.WriteString(l.w, line); err != nil {
		l.onError(err)
	}
}

// Logf formats according to a format specifier and logs the result at level.
func (l *Logger) Logf(level Level, format string, args ...any) {
	if l == nil || level < l.minLevel {
		return
	}
	l.Log(level, fmt.Sprintf(format, args...))
}

// Info logs at LevelInformation.
func (l *Logger) Info(format string, args ...any) {
	l.Logf(LevelInformation, format, args...)
}

// Warn logs at LevelWarning.
func (l *Logger) Warn(format string, args ...any) {
	l.Logf(LevelWarning, format, args...)
}

// Exception logs at LevelException.
func (l *Logger) Exception(format string, args ...any) {
	l.Logf(LevelException, format, args...)
}

// Profile returns the color profile in use.
func (l *Logger) Profile() termenv.Profile {
	return l.profile
}
