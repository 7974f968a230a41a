package log

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// Level is the severity of a console entry. It selects the prefix label and the color.
type Level int

const (
	// LevelNormal is plain output with an empty label.
	LevelNormal Level = iota
	// LevelInformation reports progress.
	LevelInformation
	// LevelWarning reports a recoverable anomaly.
	LevelWarning
	// LevelException reports a failure.
	LevelException
)

func (l Level) String() string {
	switch l {
	case LevelNormal:
		return "NORMAL"
	case LevelInformation:
		return "INFORMATION"
	case LevelWarning:
		return "WARNING"
	case LevelException:
		return "EXCEPTION"
	default:
		return "UNKNOWN"
	}
}

// Label is the text placed between parentheses in the entry prefix.
func (l Level) Label() string {
	switch l {
	case LevelInformation:
		return "INFORMATION"
	case LevelWarning:
		return "WARN"
	case LevelException:
		return "EXCEPTION"
	default:
		return ""
	}
}

// Color is the terminal color an entry of this level is rendered with.
func (l Level) Color() termenv.ANSIColor {
	switch l {
	case LevelInformation:
		return termenv.ANSIMagenta
	case LevelWarning:
		return termenv.ANSIYellow
	case LevelException:
		return termenv.ANSIRed
	default:
		return termenv.ANSIWhite
	}
}

// ParseLevel converts a configuration value into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return LevelNormal, nil
	case "info", "information":
		return LevelInformation, nil
	case "warn", "warning":
		return LevelWarning, nil
	case "exception", "error":
		return LevelException, nil
	default:
		return LevelNormal, fmt.Errorf("unknown log level %q", s)
	}
}
