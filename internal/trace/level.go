package trace

import "fmt"

// Level controls tracing verbosity.
type Level uint8

const (
	// LevelOff disables tracing.
	LevelOff Level = iota
	// LevelRun emits only whole-invocation events.
	LevelRun
	// LevelFunction adds per-function events.
	LevelFunction
	// LevelPhase adds load/complete/solve/render phase events.
	LevelPhase
)

func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelRun:
		return "run"
	case LevelFunction:
		return "function"
	case LevelPhase:
		return "phase"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "off", "OFF":
		return LevelOff, nil
	case "run", "RUN":
		return LevelRun, nil
	case "function", "FUNCTION":
		return LevelFunction, nil
	case "phase", "PHASE":
		return LevelPhase, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|run|function|phase)", s)
	}
}

// ShouldEmit reports whether events of the given scope are emitted at this
// level.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelOff:
		return false
	case LevelRun:
		return scope <= ScopeRun
	case LevelFunction:
		return scope <= ScopeFunction
	case LevelPhase:
		return true
	}
	return false
}
