package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	// KindSpanBegin marks the start of a logical operation.
	KindSpanBegin Kind = iota + 1
	// KindSpanEnd marks the end of a logical operation.
	KindSpanEnd
	// KindPoint represents an instant event.
	KindPoint
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Scope indicates the granularity of an event. Lower values are coarser.
type Scope uint8

const (
	// ScopeRun covers the whole invocation.
	ScopeRun Scope = iota + 1
	// ScopeFunction covers one analyzed function.
	ScopeFunction
	// ScopePhase covers one pipeline phase (load, complete, solve, render).
	ScopePhase
)

func (s Scope) String() string {
	switch s {
	case ScopeRun:
		return "run"
	case ScopeFunction:
		return "function"
	case ScopePhase:
		return "phase"
	default:
		return "unknown"
	}
}

// Event is a single trace record.
type Event struct {
	Time   time.Time
	Kind   Kind
	Scope  Scope
	Name   string // e.g. "dump", "fn:crate::main", "solve"
	Detail string
}
