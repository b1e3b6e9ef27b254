package trace

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Tracer is the sink for trace events.
type Tracer interface {
	// Emit records a trace event.
	Emit(ev *Event)

	// Flush ensures all buffered events are written.
	Flush() error

	// Close flushes and releases resources.
	Close() error

	// Level returns the current tracing level.
	Level() Level

	// Enabled reports whether tracing is active (Level > LevelOff).
	Enabled() bool
}

// Config holds tracer configuration.
type Config struct {
	Level      Level
	Output     io.Writer // if nil, OutputPath is used
	OutputPath string    // "-" or "" means stderr
}

// New creates a Tracer based on Config.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	w := cfg.Output
	var owned *os.File
	if w == nil {
		if cfg.OutputPath == "" || cfg.OutputPath == "-" {
			w = os.Stderr
		} else {
			f, err := os.Create(cfg.OutputPath)
			if err != nil {
				return nil, fmt.Errorf("failed to open trace output: %w", err)
			}
			w = f
			owned = f
		}
	}
	return &streamTracer{w: w, owned: owned, level: cfg.Level}, nil
}

// streamTracer writes events as text lines, immediately.
type streamTracer struct {
	mu    sync.Mutex
	w     io.Writer
	owned *os.File
	level Level
}

func (t *streamTracer) Emit(ev *Event) {
	if ev == nil || !t.level.ShouldEmit(ev.Scope) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	// Trace output is best effort; never fail the analysis over it.
	line := fmt.Sprintf("%s %-5s %-8s %s", ev.Time.Format("15:04:05.000"), ev.Kind, ev.Scope, ev.Name)
	if ev.Detail != "" {
		line += " " + ev.Detail
	}
	_, _ = fmt.Fprintln(t.w, line)
}

func (t *streamTracer) Flush() error { return nil }

func (t *streamTracer) Close() error {
	if t.owned != nil {
		return t.owned.Close()
	}
	return nil
}

func (t *streamTracer) Level() Level  { return t.level }
func (t *streamTracer) Enabled() bool { return t.level > LevelOff }

// nopTracer is a no-op implementation for zero overhead when tracing is
// disabled.
type nopTracer struct{}

func (nopTracer) Emit(*Event)  {}
func (nopTracer) Flush() error { return nil }
func (nopTracer) Close() error { return nil }
func (nopTracer) Level() Level { return LevelOff }
func (nopTracer) Enabled() bool { return false }

// Nop is the package-level singleton nop tracer.
var Nop Tracer = nopTracer{}
