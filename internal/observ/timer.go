// Package observ times the stages of the dump pipeline. One Timer lives for
// one function and is discarded with it.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Names of the pipeline stages, in execution order.
const (
	PhaseLoad    = "load"
	PhaseAnalyze = "analyze"
	PhaseRender  = "render"
)

type phase struct {
	name  string
	start time.Time
	dur   time.Duration
	note  string
}

// Timer accumulates phase durations for one function's pipeline run.
type Timer struct {
	phases []phase
}

func NewTimer() *Timer { return &Timer{phases: make([]phase, 0, 4)} }

// Begin opens a phase and returns its handle for End.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, phase{name: name, start: time.Now()})
	return len(t.phases) - 1
}

// End closes the phase, attaching a free-form note shown in the summary.
// Unknown handles are ignored.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.dur = time.Since(p.start)
	p.note = note
}

// Summary renders the recorded phases and their total as an indented block.
func (t *Timer) Summary() string {
	var b strings.Builder
	b.WriteString("timings:\n")
	var total time.Duration
	for _, p := range t.phases {
		total += p.dur
		fmt.Fprintf(&b, "  %-10s %8.2f ms", p.name, millis(p.dur))
		if p.note != "" {
			fmt.Fprintf(&b, "  // %s", p.note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-10s %8.2f ms\n", "total", millis(total))
	return b.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
