package trace

import "time"

// Span is a begin/end pair around one logical operation.
type Span struct {
	tracer  Tracer
	scope   Scope
	name    string
	started time.Time
}

// Begin starts a span and emits its begin event.
func Begin(t Tracer, scope Scope, name string) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return &Span{tracer: Nop}
	}
	now := time.Now()
	t.Emit(&Event{Time: now, Kind: KindSpanBegin, Scope: scope, Name: name})
	return &Span{tracer: t, scope: scope, name: name, started: now}
}

// End emits the span's end event and returns its duration.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.tracer == nil || !s.tracer.Enabled() {
		return 0
	}
	dur := time.Since(s.started)
	s.tracer.Emit(&Event{
		Time:   time.Now(),
		Kind:   KindSpanEnd,
		Scope:  s.scope,
		Name:   s.name,
		Detail: detail,
	})
	return dur
}

// Point emits an instant event.
func Point(t Tracer, scope Scope, name, detail string) {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	t.Emit(&Event{Time: time.Now(), Kind: KindPoint, Scope: scope, Name: name, Detail: detail})
}
