package facts

import (
	"fmt"
	"strconv"
	"strings"

	"mirdump/internal/mir"
)

// Phase splits every location into the point before its effects (Start) and
// the point after them (Mid).
type Phase uint8

const (
	PhaseStart Phase = iota
	PhaseMid
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "Start"
	case PhaseMid:
		return "Mid"
	default:
		return "?"
	}
}

// Point is one program point: a location plus a phase. Points are totally
// ordered by (block, statement index, phase).
type Point struct {
	Loc   mir.Location
	Phase Phase
}

func (p Point) Compare(o Point) int {
	if c := p.Loc.Compare(o.Loc); c != 0 {
		return c
	}
	if p.Phase != o.Phase {
		if p.Phase < o.Phase {
			return -1
		}
		return 1
	}
	return 0
}

// String renders the point in the fact-file descriptor form, e.g.
// "Mid(bb2[1])".
func (p Point) String() string {
	return fmt.Sprintf("%s(bb%d[%d])", p.Phase, p.Loc.Block, p.Loc.Statement)
}

// ParsePoint parses a point descriptor such as `Start(bb0[2])` or
// `"Mid(bb1[0])"` (fact files quote atoms).
func ParsePoint(tok string) (Point, error) {
	s := strings.Trim(tok, `"`)
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return Point{}, fmt.Errorf("malformed point %q", tok)
	}
	var phase Phase
	switch s[:open] {
	case "Start":
		phase = PhaseStart
	case "Mid":
		phase = PhaseMid
	default:
		return Point{}, fmt.Errorf("malformed point %q: unknown phase %q", tok, s[:open])
	}
	body := s[open+1 : len(s)-1]
	if !strings.HasPrefix(body, "bb") {
		return Point{}, fmt.Errorf("malformed point %q", tok)
	}
	lb := strings.IndexByte(body, '[')
	if lb < 0 || !strings.HasSuffix(body, "]") {
		return Point{}, fmt.Errorf("malformed point %q", tok)
	}
	// Unsigned parses: ids are never negative, and a negative index from a
	// corrupt file must not reach CFG lookups.
	block, err := strconv.ParseUint(body[2:lb], 10, 31)
	if err != nil {
		return Point{}, fmt.Errorf("malformed point %q: %w", tok, err)
	}
	stmt, err := strconv.ParseUint(body[lb+1:len(body)-1], 10, 31)
	if err != nil {
		return Point{}, fmt.Errorf("malformed point %q: %w", tok, err)
	}
	return Point{
		Loc:   mir.Location{Block: mir.BlockID(block), Statement: int(stmt)},
		Phase: phase,
	}, nil
}
