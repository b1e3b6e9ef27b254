package mir

import (
	"fmt"
	"strings"
)

// FormatPlace renders a place the way MIR dumps do: "_2", "(*_1)", "_3.0".
func FormatPlace(p Place) string {
	if !p.IsValid() {
		return "_?"
	}
	out := fmt.Sprintf("_%d", p.Local)
	for _, proj := range p.Proj {
		if proj == "*" {
			out = "(*" + out + ")"
			continue
		}
		out += proj
	}
	return out
}

// FormatStatement renders one statement for a report row.
func FormatStatement(s *Statement) string {
	if s == nil {
		return "<stmt?>"
	}
	switch s.Kind {
	case StmtAssign:
		return fmt.Sprintf("%s = %s", FormatPlace(s.Dst), s.Src)
	case StmtStorageLive:
		return fmt.Sprintf("StorageLive(_%d)", s.Local)
	case StmtStorageDead:
		return fmt.Sprintf("StorageDead(_%d)", s.Local)
	case StmtNop:
		return "nop"
	default:
		return "<stmt?>"
	}
}

// FormatTerminator renders one terminator for a report row.
func FormatTerminator(t *Terminator) string {
	if t == nil {
		return ""
	}
	switch t.Kind {
	case TermGoto:
		return fmt.Sprintf("goto -> bb%d", t.Goto.Target)
	case TermSwitchInt:
		targets := make([]string, 0, len(t.SwitchInt.Targets))
		for _, bb := range t.SwitchInt.Targets {
			targets = append(targets, fmt.Sprintf("bb%d", bb))
		}
		return fmt.Sprintf("switchInt(%s) -> [%s]", t.SwitchInt.Discr, strings.Join(targets, ", "))
	case TermResume:
		return "resume"
	case TermAbort:
		return "abort"
	case TermReturn:
		return "return"
	case TermUnreachable:
		return "unreachable"
	case TermDrop:
		out := fmt.Sprintf("drop(%s) -> bb%d", FormatPlace(t.Drop.Place), t.Drop.Target)
		if t.Drop.Unwind != NoBlockID {
			out += fmt.Sprintf(" unwind bb%d", t.Drop.Unwind)
		}
		return out
	case TermDropAndReplace:
		out := fmt.Sprintf("replace(%s <- %s) -> bb%d", FormatPlace(t.Drop.Place), t.Drop.Value, t.Drop.Target)
		if t.Drop.Unwind != NoBlockID {
			out += fmt.Sprintf(" unwind bb%d", t.Drop.Unwind)
		}
		return out
	case TermCall:
		out := ""
		if t.Call.HasDest {
			out = FormatPlace(t.Call.Dest) + " = "
		}
		out += fmt.Sprintf("%s(%s)", t.Call.Func, strings.Join(t.Call.Args, ", "))
		if t.Call.Target != NoBlockID {
			out += fmt.Sprintf(" -> bb%d", t.Call.Target)
		}
		if t.Call.Cleanup != NoBlockID {
			out += fmt.Sprintf(" cleanup bb%d", t.Call.Cleanup)
		}
		return out
	case TermAssert:
		cond := t.Assert.Cond
		if !t.Assert.Expected {
			cond = "!" + cond
		}
		out := fmt.Sprintf("assert(%s) -> bb%d", cond, t.Assert.Target)
		if t.Assert.Cleanup != NoBlockID {
			out += fmt.Sprintf(" cleanup bb%d", t.Assert.Cleanup)
		}
		return out
	case TermFalseEdge:
		return fmt.Sprintf("falseEdge -> bb%d", t.FalseEdge.Real)
	case TermFalseUnwind:
		return fmt.Sprintf("falseUnwind -> bb%d", t.FalseUnwind.Real)
	default:
		return ""
	}
}

// LocalLabel renders a local for the variables table: the source name when
// known, the temporary otherwise.
func (f *Func) LocalLabel(id LocalID) string {
	if id < 0 || int(id) >= len(f.Locals) {
		return fmt.Sprintf("_%d", id)
	}
	if name := f.Locals[id].Name; name != "" {
		return name
	}
	return fmt.Sprintf("_%d", id)
}
