package dump

import "mirdump/internal/mir"

// edges writes one styled edge per successor of the block's terminator:
// plain for normal control flow, red for unwind/cleanup paths, dashed for
// imaginary edges the execution never takes.
func (r *renderer) edges(b *mir.Block) {
	term := &b.Term
	switch term.Kind {
	case mir.TermGoto:
		r.edge(b.ID, term.Goto.Target)
	case mir.TermSwitchInt:
		for _, target := range term.SwitchInt.Targets {
			r.edge(b.ID, target)
		}
	case mir.TermResume:
		r.edgeNamed(b.ID, "resume")
	case mir.TermAbort:
		r.edgeNamed(b.ID, "abort")
	case mir.TermReturn:
		r.edgeNamed(b.ID, "return")
	case mir.TermUnreachable:
		// no successors
	case mir.TermDrop, mir.TermDropAndReplace:
		r.edge(b.ID, term.Drop.Target)
		if term.Drop.Unwind != mir.NoBlockID {
			r.edgeUnwind(b.ID, term.Drop.Unwind)
		}
	case mir.TermCall:
		if term.Call.Target != mir.NoBlockID {
			r.edge(b.ID, term.Call.Target)
		}
		if term.Call.Cleanup != mir.NoBlockID {
			r.edgeUnwind(b.ID, term.Call.Cleanup)
		}
	case mir.TermAssert:
		r.edge(b.ID, term.Assert.Target)
		if term.Assert.Cleanup != mir.NoBlockID {
			r.edgeUnwind(b.ID, term.Assert.Cleanup)
		}
	case mir.TermFalseEdge:
		r.edge(b.ID, term.FalseEdge.Real)
		for _, target := range term.FalseEdge.Imaginary {
			r.edgeImaginary(b.ID, target)
		}
	case mir.TermFalseUnwind:
		r.edge(b.ID, term.FalseUnwind.Real)
		if term.FalseUnwind.Unwind != mir.NoBlockID {
			r.edgeImaginary(b.ID, term.FalseUnwind.Unwind)
		}
	}
}

func (r *renderer) edge(from, to mir.BlockID) {
	r.printf("\"bb%d\" -> \"bb%d\"\n", from, to)
}

func (r *renderer) edgeNamed(from mir.BlockID, name string) {
	r.printf("\"bb%d\" -> \"%s\"\n", from, name)
}

func (r *renderer) edgeUnwind(from, to mir.BlockID) {
	r.printf("\"bb%d\" -> \"bb%d\" [color=red]\n", from, to)
}

func (r *renderer) edgeImaginary(from, to mir.BlockID) {
	r.printf("\"bb%d\" -> \"bb%d\" [style=\"dashed\"]\n", from, to)
}
