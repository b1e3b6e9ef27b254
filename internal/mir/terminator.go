package mir

type TermKind uint8

const (
	TermNone TermKind = iota
	TermGoto
	TermSwitchInt
	TermResume
	TermAbort
	TermReturn
	TermUnreachable
	TermDrop
	TermDropAndReplace
	TermCall
	TermAssert
	TermFalseEdge
	TermFalseUnwind
)

type Terminator struct {
	Kind TermKind

	Goto        GotoTerm
	SwitchInt   SwitchIntTerm
	Drop        DropTerm
	Call        CallTerm
	Assert      AssertTerm
	FalseEdge   FalseEdgeTerm
	FalseUnwind FalseUnwindTerm
}

type GotoTerm struct {
	Target BlockID
}

type SwitchIntTerm struct {
	Discr   string
	Targets []BlockID
}

// DropTerm covers both Drop and DropAndReplace. Unwind is NoBlockID when the
// drop has no unwind path.
type DropTerm struct {
	Place  Place
	Value  string // DropAndReplace only, rendered replacement operand
	Target BlockID
	Unwind BlockID
}

// CallTerm has an optional destination (HasDest) and an optional cleanup
// block (NoBlockID when absent). Target is NoBlockID for diverging calls.
type CallTerm struct {
	Func    string
	Args    []string
	HasDest bool
	Dest    Place
	Target  BlockID
	Cleanup BlockID
}

type AssertTerm struct {
	Cond     string
	Expected bool
	Target   BlockID
	Cleanup  BlockID
}

// FalseEdgeTerm is a real edge plus imaginary targets the borrow checker
// sees but execution never takes.
type FalseEdgeTerm struct {
	Real      BlockID
	Imaginary []BlockID
}

type FalseUnwindTerm struct {
	Real   BlockID
	Unwind BlockID
}
