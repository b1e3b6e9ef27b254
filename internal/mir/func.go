package mir

// Func is the control-flow graph of one compiled function as exported by the
// host compiler. Blocks are kept in declaration order.
type Func struct {
	Name    string
	DefPath string

	Locals []Local
	Blocks []Block
}

// BlockAt returns the block with the given id, or nil when out of range.
func (f *Func) BlockAt(id BlockID) *Block {
	if id < 0 || int(id) >= len(f.Blocks) {
		return nil
	}
	return &f.Blocks[id]
}

// IsAssignment reports whether the location addresses an assignment
// statement.
func (f *Func) IsAssignment(loc Location) bool {
	b := f.BlockAt(loc.Block)
	if b == nil || loc.Statement < 0 || loc.Statement >= len(b.Statements) {
		return false
	}
	return b.Statements[loc.Statement].Kind == StmtAssign
}

// IsCall reports whether the location addresses a call terminator.
func (f *Func) IsCall(loc Location) bool {
	b := f.BlockAt(loc.Block)
	if b == nil || loc.Statement != len(b.Statements) {
		return false
	}
	return b.Term.Kind == TermCall
}

// CallDestination returns the destination place of the call terminator at
// loc. The second result is false when the location is not a call or the
// call has no destination.
func (f *Func) CallDestination(loc Location) (Place, bool) {
	if !f.IsCall(loc) {
		return Place{Local: NoLocalID}, false
	}
	term := &f.BlockAt(loc.Block).Term
	if !term.Call.HasDest {
		return Place{Local: NoLocalID}, false
	}
	return term.Call.Dest, true
}
