package mir

type Block struct {
	ID         BlockID
	Statements []Statement
	Term       Terminator
}

// TerminatorIndex is the statement index that addresses this block's
// terminator.
func (b *Block) TerminatorIndex() int {
	return len(b.Statements)
}
