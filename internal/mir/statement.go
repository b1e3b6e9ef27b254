package mir

type StatementKind uint8

const (
	StmtNop StatementKind = iota
	StmtAssign
	StmtStorageLive
	StmtStorageDead
)

// Statement is one non-terminator MIR statement. Assign carries the
// destination place and the rendered right-hand side; the storage markers
// carry the affected local.
type Statement struct {
	Kind StatementKind

	Dst   Place  // StmtAssign
	Src   string // StmtAssign, rendered rvalue
	Local LocalID // StmtStorageLive, StmtStorageDead
}
