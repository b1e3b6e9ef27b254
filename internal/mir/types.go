package mir

type BlockID int32
type LocalID int32

const (
	NoBlockID BlockID = -1
	NoLocalID LocalID = -1
)

// Local is one function-local slot, including temporaries introduced by the
// host compiler. Name is empty for temporaries.
type Local struct {
	Name string
	Type string
}

// Place is a storage location: a local plus rendered projections
// ("*", ".0", "[_3]"). Facts only ever attach to plain locals.
type Place struct {
	Local LocalID
	Proj  []string
}

// IsPlainLocal reports whether the place is a bare local without projections.
func (p Place) IsPlainLocal() bool {
	return p.Local != NoLocalID && len(p.Proj) == 0
}

func (p Place) IsValid() bool {
	return p.Local != NoLocalID
}

// Location addresses one statement inside a function. A statement index equal
// to the block's statement count addresses the terminator.
type Location struct {
	Block     BlockID
	Statement int
}

// Compare orders locations by (block, statement index).
func (l Location) Compare(o Location) int {
	if l.Block != o.Block {
		if l.Block < o.Block {
			return -1
		}
		return 1
	}
	if l.Statement != o.Statement {
		if l.Statement < o.Statement {
			return -1
		}
		return 1
	}
	return 0
}
