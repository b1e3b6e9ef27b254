package facts

import "mirdump/internal/mir"

// Region is an opaque lifetime id assigned by the host compiler.
type Region uint64

// Loan is an opaque borrow-event id. Synthetic loans minted by fact
// completion continue past the largest input id and are never reused within
// a run.
type Loan uint64

// BorrowRegionFact records that a loan is created for a region at a point.
type BorrowRegionFact struct {
	Region Region
	Loan   Loan
	Point  PointIndex
}

// OutlivesFact records the constraint R1: R2 at a point.
type OutlivesFact struct {
	R1    Region
	R2    Region
	Point PointIndex
}

// RegionLiveFact is a region-liveness seed at a point.
type RegionLiveFact struct {
	Region Region
	Point  PointIndex
}

// CFGEdgeFact is a point-granularity control-flow edge.
type CFGEdgeFact struct {
	From PointIndex
	To   PointIndex
}

// Input holds the relations fed to the solver. Completion appends to
// BorrowRegion and never removes or overwrites tuples.
type Input struct {
	BorrowRegion    []BorrowRegionFact
	Outlives        []OutlivesFact
	RegionLiveAt    []RegionLiveFact
	CFGEdge         []CFGEdgeFact
	UniversalRegion map[Region]struct{}
}

func NewInput() *Input {
	return &Input{UniversalRegion: make(map[Region]struct{})}
}

// IsUniversal reports whether r is visible across the function boundary.
func (in *Input) IsUniversal(r Region) bool {
	_, ok := in.UniversalRegion[r]
	return ok
}

// MaxLoan returns the largest loan id in the store, or 0 when there are no
// loan-creation facts.
func (in *Input) MaxLoan() Loan {
	var max Loan
	for _, f := range in.BorrowRegion {
		if f.Loan > max {
			max = f.Loan
		}
	}
	return max
}

// HasBorrowRegionAt reports whether any loan-creation fact exists at the
// point.
func (in *Input) HasBorrowRegionAt(p PointIndex) bool {
	for _, f := range in.BorrowRegion {
		if f.Point == p {
			return true
		}
	}
	return false
}

// Output holds the solver result: the loans live at each point. Written
// once after the solve, never mutated afterwards.
type Output struct {
	BorrowLiveAt map[PointIndex][]Loan
}

// LiveLoans returns the loans live at p, nil when the point is absent.
func (out *Output) LiveLoans(p PointIndex) []Loan {
	if out == nil || out.BorrowLiveAt == nil {
		return nil
	}
	return out.BorrowLiveAt[p]
}

// VarRegions maps each local to the region occurring in its type, at most
// one region per local.
type VarRegions map[mir.LocalID]Region
