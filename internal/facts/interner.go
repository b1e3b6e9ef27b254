package facts

import (
	"fmt"

	"fortio.org/safecast"
)

// PointIndex is the dense interned id of a program point. Ids are stable for
// one analysis run and never renumbered.
type PointIndex uint32

// Interner maps program points to dense indices and back. One interner per
// analyzed function; never shared across functions.
type Interner struct {
	byIndex []Point
	index   map[Point]PointIndex
}

func NewInterner() *Interner {
	return &Interner{
		index: make(map[Point]PointIndex),
	}
}

// Intern returns the index of p, issuing a fresh one on first sight.
// Interning the same point twice returns the same index.
func (i *Interner) Intern(p Point) PointIndex {
	if idx, ok := i.index[p]; ok {
		return idx
	}
	idx, err := safecast.Conv[PointIndex](len(i.byIndex))
	if err != nil {
		panic(fmt.Sprintf("facts: point index overflow: %v", err))
	}
	i.byIndex = append(i.byIndex, p)
	i.index[p] = idx
	return idx
}

// Find returns the index of p without interning it. ok is false when p was
// never seen; frozen consumers use this so queries cannot mint new points.
func (i *Interner) Find(p Point) (PointIndex, bool) {
	idx, ok := i.index[p]
	return idx, ok
}

// Lookup returns the point for idx. ok is false for indices never issued.
func (i *Interner) Lookup(idx PointIndex) (Point, bool) {
	if !i.Has(idx) {
		return Point{}, false
	}
	return i.byIndex[idx], true
}

// MustPoint returns the point for idx. Resolving an index that was never
// issued means the fact set is self-contradictory, so it panics.
func (i *Interner) MustPoint(idx PointIndex) Point {
	p, ok := i.Lookup(idx)
	if !ok {
		panic(fmt.Sprintf("facts: point index %d was never interned", idx))
	}
	return p
}

// Has reports whether idx was issued by this interner.
func (i *Interner) Has(idx PointIndex) bool {
	return int(idx) < len(i.byIndex)
}

// Len returns the number of interned points.
func (i *Interner) Len() int {
	return len(i.byIndex)
}
