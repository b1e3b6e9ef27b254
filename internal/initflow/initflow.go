// Package initflow exposes the definitely-initialized result the host
// compiler computed for the analyzed function. This tool only queries it,
// per block and per statement; the dataflow itself is never recomputed here.
package initflow

import (
	"slices"

	"mirdump/internal/mir"
)

// PlaceSet is a set of rendered storage locations, kept sorted.
type PlaceSet []string

// Result answers the two queries the renderer needs.
type Result struct {
	before map[mir.BlockID]PlaceSet
	after  map[mir.BlockID][]PlaceSet
}

// FromSnapshot adopts the sets carried by a function snapshot.
func FromSnapshot(snap *mir.Snapshot) *Result {
	r := &Result{
		before: make(map[mir.BlockID]PlaceSet, len(snap.InitBefore)),
		after:  make(map[mir.BlockID][]PlaceSet, len(snap.InitAfter)),
	}
	for block, places := range snap.InitBefore {
		r.before[block] = sorted(places)
	}
	for block, perStmt := range snap.InitAfter {
		sets := make([]PlaceSet, len(perStmt))
		for i, places := range perStmt {
			sets[i] = sorted(places)
		}
		r.after[block] = sets
	}
	return r
}

// BeforeBlock returns the places definitely initialized on entry to the
// block. Unknown blocks yield the empty set.
func (r *Result) BeforeBlock(block mir.BlockID) PlaceSet {
	return r.before[block]
}

// AfterStatement returns the places definitely initialized after the
// statement (or terminator) at loc. Unknown locations yield the empty set.
func (r *Result) AfterStatement(loc mir.Location) PlaceSet {
	sets := r.after[loc.Block]
	if loc.Statement < 0 || loc.Statement >= len(sets) {
		return nil
	}
	return sets[loc.Statement]
}

func sorted(places []string) PlaceSet {
	out := slices.Clone(places)
	slices.Sort(out)
	return PlaceSet(out)
}
