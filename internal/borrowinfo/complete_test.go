package borrowinfo

import (
	"testing"

	"mirdump/internal/facts"
	"mirdump/internal/mir"
)

// callFunc is bb0: `_1 = f() -> bb1` followed by bb1: `return`.
func callFunc() *mir.Func {
	return &mir.Func{
		Name:    "caller",
		DefPath: "crate::caller",
		Locals:  []mir.Local{{Name: ""}, {Name: "r", Type: "&i32"}},
		Blocks: []mir.Block{
			{
				ID: 0,
				Term: mir.Terminator{
					Kind: mir.TermCall,
					Call: mir.CallTerm{
						Func:    "f",
						HasDest: true,
						Dest:    mir.Place{Local: 1},
						Target:  1,
						Cleanup: mir.NoBlockID,
					},
				},
			},
			{ID: 1, Term: mir.Terminator{Kind: mir.TermReturn}},
		},
	}
}

// assignFunc is bb0: `_2 = &_1; goto bb1` followed by bb1: `return`.
func assignFunc() *mir.Func {
	return &mir.Func{
		Name:    "ref_move",
		DefPath: "crate::ref_move",
		Locals: []mir.Local{
			{Name: ""},
			{Name: "x", Type: "i32"},
			{Name: "y", Type: "&i32"},
		},
		Blocks: []mir.Block{
			{
				ID: 0,
				Statements: []mir.Statement{
					{Kind: mir.StmtAssign, Dst: mir.Place{Local: 2}, Src: "&_1"},
				},
				Term: mir.Terminator{Kind: mir.TermGoto, Goto: mir.GotoTerm{Target: 1}},
			},
			{ID: 1, Term: mir.Terminator{Kind: mir.TermReturn}},
		},
	}
}

func midPoint(interner *facts.Interner, block mir.BlockID, stmt int) facts.PointIndex {
	return interner.Intern(facts.Point{
		Loc:   mir.Location{Block: block, Statement: stmt},
		Phase: facts.PhaseMid,
	})
}

func TestCompleteCallDestinationAndArguments(t *testing.T) {
	fn := callFunc()
	interner := facts.NewInterner()
	in := facts.NewInput()

	// One unrelated loan so the counter has to continue past it.
	elsewhere := midPoint(interner, 1, 0)
	in.BorrowRegion = append(in.BorrowRegion, facts.BorrowRegionFact{Region: 9, Loan: 5, Point: elsewhere})

	callMid := midPoint(interner, 0, 0)
	in.Outlives = append(in.Outlives,
		facts.OutlivesFact{R1: 4, R2: 5, Point: callMid},
		facts.OutlivesFact{R1: 2, R2: 3, Point: callMid},
	)

	varRegions := facts.VarRegions{1: 7}
	wands := make(map[facts.Loan]mir.LocalID)
	refMoves, argMoves := completeFacts(in, interner, fn, varRegions, wands)

	if len(refMoves) != 0 {
		t.Errorf("reference moves at a call: %v, want none", refMoves)
	}
	if len(argMoves) != 2 {
		t.Fatalf("argument moves: %v, want 2", argMoves)
	}

	// Exactly one destination loan, recorded in the magic wand map.
	if len(wands) != 1 {
		t.Fatalf("CallMagicWands = %v, want exactly one entry", wands)
	}
	for loan, local := range wands {
		if local != 1 {
			t.Errorf("magic wand local = _%d, want _1", local)
		}
		if loan != 6 {
			t.Errorf("destination loan = bw%d, want bw6 (continues past max input id)", loan)
		}
	}

	// Destination loan first, then one argument loan per pair in
	// (region1, region2) order.
	added := in.BorrowRegion[1:]
	if len(added) != 3 {
		t.Fatalf("added %d facts, want 3", len(added))
	}
	wantRegions := []facts.Region{7, 2, 4}
	wantLoans := []facts.Loan{6, 7, 8}
	for i, f := range added {
		if f.Point != callMid {
			t.Errorf("fact %d minted at point %d, want %d", i, f.Point, callMid)
		}
		if f.Region != wantRegions[i] || f.Loan != wantLoans[i] {
			t.Errorf("fact %d = (region %d, loan %d), want (region %d, loan %d)",
				i, f.Region, f.Loan, wantRegions[i], wantLoans[i])
		}
	}
}

func TestCompleteCallWithoutDestinationRegion(t *testing.T) {
	fn := callFunc()
	interner := facts.NewInterner()
	in := facts.NewInput()
	callMid := midPoint(interner, 0, 0)
	in.Outlives = append(in.Outlives, facts.OutlivesFact{R1: 2, R2: 3, Point: callMid})

	wands := make(map[facts.Loan]mir.LocalID)
	_, argMoves := completeFacts(in, interner, fn, facts.VarRegions{}, wands)

	if len(wands) != 0 {
		t.Errorf("destination loan minted without a destination region: %v", wands)
	}
	if len(argMoves) != 1 {
		t.Errorf("argument moves: %v, want 1", argMoves)
	}
}

func TestCompleteAssignmentPicksLastPair(t *testing.T) {
	fn := assignFunc()
	interner := facts.NewInterner()
	in := facts.NewInput()
	assignMid := midPoint(interner, 0, 0)
	// Deliberately unsorted; the chosen pair must be the lexicographically
	// last one, (6, 4), regardless of input order.
	in.Outlives = append(in.Outlives,
		facts.OutlivesFact{R1: 6, R2: 4, Point: assignMid},
		facts.OutlivesFact{R1: 2, R2: 9, Point: assignMid},
	)

	refMoves, argMoves := completeFacts(in, interner, fn, facts.VarRegions{}, make(map[facts.Loan]mir.LocalID))
	if len(argMoves) != 0 {
		t.Errorf("argument moves at an assignment: %v, want none", argMoves)
	}
	if len(refMoves) != 1 {
		t.Fatalf("reference moves: %v, want 1", refMoves)
	}
	if len(in.BorrowRegion) != 1 {
		t.Fatalf("added %d facts, want 1", len(in.BorrowRegion))
	}
	if got := in.BorrowRegion[0].Region; got != 4 {
		t.Errorf("minted loan for region %d, want 4 (second region of the last pair)", got)
	}
	if got := in.BorrowRegion[0].Loan; got != 1 {
		t.Errorf("minted loan id bw%d, want bw1", got)
	}
}

func TestCompleteSkipsPointsWithExistingFacts(t *testing.T) {
	fn := assignFunc()
	interner := facts.NewInterner()
	in := facts.NewInput()
	assignMid := midPoint(interner, 0, 0)
	in.BorrowRegion = append(in.BorrowRegion, facts.BorrowRegionFact{Region: 4, Loan: 0, Point: assignMid})
	in.Outlives = append(in.Outlives, facts.OutlivesFact{R1: 2, R2: 3, Point: assignMid})

	refMoves, argMoves := completeFacts(in, interner, fn, facts.VarRegions{}, make(map[facts.Loan]mir.LocalID))
	if len(refMoves)+len(argMoves) != 0 || len(in.BorrowRegion) != 1 {
		t.Errorf("completion touched a point that already has a loan-creation fact: %d facts, moves %v/%v",
			len(in.BorrowRegion), refMoves, argMoves)
	}
}

func TestCompleteIgnoresUniversalPairs(t *testing.T) {
	fn := assignFunc()
	interner := facts.NewInterner()
	in := facts.NewInput()
	in.UniversalRegion[0] = struct{}{}
	assignMid := midPoint(interner, 0, 0)
	in.Outlives = append(in.Outlives,
		facts.OutlivesFact{R1: 0, R2: 3, Point: assignMid},
		facts.OutlivesFact{R1: 2, R2: 0, Point: assignMid},
	)

	refMoves, argMoves := completeFacts(in, interner, fn, facts.VarRegions{}, make(map[facts.Loan]mir.LocalID))
	if len(refMoves)+len(argMoves) != 0 || len(in.BorrowRegion) != 0 {
		t.Error("completion synthesized loans from pairs touching a universal region")
	}
}

func TestCompleteIsIdempotent(t *testing.T) {
	fn := assignFunc()
	interner := facts.NewInterner()
	in := facts.NewInput()
	assignMid := midPoint(interner, 0, 0)
	in.Outlives = append(in.Outlives, facts.OutlivesFact{R1: 2, R2: 3, Point: assignMid})

	completeFacts(in, interner, fn, facts.VarRegions{}, make(map[facts.Loan]mir.LocalID))
	before := len(in.BorrowRegion)

	refMoves, argMoves := completeFacts(in, interner, fn, facts.VarRegions{}, make(map[facts.Loan]mir.LocalID))
	if len(in.BorrowRegion) != before || len(refMoves)+len(argMoves) != 0 {
		t.Errorf("second completion run added facts: %d -> %d", before, len(in.BorrowRegion))
	}
}

func TestCompleteToleratesOutOfRangeLocations(t *testing.T) {
	fn := assignFunc()
	interner := facts.NewInterner()
	in := facts.NewInput()

	// Locations a corrupt fact file could still smuggle in: a statement index
	// past the block end, a negative index, and a block the CFG does not have.
	for _, loc := range []mir.Location{
		{Block: 0, Statement: 7},
		{Block: 0, Statement: -1},
		{Block: 9, Statement: 0},
	} {
		point := interner.Intern(facts.Point{Loc: loc, Phase: facts.PhaseMid})
		in.Outlives = append(in.Outlives, facts.OutlivesFact{R1: 2, R2: 3, Point: point})
	}

	refMoves, argMoves := completeFacts(in, interner, fn, facts.VarRegions{}, make(map[facts.Loan]mir.LocalID))
	if len(refMoves)+len(argMoves) != 0 || len(in.BorrowRegion) != 0 {
		t.Errorf("completion minted loans at locations outside the CFG: %d facts", len(in.BorrowRegion))
	}
}
