package borrowinfo

import (
	"slices"

	"mirdump/internal/facts"
	"mirdump/internal/mir"
)

type outlivesPair struct {
	r1 facts.Region
	r2 facts.Region
}

// completeFacts synthesizes the loan-creation facts the upstream analyzer
// omits for reference moves and call arguments/destinations. It only appends
// to in.BorrowRegion; running it on an already-completed store adds nothing,
// because every candidate point then carries a loan-creation fact.
//
// Returns the loans minted for reference moves and for argument moves.
func completeFacts(
	in *facts.Input,
	interner *facts.Interner,
	fn *mir.Func,
	varRegions facts.VarRegions,
	callMagicWands map[facts.Loan]mir.LocalID,
) (refMoves, argMoves []facts.Loan) {
	nextLoan := in.MaxLoan() + 1

	// Group outlives tuples by point, dropping pairs that touch a universal
	// region: those describe the function boundary, not a local borrow.
	outlivesAt := make(map[facts.PointIndex][]outlivesPair)
	for _, f := range in.Outlives {
		if in.IsUniversal(f.R1) || in.IsUniversal(f.R2) {
			continue
		}
		outlivesAt[f.Point] = append(outlivesAt[f.Point], outlivesPair{r1: f.R1, r2: f.R2})
	}

	// Walk points in program order so minted loan ids are deterministic.
	points := make([]facts.PointIndex, 0, len(outlivesAt))
	for p := range outlivesAt {
		points = append(points, p)
	}
	slices.SortFunc(points, func(a, b facts.PointIndex) int {
		return interner.MustPoint(a).Compare(interner.MustPoint(b))
	})

	for _, point := range points {
		if in.HasBorrowRegionAt(point) {
			continue
		}
		pairs := outlivesAt[point]
		sortPairs(pairs)
		loc := interner.MustPoint(point).Loc

		switch {
		case fn.IsCall(loc):
			if dest, ok := fn.CallDestination(loc); ok && dest.IsPlainLocal() {
				if destRegion, ok := varRegions[dest.Local]; ok {
					loan := nextLoan
					nextLoan++
					in.BorrowRegion = append(in.BorrowRegion, facts.BorrowRegionFact{
						Region: destRegion,
						Loan:   loan,
						Point:  point,
					})
					callMagicWands[loan] = dest.Local
				}
			}
			// Every argument that moves a reference into the callee gets its
			// own loan for the argument's region.
			for _, pair := range pairs {
				loan := nextLoan
				nextLoan++
				in.BorrowRegion = append(in.BorrowRegion, facts.BorrowRegionFact{
					Region: pair.r1,
					Loan:   loan,
					Point:  point,
				})
				argMoves = append(argMoves, loan)
			}

		case fn.IsAssignment(loc):
			// One loan for the moved reference. The pair choice is the
			// lexicographically last (region1, region2) tuple.
			pair := pairs[len(pairs)-1]
			loan := nextLoan
			nextLoan++
			in.BorrowRegion = append(in.BorrowRegion, facts.BorrowRegionFact{
				Region: pair.r2,
				Loan:   loan,
				Point:  point,
			})
			refMoves = append(refMoves, loan)
		}
	}
	return refMoves, argMoves
}

func sortPairs(pairs []outlivesPair) {
	slices.SortFunc(pairs, func(a, b outlivesPair) int {
		if a.r1 != b.r1 {
			if a.r1 < b.r1 {
				return -1
			}
			return 1
		}
		if a.r2 != b.r2 {
			if a.r2 < b.r2 {
				return -1
			}
			return 1
		}
		return 0
	})
}
