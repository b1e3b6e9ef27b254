// Package solver carries the bundled fixed-point evaluator. The analysis
// core treats the evaluator as an external pure function; this naive
// implementation exists so the tool works without a separate engine and can
// be swapped out through borrowinfo.SolveFunc.
package solver

import (
	"slices"

	"mirdump/internal/facts"
)

type requirement struct {
	region facts.Region
	loan   facts.Loan
	point  facts.PointIndex
}

// Naive derives loan liveness by repeated rule application to a stable
// state:
//
//	requires(R, L, P)  <- borrow_region(R, L, P)
//	requires(R2, L, P) <- requires(R1, L, P), outlives(R1, R2, P)
//	requires(R, L, Q)  <- requires(R, L, P), cfg_edge(P, Q), region_live_at(R, Q)
//	borrow_live_at(L, P) <- requires(R, L, P), region_live_at(R, P)
//
// Evaluation is non-incremental and monotone: every round only adds tuples.
func Naive(in *facts.Input) (*facts.Output, error) {
	outlivesAt := make(map[facts.PointIndex][]facts.OutlivesFact)
	for _, f := range in.Outlives {
		outlivesAt[f.Point] = append(outlivesAt[f.Point], f)
	}
	succs := make(map[facts.PointIndex][]facts.PointIndex)
	for _, e := range in.CFGEdge {
		succs[e.From] = append(succs[e.From], e.To)
	}
	liveAt := make(map[facts.PointIndex]map[facts.Region]struct{})
	for _, f := range in.RegionLiveAt {
		set := liveAt[f.Point]
		if set == nil {
			set = make(map[facts.Region]struct{})
			liveAt[f.Point] = set
		}
		set[f.Region] = struct{}{}
	}

	requires := make(map[requirement]struct{})
	var worklist []requirement
	add := func(r requirement) {
		if _, seen := requires[r]; seen {
			return
		}
		requires[r] = struct{}{}
		worklist = append(worklist, r)
	}

	for _, f := range in.BorrowRegion {
		add(requirement{region: f.Region, loan: f.Loan, point: f.Point})
	}

	for len(worklist) > 0 {
		r := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		for _, o := range outlivesAt[r.point] {
			if o.R1 == r.region {
				add(requirement{region: o.R2, loan: r.loan, point: r.point})
			}
		}
		for _, next := range succs[r.point] {
			if _, live := liveAt[next][r.region]; live {
				add(requirement{region: r.region, loan: r.loan, point: next})
			}
		}
	}

	live := make(map[facts.PointIndex]map[facts.Loan]struct{})
	for r := range requires {
		if _, ok := liveAt[r.point][r.region]; !ok {
			continue
		}
		set := live[r.point]
		if set == nil {
			set = make(map[facts.Loan]struct{})
			live[r.point] = set
		}
		set[r.loan] = struct{}{}
	}

	out := &facts.Output{BorrowLiveAt: make(map[facts.PointIndex][]facts.Loan, len(live))}
	for point, loans := range live {
		sorted := make([]facts.Loan, 0, len(loans))
		for loan := range loans {
			sorted = append(sorted, loan)
		}
		slices.Sort(sorted)
		out.BorrowLiveAt[point] = sorted
	}
	return out, nil
}
