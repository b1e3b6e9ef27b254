package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"mirdump/internal/borrowinfo"
	"mirdump/internal/facts"
)

// CheckFactInvariants runs the structural invariants a completed fact set
// must satisfy:
// 1) loan ids are pairwise distinct across all loan-creation facts
// 2) every point referenced by a fact resolves through the interner
// 3) the interner is a bijection over the indices it issued
func CheckFactInvariants(info *borrowinfo.Info) error {
	if info == nil || info.Input == nil || info.Interner == nil {
		return fmt.Errorf("nil info, input or interner")
	}

	seen := make(map[facts.Loan]int, len(info.Input.BorrowRegion))
	for i, f := range info.Input.BorrowRegion {
		if prev, dup := seen[f.Loan]; dup {
			return fmt.Errorf("loan bw%d created twice (facts %d and %d)", f.Loan, prev, i)
		}
		seen[f.Loan] = i
		if !info.Interner.Has(f.Point) {
			return fmt.Errorf("borrow_region fact %d references unissued point %d", i, f.Point)
		}
	}
	for i, f := range info.Input.Outlives {
		if !info.Interner.Has(f.Point) {
			return fmt.Errorf("outlives fact %d references unissued point %d", i, f.Point)
		}
	}
	for i, f := range info.Input.RegionLiveAt {
		if !info.Interner.Has(f.Point) {
			return fmt.Errorf("region_live_at fact %d references unissued point %d", i, f.Point)
		}
	}

	for i := 0; i < info.Interner.Len(); i++ {
		idx, err := safecast.Conv[facts.PointIndex](i)
		if err != nil {
			return fmt.Errorf("point index overflow: %w", err)
		}
		p, ok := info.Interner.Lookup(idx)
		if !ok {
			return fmt.Errorf("interner lost index %d", idx)
		}
		back, ok := info.Interner.Find(p)
		if !ok || back != idx {
			return fmt.Errorf("interner is not a bijection at %s: %d -> %d", p, idx, back)
		}
	}
	return nil
}
