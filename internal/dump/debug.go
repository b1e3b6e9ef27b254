package dump

import (
	"bufio"
	"fmt"
	"os"
	"slices"

	"mirdump/internal/borrowinfo"
	"mirdump/internal/facts"
	"mirdump/internal/mir"
)

// WriteDebug writes the completed fact set for one function as plain text,
// for inspecting what completion synthesized and what the solver derived.
// Only emitted when debug_info is enabled.
func WriteDebug(path string, fn *mir.Func, info *borrowinfo.Info) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create debug listing %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close debug listing %s: %w", path, cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "function %s\n", fn.DefPath)

	fmt.Fprintf(w, "\nsynthesized loans: %d reference moves, %d argument moves\n",
		len(info.ReferenceMoves), len(info.ArgumentMoves))
	if len(info.ReferenceMoves) > 0 {
		fmt.Fprintf(w, "  reference moves: %s\n", loansCell(info.ReferenceMoves))
	}
	if len(info.ArgumentMoves) > 0 {
		fmt.Fprintf(w, "  argument moves:  %s\n", loansCell(info.ArgumentMoves))
	}

	wands := make([]facts.Loan, 0, len(info.CallMagicWands))
	for loan := range info.CallMagicWands {
		wands = append(wands, loan)
	}
	slices.Sort(wands)
	fmt.Fprintf(w, "\ncall magic wands: %d\n", len(wands))
	for _, loan := range wands {
		fmt.Fprintf(w, "  %s -> _%d\n", formatLoan(loan), info.CallMagicWands[loan])
	}

	fmt.Fprintf(w, "\nborrow_region: %d\n", len(info.Input.BorrowRegion))
	for _, fact := range sortedBorrowRegion(info) {
		fmt.Fprintf(w, "  %s %s %s\n",
			formatRegion(fact.Region), formatLoan(fact.Loan), info.Interner.MustPoint(fact.Point))
	}

	points := make([]facts.PointIndex, 0, len(info.Output.BorrowLiveAt))
	for p := range info.Output.BorrowLiveAt {
		points = append(points, p)
	}
	slices.SortFunc(points, func(a, b facts.PointIndex) int {
		return info.Interner.MustPoint(a).Compare(info.Interner.MustPoint(b))
	})
	fmt.Fprintf(w, "\nborrow_live_at: %d points\n", len(points))
	for _, p := range points {
		loans := slices.Clone(info.Output.BorrowLiveAt[p])
		slices.Sort(loans)
		fmt.Fprintf(w, "  %s: %s\n", info.Interner.MustPoint(p), loansCell(loans))
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write debug listing %s: %w", path, err)
	}
	return nil
}

func sortedBorrowRegion(info *borrowinfo.Info) []facts.BorrowRegionFact {
	out := slices.Clone(info.Input.BorrowRegion)
	slices.SortFunc(out, func(a, b facts.BorrowRegionFact) int {
		if c := info.Interner.MustPoint(a.Point).Compare(info.Interner.MustPoint(b.Point)); c != 0 {
			return c
		}
		switch {
		case a.Loan < b.Loan:
			return -1
		case a.Loan > b.Loan:
			return 1
		}
		return 0
	})
	return out
}
