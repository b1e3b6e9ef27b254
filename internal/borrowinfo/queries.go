package borrowinfo

import (
	"fmt"
	"slices"

	"mirdump/internal/facts"
	"mirdump/internal/mir"
)

// RegionLoan is one loan-creation fact projected to (region, loan).
type RegionLoan struct {
	Region facts.Region
	Loan   facts.Loan
}

// RegionVar is a live region together with the local owning it, when one
// exists.
type RegionVar struct {
	Region   facts.Region
	Local    mir.LocalID
	HasLocal bool
}

// LiveLoansAt returns the loans live at (loc, phase), sorted. A point absent
// from the solver output, or never interned at all, yields an empty result:
// nothing was live there.
func (i *Info) LiveLoansAt(loc mir.Location, phase facts.Phase) []facts.Loan {
	point, ok := i.Interner.Find(facts.Point{Loc: loc, Phase: phase})
	if !ok {
		return nil
	}
	loans := slices.Clone(i.Output.LiveLoans(point))
	slices.Sort(loans)
	return loans
}

// BorrowRegionsAt returns the loan-creation facts recorded exactly at
// (loc, phase), sorted by (region, loan).
func (i *Info) BorrowRegionsAt(loc mir.Location, phase facts.Phase) []RegionLoan {
	point, ok := i.Interner.Find(facts.Point{Loc: loc, Phase: phase})
	if !ok {
		return nil
	}
	var out []RegionLoan
	for _, f := range i.Input.BorrowRegion {
		if f.Point == point {
			out = append(out, RegionLoan{Region: f.Region, Loan: f.Loan})
		}
	}
	slices.SortFunc(out, func(a, b RegionLoan) int {
		if a.Region != b.Region {
			if a.Region < b.Region {
				return -1
			}
			return 1
		}
		if a.Loan != b.Loan {
			if a.Loan < b.Loan {
				return -1
			}
			return 1
		}
		return 0
	})
	return out
}

// RegionsLiveAt returns the regions live at (loc, phase) with their owning
// locals resolved, sorted by region.
func (i *Info) RegionsLiveAt(loc mir.Location, phase facts.Phase) []RegionVar {
	point, ok := i.Interner.Find(facts.Point{Loc: loc, Phase: phase})
	if !ok {
		return nil
	}
	var out []RegionVar
	for _, f := range i.Input.RegionLiveAt {
		if f.Point != point {
			continue
		}
		rv := RegionVar{Region: f.Region}
		if local, ok := i.FindVariable(f.Region); ok {
			rv.Local = local
			rv.HasLocal = true
		}
		out = append(out, rv)
	}
	slices.SortFunc(out, func(a, b RegionVar) int {
		if a.Region < b.Region {
			return -1
		}
		if a.Region > b.Region {
			return 1
		}
		return 0
	})
	return out
}

// FindVariable returns the local whose type carries the given region. The
// region-to-variable direction must be injective: two locals mapping to one
// region means the loaded fact set contradicts itself, and any answer would
// mislead, so that case panics.
func (i *Info) FindVariable(region facts.Region) (mir.LocalID, bool) {
	found := mir.NoLocalID
	for local, r := range i.VarRegions {
		if r != region {
			continue
		}
		if found != mir.NoLocalID {
			panic(fmt.Sprintf("borrowinfo: region %d is owned by both _%d and _%d", region, found, local))
		}
		found = local
	}
	return found, found != mir.NoLocalID
}
