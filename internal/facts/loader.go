package facts

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Fact files are whitespace-separated tuples, one per line, one file per
// relation, as exported by the host compiler next to the function's MIR:
//
//	borrow_region.facts    '_#2r bw0 "Mid(bb0[0])"
//	outlives.facts         '_#2r '_#3r "Mid(bb0[0])"
//	region_live_at.facts   '_#2r "Start(bb0[1])"
//	universal_region.facts '_#0r
//	cfg_edge.facts         "Start(bb0[0])" "Mid(bb0[0])"
const (
	fileBorrowRegion    = "borrow_region.facts"
	fileOutlives        = "outlives.facts"
	fileRegionLiveAt    = "region_live_at.facts"
	fileUniversalRegion = "universal_region.facts"
	fileCFGEdge         = "cfg_edge.facts"
)

// LoadInput reads all input relations from dir, interning every point it
// encounters. Any missing or malformed file is an error: a partial fact set
// would make the report mislead.
func LoadInput(dir string, interner *Interner) (*Input, error) {
	in := NewInput()

	err := eachTuple(filepath.Join(dir, fileBorrowRegion), 3, func(fields []string) error {
		region, err := parseRegion(fields[0])
		if err != nil {
			return err
		}
		loan, err := parseLoan(fields[1])
		if err != nil {
			return err
		}
		point, err := ParsePoint(fields[2])
		if err != nil {
			return err
		}
		in.BorrowRegion = append(in.BorrowRegion, BorrowRegionFact{
			Region: region,
			Loan:   loan,
			Point:  interner.Intern(point),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = eachTuple(filepath.Join(dir, fileOutlives), 3, func(fields []string) error {
		r1, err := parseRegion(fields[0])
		if err != nil {
			return err
		}
		r2, err := parseRegion(fields[1])
		if err != nil {
			return err
		}
		point, err := ParsePoint(fields[2])
		if err != nil {
			return err
		}
		in.Outlives = append(in.Outlives, OutlivesFact{R1: r1, R2: r2, Point: interner.Intern(point)})
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = eachTuple(filepath.Join(dir, fileRegionLiveAt), 2, func(fields []string) error {
		region, err := parseRegion(fields[0])
		if err != nil {
			return err
		}
		point, err := ParsePoint(fields[1])
		if err != nil {
			return err
		}
		in.RegionLiveAt = append(in.RegionLiveAt, RegionLiveFact{Region: region, Point: interner.Intern(point)})
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = eachTuple(filepath.Join(dir, fileUniversalRegion), 1, func(fields []string) error {
		region, err := parseRegion(fields[0])
		if err != nil {
			return err
		}
		in.UniversalRegion[region] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = eachTuple(filepath.Join(dir, fileCFGEdge), 2, func(fields []string) error {
		from, err := ParsePoint(fields[0])
		if err != nil {
			return err
		}
		to, err := ParsePoint(fields[1])
		if err != nil {
			return err
		}
		in.CFGEdge = append(in.CFGEdge, CFGEdgeFact{From: interner.Intern(from), To: interner.Intern(to)})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return in, nil
}

// eachTuple feeds every non-blank line of path, split on whitespace, to fn.
// The arity of every tuple is checked before fn runs.
func eachTuple(path string, arity int, fn func(fields []string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open fact file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != arity {
			return fmt.Errorf("%s:%d: expected %d fields, got %d", path, lineNo, arity, len(fields))
		}
		if err := fn(fields); err != nil {
			return fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return nil
}

// parseRegion accepts the rendered form '_#3r as well as a bare number.
func parseRegion(tok string) (Region, error) {
	s := strings.Trim(tok, `"`)
	s = strings.TrimPrefix(s, "'_#")
	s = strings.TrimSuffix(s, "r")
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed region %q", tok)
	}
	return Region(n), nil
}

// parseLoan accepts the rendered form bw3 as well as a bare number.
func parseLoan(tok string) (Loan, error) {
	s := strings.Trim(tok, `"`)
	s = strings.TrimPrefix(s, "bw")
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed loan %q", tok)
	}
	return Loan(n), nil
}
