package dump

import (
	"fmt"
	"strings"

	"mirdump/internal/borrowinfo"
	"mirdump/internal/facts"
	"mirdump/internal/initflow"
	"mirdump/internal/mir"
)

// escape makes a string safe inside a graphviz HTML-like label.
func escape(s string) string {
	replacer := strings.NewReplacer(
		"{", "\\{",
		"}", "\\}",
		"&", "&amp;",
		">", "&gt;",
		"<", "&lt;",
		"\n", "<br/>",
	)
	return replacer.Replace(s)
}

func formatRegion(r facts.Region) string {
	return fmt.Sprintf("'_#%dr", r)
}

func formatLoan(l facts.Loan) string {
	return fmt.Sprintf("bw%d", l)
}

func loansCell(loans []facts.Loan) string {
	parts := make([]string, len(loans))
	for i, l := range loans {
		parts[i] = formatLoan(l)
	}
	return strings.Join(parts, ", ")
}

func borrowRegionsCell(pairs []borrowinfo.RegionLoan) string {
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = fmt.Sprintf("(%s, %s)", formatRegion(p.Region), formatLoan(p.Loan))
	}
	return strings.Join(parts, ", ")
}

func regionsCell(fn *mir.Func, regions []borrowinfo.RegionVar) string {
	parts := make([]string, len(regions))
	for i, rv := range regions {
		owner := "?"
		if rv.HasLocal {
			owner = fn.LocalLabel(rv.Local)
		}
		parts[i] = fmt.Sprintf("(%s, %s)", formatRegion(rv.Region), owner)
	}
	return strings.Join(parts, ", ")
}

func joinPlaces(set initflow.PlaceSet) string {
	return strings.Join(set, ", ")
}

// FilenameFriendly maps a fully qualified function path to a directory name
// safe on every platform: path separators and "::" become "-", anything
// outside [A-Za-z0-9_.-] becomes "_".
func FilenameFriendly(defPath string) string {
	out := strings.ReplaceAll(defPath, "::", "-")
	var b strings.Builder
	b.Grow(len(out))
	for _, c := range out {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9',
			c == '_', c == '.', c == '-':
			b.WriteRune(c)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
