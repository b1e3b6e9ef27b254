// Package dump renders one function's control-flow graph, decorated with
// borrow facts and definitely-initialized sets, as a graphviz document.
package dump

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"mirdump/internal/borrowinfo"
	"mirdump/internal/facts"
	"mirdump/internal/initflow"
	"mirdump/internal/mir"
)

// Options are the rendering toggles resolved by the caller.
type Options struct {
	ShowTempVariables    bool
	ShowStatementIndices bool
}

// WriteGraph renders the report for fn into path. The renderer exclusively
// owns the output file: it is flushed and closed on success and removed when
// rendering fails, so a report is never partially valid.
func WriteGraph(path string, fn *mir.Func, info *borrowinfo.Info, init *initflow.Result, opts Options) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close report %s: %w", path, cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	r := &renderer{
		w:    bufio.NewWriter(f),
		fn:   fn,
		info: info,
		init: init,
		opts: opts,
	}
	if err := r.run(); err != nil {
		return err
	}
	if err := r.w.Flush(); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}

type renderer struct {
	w    *bufio.Writer
	fn   *mir.Func
	info *borrowinfo.Info
	init *initflow.Result
	opts Options
}

func (r *renderer) run() error {
	r.printf("digraph G {\n")
	for i := range r.fn.Blocks {
		r.block(&r.fn.Blocks[i])
	}
	if r.opts.ShowTempVariables {
		r.variablesTable()
	}
	r.printf("}\n")
	return nil
}

// block emits one record node with a row per statement plus the terminator,
// then the block's outgoing edges.
func (r *renderer) block(b *mir.Block) {
	r.printf("\"bb%d\" [ shape = \"record\"\n", b.ID)
	r.printf("label =<<table>\n")

	r.printf("<th><td>bb%d</td><td colspan=\"7\"></td><td>Definitely Initialized</td></th>\n", b.ID)
	r.printf("<th>")
	if r.opts.ShowStatementIndices {
		r.printf("<td>Nr</td>")
	}
	r.printf("<td>statement</td>")
	r.printf("<td colspan=\"2\">Loans</td>")
	r.printf("<td colspan=\"2\">Borrow Regions</td>")
	r.printf("<td colspan=\"2\">Regions</td>")
	r.printf("<td>%s</td>", escape(joinPlaces(r.init.BeforeBlock(b.ID))))
	r.printf("</th>\n")

	for idx := range b.Statements {
		r.statementRow(mir.Location{Block: b.ID, Statement: idx}, &b.Statements[idx])
	}
	r.terminatorRow(mir.Location{Block: b.ID, Statement: b.TerminatorIndex()}, &b.Term)

	r.printf("</table>> ];\n")
	r.edges(b)
}

func (r *renderer) statementRow(loc mir.Location, stmt *mir.Statement) {
	r.printf("<tr>")
	if r.opts.ShowStatementIndices {
		r.printf("<td>%d</td>", loc.Statement)
	}
	r.printf("<td>%s</td>", escape(mir.FormatStatement(stmt)))

	r.printf("<td>%s</td>", loansCell(r.info.LiveLoansAt(loc, facts.PhaseStart)))
	r.printf("<td>%s</td>", loansCell(r.info.LiveLoansAt(loc, facts.PhaseMid)))

	r.printf("<td>%s</td>", borrowRegionsCell(r.info.BorrowRegionsAt(loc, facts.PhaseStart)))
	r.printf("<td>%s</td>", borrowRegionsCell(r.info.BorrowRegionsAt(loc, facts.PhaseMid)))

	r.printf("<td>%s</td>", regionsCell(r.fn, r.info.RegionsLiveAt(loc, facts.PhaseStart)))
	r.printf("<td>%s</td>", regionsCell(r.fn, r.info.RegionsLiveAt(loc, facts.PhaseMid)))

	r.printf("<td>%s</td>", escape(joinPlaces(r.init.AfterStatement(loc))))
	r.printf("</tr>\n")
}

// terminatorRow mirrors a statement row, but only the mid-point loans carry
// information at a terminator.
func (r *renderer) terminatorRow(loc mir.Location, term *mir.Terminator) {
	r.printf("<tr>")
	if r.opts.ShowStatementIndices {
		r.printf("<td></td>")
	}
	r.printf("<td>%s</td>", escape(mir.FormatTerminator(term)))
	r.printf("<td></td>")
	r.printf("<td>%s</td>", loansCell(r.info.LiveLoansAt(loc, facts.PhaseMid)))
	r.printf("<td colspan=\"4\"></td>")
	r.printf("<td>%s</td>", escape(joinPlaces(r.init.AfterStatement(loc))))
	r.printf("</tr>\n")
}

// variablesTable appends a node listing every local with its type and
// associated region.
func (r *renderer) variablesTable() {
	r.printf("Variables [ style=filled shape = \"record\"\n")
	r.printf("label =<<table>\n")
	r.printf("<tr><td>VARIABLES</td></tr>\n")
	r.printf("<tr><td>Name</td><td>Temporary</td><td>Type</td><td>Region</td></tr>\n")
	for id := range r.fn.Locals {
		local := &r.fn.Locals[id]
		region := ""
		if reg, ok := r.info.VarRegions[mir.LocalID(id)]; ok {
			region = formatRegion(reg)
		}
		r.printf("<tr><td>%s</td><td>_%d</td><td>%s</td><td>%s</td></tr>\n",
			escape(local.Name), id, escape(local.Type), escape(region))
	}
	r.printf("</table>>];\n")
}

func (r *renderer) printf(format string, args ...any) {
	fmt.Fprintf(r.w, format, args...)
}
