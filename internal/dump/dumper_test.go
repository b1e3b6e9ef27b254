package dump

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mirdump/internal/borrowinfo"
	"mirdump/internal/facts"
	"mirdump/internal/initflow"
	"mirdump/internal/mir"
	"mirdump/internal/solver"
)

// refMoveFunc is the two-block end-to-end fixture: bb0 assigns a reference
// and jumps to bb1, which returns.
func refMoveFunc() *mir.Func {
	return &mir.Func{
		Name:    "ref_move",
		DefPath: "crate::ref_move",
		Locals: []mir.Local{
			{Name: "", Type: "()"},
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

func TestWriteGraphEndToEnd(t *testing.T) {
	fn := refMoveFunc()
	interner := facts.NewInterner()
	in := facts.NewInput()

	// One outlives fact at the assignment's mid point and no prior
	// loan-creation fact: completion must synthesize exactly one loan.
	assignMid := interner.Intern(facts.Point{
		Loc:   mir.Location{Block: 0, Statement: 0},
		Phase: facts.PhaseMid,
	})
	in.Outlives = append(in.Outlives, facts.OutlivesFact{R1: 2, R2: 3, Point: assignMid})

	info, err := borrowinfo.New(fn, in, interner, facts.VarRegions{2: 3}, solver.Naive)
	if err != nil {
		t.Fatalf("borrowinfo.New: %v", err)
	}

	snap := &mir.Snapshot{
		Func:       *fn,
		InitBefore: map[mir.BlockID][]string{0: {}, 1: {"_1", "_2"}},
		InitAfter: map[mir.BlockID][][]string{
			0: {{"_1", "_2"}, {"_1", "_2"}},
			1: {{"_1", "_2"}},
		},
	}

	path := filepath.Join(t.TempDir(), "graph.dot")
	opts := Options{ShowTempVariables: true, ShowStatementIndices: true}
	if err := WriteGraph(path, fn, info, initflow.FromSnapshot(snap), opts); err != nil {
		t.Fatalf("WriteGraph: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}
	got := string(data)

	// Exactly one synthesized borrow-region entry, on bb0's statement row.
	if n := strings.Count(got, "('_#3r, bw1)"); n != 1 {
		t.Errorf("synthesized borrow region rendered %d times, want 1:\n%s", n, got)
	}
	// Plain edges bb0 -> bb1 and bb1 -> return.
	if !strings.Contains(got, "\"bb0\" -> \"bb1\"\n") {
		t.Error("missing plain bb0 -> bb1 edge")
	}
	if !strings.Contains(got, "\"bb1\" -> \"return\"\n") {
		t.Error("missing plain bb1 -> return edge")
	}
	if strings.Contains(got, "color=red") || strings.Contains(got, "dashed") {
		t.Error("plain goto/return graph has styled edges")
	}
	// Statement text is escaped for the HTML-like label.
	if !strings.Contains(got, "_2 = &amp;_1") {
		t.Error("assignment row missing or not escaped")
	}
	// Variables table lists the local owning region 3.
	if !strings.Contains(got, "<td>y</td><td>_2</td>") {
		t.Error("variables table missing local y")
	}
	// Definitely-initialized sets come from the snapshot, sorted.
	if !strings.Contains(got, "<td>_1, _2</td>") {
		t.Error("definitely-initialized set not rendered")
	}
	if !strings.HasPrefix(got, "digraph G {") || !strings.HasSuffix(strings.TrimSpace(got), "}") {
		t.Error("report is not a complete digraph document")
	}
}

func TestWriteGraphEmptyFacts(t *testing.T) {
	fn := refMoveFunc()
	interner := facts.NewInterner()
	info, err := borrowinfo.New(fn, facts.NewInput(), interner, facts.VarRegions{}, solver.Naive)
	if err != nil {
		t.Fatalf("borrowinfo.New: %v", err)
	}
	snap := &mir.Snapshot{Func: *fn}

	path := filepath.Join(t.TempDir(), "graph.dot")
	opts := Options{ShowTempVariables: false, ShowStatementIndices: false}
	if err := WriteGraph(path, fn, info, initflow.FromSnapshot(snap), opts); err != nil {
		t.Fatalf("WriteGraph on empty facts: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "Variables [") {
		t.Error("variables table rendered despite ShowTempVariables=false")
	}
	if strings.Contains(string(data), "<td>Nr</td>") {
		t.Error("statement indices rendered despite ShowStatementIndices=false")
	}
}

func TestWriteGraphRemovesPartialReport(t *testing.T) {
	fn := refMoveFunc()
	interner := facts.NewInterner()
	info, err := borrowinfo.New(fn, facts.NewInput(), interner, facts.VarRegions{}, solver.Naive)
	if err != nil {
		t.Fatal(err)
	}

	// A directory in place of the target file forces the create to fail.
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.dot")
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := WriteGraph(path, fn, info, initflow.FromSnapshot(&mir.Snapshot{Func: *fn}), Options{}); err == nil {
		t.Error("WriteGraph into a directory succeeded, want error")
	}
}

func TestEdgeStyles(t *testing.T) {
	fn := &mir.Func{
		Name: "edges",
		Blocks: []mir.Block{
			{ID: 0, Term: mir.Terminator{
				Kind: mir.TermCall,
				Call: mir.CallTerm{Func: "f", Target: 1, Cleanup: 3},
			}},
			{ID: 1, Term: mir.Terminator{
				Kind:      mir.TermFalseEdge,
				FalseEdge: mir.FalseEdgeTerm{Real: 2, Imaginary: []mir.BlockID{3}},
			}},
			{ID: 2, Term: mir.Terminator{
				Kind: mir.TermSwitchInt,
				SwitchInt: mir.SwitchIntTerm{Discr: "_1", Targets: []mir.BlockID{4, 5}},
			}},
			{ID: 3, Term: mir.Terminator{Kind: mir.TermResume}},
			{ID: 4, Term: mir.Terminator{
				Kind: mir.TermDrop,
				Drop: mir.DropTerm{Place: mir.Place{Local: 1}, Target: 5, Unwind: 3},
			}},
			{ID: 5, Term: mir.Terminator{Kind: mir.TermReturn}},
		},
	}
	interner := facts.NewInterner()
	info, err := borrowinfo.New(fn, facts.NewInput(), interner, facts.VarRegions{}, solver.Naive)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "graph.dot")
	if err := WriteGraph(path, fn, info, initflow.FromSnapshot(&mir.Snapshot{Func: *fn}), Options{}); err != nil {
		t.Fatalf("WriteGraph: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)

	for _, want := range []string{
		"\"bb0\" -> \"bb1\"\n",
		"\"bb0\" -> \"bb3\" [color=red]\n",
		"\"bb1\" -> \"bb2\"\n",
		"\"bb1\" -> \"bb3\" [style=\"dashed\"]\n",
		"\"bb2\" -> \"bb4\"\n",
		"\"bb2\" -> \"bb5\"\n",
		"\"bb3\" -> \"resume\"\n",
		"\"bb4\" -> \"bb5\"\n",
		"\"bb4\" -> \"bb3\" [color=red]\n",
		"\"bb5\" -> \"return\"\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing edge %q", strings.TrimSpace(want))
		}
	}
}

func TestFilenameFriendly(t *testing.T) {
	tests := []struct{ in, want string }{
		{"crate::main", "crate-main"},
		{"a::b::c", "a-b-c"},
		{"weird fn<T>", "weird_fn_T_"},
		{"plain_name", "plain_name"},
	}
	for _, tt := range tests {
		if got := FilenameFriendly(tt.in); got != tt.want {
			t.Errorf("FilenameFriendly(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteDebugListsCompletedFacts(t *testing.T) {
	fn := refMoveFunc()
	interner := facts.NewInterner()
	in := facts.NewInput()
	assignMid := interner.Intern(facts.Point{
		Loc:   mir.Location{Block: 0, Statement: 0},
		Phase: facts.PhaseMid,
	})
	in.Outlives = append(in.Outlives, facts.OutlivesFact{R1: 2, R2: 3, Point: assignMid})

	info, err := borrowinfo.New(fn, in, interner, facts.VarRegions{2: 3}, solver.Naive)
	if err != nil {
		t.Fatalf("borrowinfo.New: %v", err)
	}

	path := filepath.Join(t.TempDir(), "debug.txt")
	if err := WriteDebug(path, fn, info); err != nil {
		t.Fatalf("WriteDebug: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)

	for _, want := range []string{
		"function crate::ref_move",
		"1 reference moves, 0 argument moves",
		"reference moves: bw1",
		"'_#3r bw1 Mid(bb0[0])",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("debug listing missing %q:\n%s", want, got)
		}
	}
}

func TestWriteDebugRemovesPartialFile(t *testing.T) {
	fn := refMoveFunc()
	interner := facts.NewInterner()
	info, err := borrowinfo.New(fn, facts.NewInput(), interner, facts.VarRegions{}, solver.Naive)
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "debug.txt")
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := WriteDebug(path, fn, info); err == nil {
		t.Error("WriteDebug into a directory succeeded, want error")
	}
}
