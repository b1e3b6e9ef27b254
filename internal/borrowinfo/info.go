package borrowinfo

import (
	"fmt"

	"mirdump/internal/facts"
	"mirdump/internal/mir"
)

// SolveFunc is the fixed-point evaluator seam. It must behave as a pure
// function of the input relations; the result is stored once and never
// mutated. Monotonicity (more input facts never remove derived facts) is
// trusted, not verified.
type SolveFunc func(*facts.Input) (*facts.Output, error)

// Info bundles everything the renderer queries about one function: the
// completed input relations, the solver output, the point interner and the
// local-to-region association. Built once per function, then read-only.
type Info struct {
	Input    *facts.Input
	Output   *facts.Output
	Interner *facts.Interner

	VarRegions facts.VarRegions

	// CallMagicWands records synthetic loans standing for a borrow the
	// callee returned into the destination local.
	CallMagicWands map[facts.Loan]mir.LocalID

	// Loans minted by fact completion.
	ReferenceMoves []facts.Loan
	ArgumentMoves  []facts.Loan
}

// New completes the input facts against the CFG, runs the solver over the
// completed set and freezes the result. Completion always finishes before
// the solve starts.
func New(
	fn *mir.Func,
	in *facts.Input,
	interner *facts.Interner,
	varRegions facts.VarRegions,
	solve SolveFunc,
) (*Info, error) {
	wands := make(map[facts.Loan]mir.LocalID)
	refMoves, argMoves := completeFacts(in, interner, fn, varRegions, wands)

	out, err := solve(in)
	if err != nil {
		return nil, fmt.Errorf("fact solving failed: %w", err)
	}

	return &Info{
		Input:          in,
		Output:         out,
		Interner:       interner,
		VarRegions:     varRegions,
		CallMagicWands: wands,
		ReferenceMoves: refMoves,
		ArgumentMoves:  argMoves,
	}, nil
}
