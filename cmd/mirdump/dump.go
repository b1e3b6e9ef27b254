package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mirdump/internal/borrowinfo"
	"mirdump/internal/config"
	"mirdump/internal/dump"
	"mirdump/internal/facts"
	"mirdump/internal/initflow"
	"mirdump/internal/mir"
	"mirdump/internal/observ"
	"mirdump/internal/solver"
	"mirdump/internal/trace"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [flags] <facts-root>",
	Short: "Render borrow-fact reports for every function under a facts root",
	Long: `Dump walks the per-function directories under the facts root, loads each
function's CFG snapshot, facts and rendered IR, completes and solves the
fact set and writes a graph.dot report per function`,
	Args: cobra.ExactArgs(1),
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().String("config", "", "path to a mirdump.toml overriding the discovered one")
	dumpCmd.Flags().String("function", "", "only dump the function with this name")
	dumpCmd.Flags().Bool("show-temps", true, "include the variables table in reports")
	dumpCmd.Flags().Bool("show-indices", true, "include statement indices in reports")
	dumpCmd.Flags().String("output-dir", "", "mirror reports under this directory instead of the facts tree")
}

func runDump(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	ctx := cmd.Context()
	tracer := trace.FromContext(ctx)

	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	root := args[0]
	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("failed to read facts root %s: %w", root, err)
	}

	run := trace.Begin(tracer, trace.ScopeRun, "dump")
	failures := 0
	dumped := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		fnDir := filepath.Join(root, entry.Name())
		ok, err := processFunction(ctx, cfg, fnDir, showTimings, cmd)
		if err != nil {
			failures++
			errColor(cmd).Fprintf(cmd.ErrOrStderr(), "mirdump: %s: %v\n", entry.Name(), err)
			continue
		}
		if ok {
			dumped++
		}
	}
	run.End(fmt.Sprintf("dumped=%d failed=%d", dumped, failures))

	if failures > 0 {
		return fmt.Errorf("%d function report(s) failed", failures)
	}
	return nil
}

// processFunction runs the whole pipeline for one function directory. State
// is created fresh per function and discarded afterwards. The returned bool
// is false when the function was skipped by the name filter.
func processFunction(ctx context.Context, cfg config.Config, fnDir string, showTimings bool, cmd *cobra.Command) (bool, error) {
	timer := observ.NewTimer()
	loadPhase := timer.Begin(observ.PhaseLoad)

	snap, err := mir.LoadSnapshot(filepath.Join(fnDir, "mir.bin"))
	if err != nil {
		return false, err
	}
	fn := &snap.Func
	if cfg.DumpMirProc != "" && fn.Name != cfg.DumpMirProc {
		return false, nil
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFunction, "fn:"+fn.DefPath)
	defer span.End("")

	interner := facts.NewInterner()
	input, err := facts.LoadInput(fnDir, interner)
	if err != nil {
		return false, err
	}
	varRegions, err := facts.LoadVarRegions(renumberPath(cfg, fnDir, fn.DefPath))
	if err != nil {
		return false, err
	}
	timer.End(loadPhase, fmt.Sprintf("%d facts", len(input.BorrowRegion)+len(input.Outlives)+len(input.RegionLiveAt)))

	analyzePhase := timer.Begin(observ.PhaseAnalyze)
	solveSpan := trace.Begin(tracer, trace.ScopePhase, "solve")
	info, err := borrowinfo.New(fn, input, interner, varRegions, solver.Naive)
	solveSpan.End("")
	if err != nil {
		return false, err
	}
	timer.End(analyzePhase, fmt.Sprintf("%d synthesized", len(info.ReferenceMoves)+len(info.ArgumentMoves)))

	renderPhase := timer.Begin(observ.PhaseRender)
	outPath := reportPath(cfg, fnDir, fn.DefPath)
	if err := dump.WriteGraph(outPath, fn, info, initflow.FromSnapshot(snap), dump.Options{
		ShowTempVariables:    cfg.ShowTempVariables,
		ShowStatementIndices: cfg.ShowStatementIndices,
	}); err != nil {
		return false, err
	}
	if cfg.DebugInfo {
		debugPath := filepath.Join(filepath.Dir(outPath), "debug.txt")
		if err := dump.WriteDebug(debugPath, fn, info); err != nil {
			return false, err
		}
	}
	timer.End(renderPhase, outPath)

	if showTimings {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s", fn.DefPath, timer.Summary())
	}
	return true, nil
}

// resolveConfig layers flag overrides on top of the file/env configuration.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()
	configPath, err := flags.GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if flags.Changed("function") {
		cfg.DumpMirProc, _ = flags.GetString("function")
	}
	if flags.Changed("show-temps") {
		cfg.ShowTempVariables, _ = flags.GetBool("show-temps")
	}
	if flags.Changed("show-indices") {
		cfg.ShowStatementIndices, _ = flags.GetBool("show-indices")
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir, _ = flags.GetString("output-dir")
	}
	return cfg, nil
}

// renumberPath locates the rendered IR dump carrying local/region
// declarations: next to the facts when the host put it there, otherwise
// under the configured log directory.
func renumberPath(cfg config.Config, fnDir, defPath string) string {
	local := filepath.Join(fnDir, "renumber.mir")
	if _, err := os.Stat(local); err == nil {
		return local
	}
	return filepath.Join(cfg.LogDir, "mir", dump.FilenameFriendly(defPath)+".renumber.mir")
}

// reportPath derives the per-function output file.
func reportPath(cfg config.Config, fnDir, defPath string) string {
	if cfg.OutputDir != "" {
		return filepath.Join(cfg.OutputDir, dump.FilenameFriendly(defPath), "graph.dot")
	}
	return filepath.Join(fnDir, "graph.dot")
}

func errColor(cmd *cobra.Command) *color.Color {
	c := color.New(color.FgRed, color.Bold)
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	switch {
	case colorFlag == "on":
		c.EnableColor()
	case colorFlag == "off" || !isTerminal(os.Stderr):
		c.DisableColor()
	}
	return c
}
