package facts

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"mirdump/internal/mir"
)

// varRegionPattern matches local declarations in the rendered IR whose type
// carries an explicit region, e.g.
//
//	let _2: &'_#3r i32;
//	let mut _0: &'_#2r mut i32;
//	debug x => _1: &'_#4r i32
//
// Only the local and the first region are extracted.
var varRegionPattern = regexp.MustCompile(`_(\d+)\s*:\s*&'_#(\d+)r`)

// LoadVarRegions scans a rendered IR dump for locals whose types mention a
// region. The parse is line oriented and tolerant: lines that do not declare
// a reference-typed local are skipped. Only opening the file can fail.
func LoadVarRegions(path string) (VarRegions, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rendered IR: %w", err)
	}
	defer f.Close()

	regions := make(VarRegions)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		m := varRegionPattern.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		local, err := strconv.ParseInt(m[1], 10, 32)
		if err != nil {
			continue
		}
		region, err := strconv.ParseUint(m[2], 10, 64)
		if err != nil {
			continue
		}
		regions[mir.LocalID(local)] = Region(region)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rendered IR %s: %w", path, err)
	}
	return regions, nil
}
