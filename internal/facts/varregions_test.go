package facts

import (
	"os"
	"path/filepath"
	"testing"

	"mirdump/internal/mir"
)

func TestLoadVarRegions(t *testing.T) {
	rendered := `// MIR for main after renumber

fn main() -> () {
    let mut _0: ();
    let _1: i32;
    let _2: &'_#3r i32;
    let mut _3: &'_#4r mut i32;
    debug x => _4: &'_#5r i32;
    scope 1 {
    }

    bb0: {
        StorageLive(_1);
    }
}
`
	path := filepath.Join(t.TempDir(), "renumber.mir")
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		t.Fatal(err)
	}

	regions, err := LoadVarRegions(path)
	if err != nil {
		t.Fatalf("LoadVarRegions: %v", err)
	}
	want := VarRegions{
		mir.LocalID(2): Region(3),
		mir.LocalID(3): Region(4),
		mir.LocalID(4): Region(5),
	}
	if len(regions) != len(want) {
		t.Fatalf("got %d mappings (%v), want %d", len(regions), regions, len(want))
	}
	for local, region := range want {
		if got := regions[local]; got != region {
			t.Errorf("local _%d -> region %d, want %d", local, got, region)
		}
	}
}

func TestLoadVarRegionsMissingFile(t *testing.T) {
	if _, err := LoadVarRegions(filepath.Join(t.TempDir(), "absent.mir")); err == nil {
		t.Error("LoadVarRegions on a missing file succeeded, want error")
	}
}
