package initflow

import (
	"slices"
	"testing"

	"mirdump/internal/mir"
)

func TestFromSnapshotSortsSets(t *testing.T) {
	snap := &mir.Snapshot{
		InitBefore: map[mir.BlockID][]string{
			0: {"_3", "_1", "_2"},
		},
		InitAfter: map[mir.BlockID][][]string{
			0: {{"_2", "_1"}, {"_1"}},
		},
	}
	r := FromSnapshot(snap)

	if got, want := r.BeforeBlock(0), []string{"_1", "_2", "_3"}; !slices.Equal(got, want) {
		t.Errorf("BeforeBlock(0) = %v, want %v", got, want)
	}
	loc := mir.Location{Block: 0, Statement: 0}
	if got, want := r.AfterStatement(loc), []string{"_1", "_2"}; !slices.Equal(got, want) {
		t.Errorf("AfterStatement(%v) = %v, want %v", loc, got, want)
	}
}

func TestUnknownLocationsYieldEmptySets(t *testing.T) {
	r := FromSnapshot(&mir.Snapshot{})

	if got := r.BeforeBlock(7); len(got) != 0 {
		t.Errorf("BeforeBlock on unknown block = %v, want empty", got)
	}
	if got := r.AfterStatement(mir.Location{Block: 7, Statement: 0}); len(got) != 0 {
		t.Errorf("AfterStatement on unknown block = %v, want empty", got)
	}
}

func TestAfterStatementOutOfRange(t *testing.T) {
	snap := &mir.Snapshot{
		InitAfter: map[mir.BlockID][][]string{0: {{"_1"}}},
	}
	r := FromSnapshot(snap)

	if got := r.AfterStatement(mir.Location{Block: 0, Statement: 5}); len(got) != 0 {
		t.Errorf("AfterStatement past the block end = %v, want empty", got)
	}
	if got := r.AfterStatement(mir.Location{Block: 0, Statement: -1}); len(got) != 0 {
		t.Errorf("AfterStatement with negative index = %v, want empty", got)
	}
}

func TestFromSnapshotCopiesInput(t *testing.T) {
	before := []string{"_2", "_1"}
	snap := &mir.Snapshot{
		InitBefore: map[mir.BlockID][]string{0: before},
	}
	r := FromSnapshot(snap)
	before[0] = "_9"

	if got, want := r.BeforeBlock(0), []string{"_1", "_2"}; !slices.Equal(got, want) {
		t.Errorf("BeforeBlock aliases snapshot storage: got %v, want %v", got, want)
	}
}
