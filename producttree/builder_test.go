package producttree

import (
	"testing"

	"github.com/ncw/gmp"
)

func ints(vals ...int64) []*gmp.Int {
	out := make([]*gmp.Int, len(vals))
	for i, v := range vals {
		out[i] = gmp.NewInt(v)
	}
	return out
}

// TestBuildProductTreeRoot checks invariant 1: the single element at the
// top level equals the product of all inputs.
func TestBuildProductTreeRoot(t *testing.T) {
	store := NewLevelStore(t.TempDir(), "")
	inputs := ints(6, 10, 15, 7, 11)

	want := gmp.NewInt(1)
	for _, v := range inputs {
		want.Mul(want, v)
	}

	levels, manifest, err := BuildProductTree(store, append([]*gmp.Int{}, inputs...))
	if err != nil {
		t.Fatalf("BuildProductTree: %v", err)
	}

	root, err := store.ReadOne(levels-1, 0)
	if err != nil {
		t.Fatalf("ReadOne root: %v", err)
	}
	if root.Cmp(want) != 0 {
		t.Errorf("root = %s, want %s", root.String(), want.String())
	}
	if manifest.Root() != 1 {
		t.Errorf("manifest root count = %d, want 1", manifest.Root())
	}
	if manifest.FloorSizes[0] != len(inputs) {
		t.Errorf("manifest floor 0 = %d, want %d", manifest.FloorSizes[0], len(inputs))
	}
}

// TestBuildProductTreeOrphanCarry is scenario S3's tree shape: N = [6, 10,
// 15] must produce level 1 = [60, 15] (15 carried unchanged) and level 2 =
// [900], matching invariant 2's orphan case exactly.
func TestBuildProductTreeOrphanCarry(t *testing.T) {
	store := NewLevelStore(t.TempDir(), "")
	inputs := ints(6, 10, 15)

	levels, manifest, err := BuildProductTree(store, append([]*gmp.Int{}, inputs...))
	if err != nil {
		t.Fatalf("BuildProductTree: %v", err)
	}
	if levels != 3 {
		t.Fatalf("levels = %d, want 3", levels)
	}
	if got := manifest.FloorSizes; len(got) != 3 || got[0] != 3 || got[1] != 2 || got[2] != 1 {
		t.Fatalf("floor sizes = %v, want [3 2 1]", got)
	}

	level1, err := store.ReadLevel(1, 2)
	if err != nil {
		t.Fatalf("ReadLevel(1): %v", err)
	}
	if level1[0].Cmp(gmp.NewInt(60)) != 0 {
		t.Errorf("level1[0] = %s, want 60", level1[0].String())
	}
	if level1[1].Cmp(gmp.NewInt(15)) != 0 {
		t.Errorf("level1[1] = %s, want 15 (orphan carry)", level1[1].String())
	}

	root, err := store.ReadOne(2, 0)
	if err != nil {
		t.Fatalf("ReadOne root: %v", err)
	}
	if root.Cmp(gmp.NewInt(900)) != 0 {
		t.Errorf("root = %s, want 900", root.String())
	}
}

// TestBuildProductTreeSingleInput is scenario S4's degenerate k=1 case: the
// tree has exactly one level, and that level is the input itself.
func TestBuildProductTreeSingleInput(t *testing.T) {
	store := NewLevelStore(t.TempDir(), "")
	levels, manifest, err := BuildProductTree(store, ints(7))
	if err != nil {
		t.Fatalf("BuildProductTree: %v", err)
	}
	if levels != 1 {
		t.Fatalf("levels = %d, want 1", levels)
	}
	if len(manifest.FloorSizes) != 1 || manifest.FloorSizes[0] != 1 {
		t.Fatalf("floor sizes = %v, want [1]", manifest.FloorSizes)
	}
	root, err := store.ReadOne(0, 0)
	if err != nil {
		t.Fatalf("ReadOne: %v", err)
	}
	if root.Cmp(gmp.NewInt(7)) != 0 {
		t.Errorf("root = %s, want 7", root.String())
	}
}

func TestBuildProductTreeRejectsZeroModulus(t *testing.T) {
	store := NewLevelStore(t.TempDir(), "")
	if _, _, err := BuildProductTree(store, ints(5, 0, 7)); err == nil {
		t.Fatal("expected an invariant error for a zero modulus")
	}
}

func TestBuildProductTreeRejectsEmptyInput(t *testing.T) {
	store := NewLevelStore(t.TempDir(), "")
	if _, _, err := BuildProductTree(store, nil); err == nil {
		t.Fatal("expected an invariant error for empty input")
	}
}
