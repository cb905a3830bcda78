package chunkid

import "testing"

func TestParentContainsChild(t *testing.T) {
	id := New(0, IVec3{5, -3, 8})
	parent := id.Parent()
	if parent.LOD != 1 {
		t.Fatalf("expected parent LOD 1, got %d", parent.LOD)
	}
	lo := parent.Pos.Shl(1)
	if id.Pos.X < lo.X || id.Pos.X >= lo.X+2 {
		t.Errorf("child X %d not within parent range starting at %d", id.Pos.X, lo.X)
	}
}

func TestTotalPos(t *testing.T) {
	id := New(2, IVec3{1, 1, 1})
	got := id.TotalPos()
	want := IVec3{4, 4, 4}
	if got != want {
		t.Errorf("TotalPos() = %+v, want %+v", got, want)
	}
}

func TestSize(t *testing.T) {
	if New(0, IVec3{}).Size() != 1 {
		t.Error("lod 0 size should be 1")
	}
	if New(3, IVec3{}).Size() != 8 {
		t.Error("lod 3 size should be 8")
	}
}

func TestOverlapsSameLOD(t *testing.T) {
	a := New(0, IVec3{1, 2, 3})
	b := New(0, IVec3{1, 2, 3})
	c := New(0, IVec3{1, 2, 4})
	if !Overlaps(a, b) {
		t.Error("identical same-lod chunks should overlap")
	}
	if Overlaps(a, c) {
		t.Error("distinct same-lod chunks should not overlap")
	}
}

func TestOverlapsAcrossLOD(t *testing.T) {
	coarse := New(1, IVec3{0, 0, 0})
	fine := New(0, IVec3{1, 1, 1})
	outside := New(0, IVec3{2, 0, 0})
	if !Overlaps(coarse, fine) {
		t.Error("fine chunk inside coarse chunk's footprint should overlap")
	}
	if !Overlaps(fine, coarse) {
		t.Error("Overlaps should be symmetric")
	}
	if Overlaps(coarse, outside) {
		t.Error("chunk outside coarse footprint should not overlap")
	}
}

func TestOverlapsNegativePositions(t *testing.T) {
	coarse := New(1, IVec3{-1, 0, 0})
	fine := New(0, IVec3{-1, 0, 0})
	if !Overlaps(coarse, fine) {
		t.Error("negative-position child should still overlap its parent footprint")
	}
}
