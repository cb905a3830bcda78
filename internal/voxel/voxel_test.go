package voxel

import "testing"

func TestAirIsNotSolid(t *testing.T) {
	if Air.IsSolid() {
		t.Fatal("Air must not be solid")
	}
}

func TestSolidTypes(t *testing.T) {
	for _, ty := range []Type{Stone, CrackedStone, Dirt} {
		if !ty.IsSolid() {
			t.Errorf("%v expected solid", ty)
		}
	}
}

func TestTextureIDFallback(t *testing.T) {
	var unknown Type = 200
	if got := unknown.TextureID(FaceNegX); got != 0 {
		t.Errorf("unknown type should fall back to texture 0, got %d", got)
	}
}

func TestFill(t *testing.T) {
	d := Fill(Stone)
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			for z := 0; z < Size; z++ {
				if d[x][y][z] != Stone {
					t.Fatalf("Fill(Stone) left non-Stone voxel at (%d,%d,%d)", x, y, z)
				}
			}
		}
	}
}

func TestFillAir(t *testing.T) {
	d := Fill(Air)
	if d[0][0][0] != Air || d[31][31][31] != Air {
		t.Fatal("Fill(Air) should leave the zero value")
	}
}
