// Package occlusion builds the per-chunk axis-aligned solid bitmaps and the
// six visibility masks described in spec.md §4.3, ported from the shift-and-
// mask formulas in original_source/src/meshing.rs.
package occlusion

import "github.com/mikatschuh/voxeled-engine/internal/voxel"

// BitMap3D packs one axis of a chunk's solidity into 32x32 32-bit words: one
// word encodes a run of 32 voxels along the third axis, MSB-first so that
// voxel index 0 sits in the top bit (mirrors meshing.rs's
// `voxel_is_solid_u32 >> x`).
type BitMap3D [32][32]uint32

// AxisAlignedMaps holds the three solid maps sharing the same underlying
// voxels but packed along different axes, enabling the shift-and-mask
// visibility computation in Build.
type AxisAlignedMaps struct {
	XAligned BitMap3D // indexed [y][z]
	YAligned BitMap3D // indexed [z][x]
	ZAligned BitMap3D // indexed [x][y]
}

const topBit uint32 = 1 << 31

// BuildAxisAlignedMaps iterates a chunk's 32^3 voxels once, setting the top
// bit of the relevant word (right-shifted by the in-axis coordinate) for
// every solid voxel. Cost is O(32^3), matching spec.md §4.3.
func BuildAxisAlignedMaps(data *voxel.Data) AxisAlignedMaps {
	var maps AxisAlignedMaps
	for x := 0; x < voxel.Size; x++ {
		for y := 0; y < voxel.Size; y++ {
			for z := 0; z < voxel.Size; z++ {
				if !data[x][y][z].IsSolid() {
					continue
				}
				maps.XAligned[y][z] |= topBit >> uint(x)
				maps.YAligned[z][x] |= topBit >> uint(y)
				maps.ZAligned[x][y] |= topBit >> uint(z)
			}
		}
	}
	return maps
}

// Direction identifies one of the six visibility-mask faces, in the order
// meshbuf.Mesh's buckets use: {-x,+x,-y,+y,-z,+z}.
type Direction uint8

const (
	NegX Direction = iota
	PosX
	NegY
	PosY
	NegZ
	PosZ
)

// VisibilityMasks holds the six per-face exposed-voxel bitmaps.
type VisibilityMasks [6]BitMap3D

// Neighbors supplies a chunk's axis-aligned solid maps for the six
// neighboring chunks, one per direction. An absent neighbor (a zero map)
// is treated as fully air, so voxels at that boundary appear exposed.
// Masks built this way are not rebuilt when the neighbor's voxels arrive
// later: writing a chunk's voxels dirties only that chunk's own occl and
// mesh stages, not its neighbors'.
type Neighbors struct {
	NegX, PosX BitMap3D // x-aligned solid maps of the -x/+x neighbor
	NegY, PosY BitMap3D // y-aligned solid maps of the -y/+y neighbor
	NegZ, PosZ BitMap3D // z-aligned solid maps of the -z/+z neighbor
}

// Build computes the exposed-face mask for each of the six directions in
// O(32^2) word operations, using this chunk's own axis-aligned maps plus the
// neighbor maps for the opposing faces. The formulas are carried verbatim
// from meshing.rs's `map_visible`.
func Build(own AxisAlignedMaps, nb Neighbors) VisibilityMasks {
	var faces VisibilityMasks
	for i := 0; i < 32; i++ {
		for j := 0; j < 32; j++ {
			x := own.XAligned[i][j]
			y := own.YAligned[i][j]
			z := own.ZAligned[i][j]

			faces[NegX][i][j] = x &^ ((x >> 1) | (nb.NegX[i][j] << 31))
			faces[PosX][i][j] = x &^ ((x << 1) | (nb.PosX[i][j] >> 31))
			faces[NegY][i][j] = y &^ ((y >> 1) | (nb.NegY[i][j] << 31))
			faces[PosY][i][j] = y &^ ((y << 1) | (nb.PosY[i][j] >> 31))
			faces[NegZ][i][j] = z &^ ((z >> 1) | (nb.NegZ[i][j] << 31))
			faces[PosZ][i][j] = z &^ ((z << 1) | (nb.PosZ[i][j] >> 31))
		}
	}
	return faces
}
