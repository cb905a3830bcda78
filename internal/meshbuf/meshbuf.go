// Package meshbuf builds the per-chunk mesh instance buffers described in
// spec.md §4.4, one face Instance per exposed voxel face. The packed-vertex
// layout is a simplified descendant of internal/meshing's BuildGreedyMeshForChunk
// (this package emits one instance per face rather than greedy-merged quads,
// per spec.md's DATA MODEL for Mesh/Instance), and the six-bucket-per-direction
// shape mirrors meshing.rs's generate_mesh.
package meshbuf

import (
	"github.com/mikatschuh/voxeled-engine/internal/chunkid"
	"github.com/mikatschuh/voxeled-engine/internal/occlusion"
	"github.com/mikatschuh/voxeled-engine/internal/voxel"
)

// Instance is one visible voxel face: the position of its voxel in
// world-voxel units at LOD 0 (see Build) and a packed kind word (lod in the high 16 bits, texture id in the low 16),
// matching spec.md's Instance{pos, kind} layout.
type Instance struct {
	Pos  chunkid.IVec3
	Kind uint32
}

// PackKind combines a LOD and texture id into the Instance.Kind word.
func PackKind(lod chunkid.LOD, textureID uint16) uint32 {
	return uint32(lod)<<16 | uint32(textureID)
}

// Mesh holds a chunk's face instances bucketed by direction, in the same
// {-x,+x,-y,+y,-z,+z} order occlusion.Direction uses. Keeping per-direction
// buckets lets renderset/backface culling select buckets independently,
// mirroring the teacher's per-direction worker split in
// internal/meshing/direction_pool.go.
type Mesh struct {
	Faces [6][]Instance
}

// Add appends another mesh's instances bucket-by-bucket. The server's
// GetMesh does not call it: it appends each chunk's buckets selectively
// for backface culling.
func (m *Mesh) Add(other Mesh) {
	for d := range m.Faces {
		m.Faces[d] = append(m.Faces[d], other.Faces[d]...)
	}
}

// Count returns the total instance count across all six buckets.
func (m Mesh) Count() int {
	n := 0
	for _, f := range m.Faces {
		n += len(f)
	}
	return n
}

func dirFace(d occlusion.Direction) voxel.Face {
	switch d {
	case occlusion.NegX:
		return voxel.FaceNegX
	case occlusion.PosX:
		return voxel.FacePosX
	case occlusion.NegY:
		return voxel.FaceNegY
	case occlusion.PosY:
		return voxel.FacePosY
	case occlusion.NegZ:
		return voxel.FaceNegZ
	default:
		return voxel.FacePosZ
	}
}

// axisIndex extracts (i, j, bitIndex) for direction d at voxel (x,y,z),
// matching the indexing occlusion.BuildAxisAlignedMaps packed each axis
// with: XAligned[y][z], YAligned[z][x], ZAligned[x][y].
func axisIndex(d occlusion.Direction, x, y, z int) (i, j, bit int) {
	switch d {
	case occlusion.NegX, occlusion.PosX:
		return y, z, x
	case occlusion.NegY, occlusion.PosY:
		return z, x, y
	default:
		return x, y, z
	}
}

const topBit uint32 = 1 << 31

// Build walks a chunk's visibility masks once per direction and emits one
// Instance per set bit, looking up each voxel's texture id from its type.
// Instance positions are expressed in world-voxel units at LOD 0:
// (id.Pos<<5 + local)<<id.LOD, per spec.md's C6 formula — independent of face
// direction, since a face's position is the voxel it belongs to, not an
// offset cube corner. Cost is O(32^3) word-bit tests.
func Build(id chunkid.ID, data *voxel.Data, masks occlusion.VisibilityMasks) Mesh {
	var mesh Mesh
	base := id.Pos.Shl(5)
	for d := occlusion.Direction(0); d < 6; d++ {
		face := dirFace(d)
		bucket := make([]Instance, 0, 64)

		for x := 0; x < voxel.Size; x++ {
			for y := 0; y < voxel.Size; y++ {
				for z := 0; z < voxel.Size; z++ {
					i, j, bit := axisIndex(d, x, y, z)
					if masks[d][i][j]&(topBit>>uint(bit)) == 0 {
						continue
					}
					t := data[x][y][z]
					local := chunkid.IVec3{X: int32(x), Y: int32(y), Z: int32(z)}
					bucket = append(bucket, Instance{
						Pos:  base.Add(local).Shl(uint(id.LOD)),
						Kind: PackKind(id.LOD, t.TextureID(face)),
					})
				}
			}
		}
		mesh.Faces[d] = bucket
	}
	return mesh
}
