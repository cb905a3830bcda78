// Package voxelserver orchestrates the frustum selector, job runner, worker
// pool, and render-set resolver behind a small Server type: GetMesh answers
// per-frame mesh requests, SolidAt answers physics queries. Ported from
// original_source/src/server.rs's Server<G>, replacing its
// Arc<ShardedLock<G>>/Arc<Level> with the plain *level.Level and
// worldgen.Generator already threaded through jobs and workerpool.
package voxelserver

import (
	"github.com/mikatschuh/voxeled-engine/internal/chunkid"
	"github.com/mikatschuh/voxeled-engine/internal/frustum"
	"github.com/mikatschuh/voxeled-engine/internal/level"
	"github.com/mikatschuh/voxeled-engine/internal/meshbuf"
	"github.com/mikatschuh/voxeled-engine/internal/occlusion"
	"github.com/mikatschuh/voxeled-engine/internal/profiling"
	"github.com/mikatschuh/voxeled-engine/internal/renderset"
	"github.com/mikatschuh/voxeled-engine/internal/workerpool"
)

// Server holds a shared Level and dispatches chunk generation onto a
// worker pool to answer per-frame mesh requests.
type Server struct {
	level *level.Level
	pool  *workerpool.Pool
}

// New builds a Server backed by the given Level and worker pool. The pool
// and level are expected to share the same Generator (wired by the caller
// when constructing the pool).
func New(lvl *level.Level, pool *workerpool.Pool) *Server {
	return &Server{level: lvl, pool: pool}
}

func (s *Server) meshReady(id chunkid.ID) bool {
	c, ok := s.level.Get(id)
	if !ok {
		return false
	}
	return c.MeshState.IsDone()
}

// GetMesh selects desired chunks via the frustum flood-fill, enqueues
// generation jobs for anything not yet meshed, resolves the render set via
// the LOD substitution rules, and concatenates each selected chunk's mesh
// buckets, applying coarse backface culling at chunk granularity.
func (s *Server) GetMesh(f frustum.Frustum) meshbuf.Mesh {
	defer profiling.Track("voxelserver.GetMesh")()

	desired := f.FloodFill()

	for _, id := range desired {
		if !s.meshReady(id) {
			s.pool.PushGenerateChunkAndMesh(id)
		}
	}

	selected := renderset.Resolve(desired, s.meshReady)

	camChunk := chunkid.IVec3{
		X: int32(f.CamPos[0] / 32),
		Y: int32(f.CamPos[1] / 32),
		Z: int32(f.CamPos[2] / 32),
	}

	var out meshbuf.Mesh
	for _, id := range selected {
		c, ok := s.level.Get(id)
		if !ok {
			continue
		}
		chunkMesh, ok := c.Mesh()
		if !ok {
			continue
		}
		chunkPos := id.TotalPos()
		size := id.Size()

		if camChunk.X <= chunkPos.X+size {
			out.Faces[occlusion.NegX] = append(out.Faces[occlusion.NegX], chunkMesh.Faces[occlusion.NegX]...)
		}
		if camChunk.X >= chunkPos.X {
			out.Faces[occlusion.PosX] = append(out.Faces[occlusion.PosX], chunkMesh.Faces[occlusion.PosX]...)
		}
		if camChunk.Y <= chunkPos.Y+size {
			out.Faces[occlusion.NegY] = append(out.Faces[occlusion.NegY], chunkMesh.Faces[occlusion.NegY]...)
		}
		if camChunk.Y >= chunkPos.Y {
			out.Faces[occlusion.PosY] = append(out.Faces[occlusion.PosY], chunkMesh.Faces[occlusion.PosY]...)
		}
		if camChunk.Z <= chunkPos.Z+size {
			out.Faces[occlusion.NegZ] = append(out.Faces[occlusion.NegZ], chunkMesh.Faces[occlusion.NegZ]...)
		}
		if camChunk.Z >= chunkPos.Z {
			out.Faces[occlusion.PosZ] = append(out.Faces[occlusion.PosZ], chunkMesh.Faces[occlusion.PosZ]...)
		}
	}
	return out
}

func floorDivMod32(v int32) (q, r int32) {
	q = v >> 5 // arithmetic shift: floor division by 32 for signed ints
	r = v - q*32
	return
}

// SolidAt answers a conservative-unknown-is-solid physics query: walk from
// LOD 0 upward, returning the first LOD's voxel solidity once data is
// present, folding the local coordinate one bit at a time as the walk
// coarsens. If no LOD up to MaxLOD has voxel data, unknown terrain is
// treated as solid.
func (s *Server) SolidAt(world chunkid.IVec3) bool {
	chunkX, localX := floorDivMod32(world.X)
	chunkY, localY := floorDivMod32(world.Y)
	chunkZ, localZ := floorDivMod32(world.Z)

	chunkPos := chunkid.IVec3{X: chunkX, Y: chunkY, Z: chunkZ}
	local := chunkid.IVec3{X: localX, Y: localY, Z: localZ}

	for lod := chunkid.LOD(0); lod <= chunkid.MaxLOD; lod++ {
		id := chunkid.New(lod, chunkPos)
		if c, ok := s.level.Get(id); ok {
			if data, ok := c.Voxels(); ok {
				return data[local.X][local.Y][local.Z].IsSolid()
			}
		}
		local = chunkid.IVec3{
			X: ((chunkPos.X & 1) << 4) | (local.X >> 1),
			Y: ((chunkPos.Y & 1) << 4) | (local.Y >> 1),
			Z: ((chunkPos.Z & 1) << 4) | (local.Z >> 1),
		}
		chunkPos = chunkPos.Shr(1)
	}
	return true
}
