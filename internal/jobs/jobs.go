// Package jobs implements the three units of work described in spec.md
// §4.7 (C9): GenerateChunk, GenerateMesh, and GenerateChunkAndMesh, each
// guarded by the per-stage state machine so at most one worker performs the
// expensive work for any given chunk and stage. Grounded on the teacher's
// ChunkStreamer worker loop (internal/world/chunk_streamer.go), adapted from
// a single voxel-population job into the three-stage voxel/occl/mesh
// pipeline.
package jobs

import (
	"github.com/mikatschuh/voxeled-engine/internal/chunkid"
	"github.com/mikatschuh/voxeled-engine/internal/level"
	"github.com/mikatschuh/voxeled-engine/internal/meshbuf"
	"github.com/mikatschuh/voxeled-engine/internal/occlusion"
	"github.com/mikatschuh/voxeled-engine/internal/profiling"
	"github.com/mikatschuh/voxeled-engine/internal/voxel"
	"github.com/mikatschuh/voxeled-engine/internal/worldgen"
)

// Kind enumerates the three job kinds a worker can execute.
type Kind uint8

const (
	GenerateChunk Kind = iota
	GenerateMesh
	GenerateChunkAndMesh
)

// Job is one unit of work for a worker pool to execute.
type Job struct {
	ID   chunkid.ID
	Kind Kind
}

// axis identifies which of a neighbor's three axis-aligned solid maps an
// occlusion direction needs.
type axis uint8

const (
	axisX axis = iota
	axisY
	axisZ
)

func neighborAxisMap(lvl *level.Level, id chunkid.ID, ax axis) occlusion.BitMap3D {
	c, ok := lvl.Get(id)
	if !ok {
		return occlusion.BitMap3D{}
	}
	data, ok := c.Voxels()
	if !ok {
		return occlusion.BitMap3D{}
	}
	maps := occlusion.BuildAxisAlignedMaps(&data)
	switch ax {
	case axisX:
		return maps.XAligned
	case axisY:
		return maps.YAligned
	default:
		return maps.ZAligned
	}
}

// neighborMaps gathers the six same-LOD neighbors' relevant axis-aligned
// solid maps, treating an absent neighbor (or one with no voxel data yet)
// as fully air, per spec.md's edge policy.
func neighborMaps(lvl *level.Level, id chunkid.ID) occlusion.Neighbors {
	p := id.Pos
	return occlusion.Neighbors{
		NegX: neighborAxisMap(lvl, chunkid.New(id.LOD, chunkid.IVec3{X: p.X - 1, Y: p.Y, Z: p.Z}), axisX),
		PosX: neighborAxisMap(lvl, chunkid.New(id.LOD, chunkid.IVec3{X: p.X + 1, Y: p.Y, Z: p.Z}), axisX),
		NegY: neighborAxisMap(lvl, chunkid.New(id.LOD, chunkid.IVec3{X: p.X, Y: p.Y - 1, Z: p.Z}), axisY),
		PosY: neighborAxisMap(lvl, chunkid.New(id.LOD, chunkid.IVec3{X: p.X, Y: p.Y + 1, Z: p.Z}), axisY),
		NegZ: neighborAxisMap(lvl, chunkid.New(id.LOD, chunkid.IVec3{X: p.X, Y: p.Y, Z: p.Z - 1}), axisZ),
		PosZ: neighborAxisMap(lvl, chunkid.New(id.LOD, chunkid.IVec3{X: p.X, Y: p.Y, Z: p.Z + 1}), axisZ),
	}
}

// RunGenerateChunk inserts a new chunk and populates its voxel stage. A
// collision (another worker already inserted id) silently drops the job.
func RunGenerateChunk(lvl *level.Level, gen worldgen.Generator, id chunkid.ID) {
	defer profiling.Track("jobs.RunGenerateChunk")()
	c, result := lvl.Insert(id)
	if result == level.AlreadyPresent {
		return
	}
	data := gen.Generate(id)
	c.WriteVoxel(data)
}

// RunGenerateMesh builds the occlusion and mesh stages for an existing
// chunk. Each stage's state machine guards against redundant work: a
// refusal to start (stage not Dirty) drops the remainder of the job.
func RunGenerateMesh(lvl *level.Level, id chunkid.ID) {
	c, ok := lvl.Get(id)
	if !ok {
		return
	}
	runMeshStage(lvl, c, id)
}

// RunGenerateChunkAndMesh fuses GenerateChunk and RunGenerateMesh, skipping
// the intermediate Level lookup per spec.md's description of C9's third job
// kind.
func RunGenerateChunkAndMesh(lvl *level.Level, gen worldgen.Generator, id chunkid.ID) {
	defer profiling.Track("jobs.RunGenerateChunkAndMesh")()
	c, result := lvl.Insert(id)
	if result == level.AlreadyPresent {
		return
	}
	data := gen.Generate(id)
	c.WriteVoxel(data)
	runMeshStage(lvl, c, id)
}

func runMeshStage(lvl *level.Level, c *level.Chunk, id chunkid.ID) {
	defer profiling.Track("jobs.runMeshStage")()
	if !c.OcclState.TryStartGenerating() {
		return
	}
	own, ok := c.Voxels()
	if !ok {
		own = voxel.Data{}
	}
	ownMaps := occlusion.BuildAxisAlignedMaps(&own)
	c.WriteOccl(ownMaps)

	if !c.MeshState.TryStartGenerating() {
		return
	}
	masks := occlusion.Build(ownMaps, neighborMaps(lvl, id))
	mesh := meshbuf.Build(id, &own, masks)
	c.WriteMesh(mesh)
}
