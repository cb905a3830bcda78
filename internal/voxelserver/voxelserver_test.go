package voxelserver

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mikatschuh/voxeled-engine/internal/chunkid"
	"github.com/mikatschuh/voxeled-engine/internal/frustum"
	"github.com/mikatschuh/voxeled-engine/internal/level"
	"github.com/mikatschuh/voxeled-engine/internal/voxel"
	"github.com/mikatschuh/voxeled-engine/internal/workerpool"
)

// TestGetMeshEmptyWorld: an all-air generator with max_chunks=1 yields an
// empty mesh (all buckets size 0) once the sole selected chunk finishes
// generating.
func TestGetMeshEmptyWorld(t *testing.T) {
	lvl := level.New()
	gen := worldgenAir{}
	pool := workerpool.New(2, 16, lvl, gen)
	defer pool.Shutdown()
	srv := New(lvl, pool)

	f := frustum.Frustum{
		CamPos:          mgl32.Vec3{0, 0, 0},
		Direction:       mgl32.Vec3{0, 0, 1},
		Fov:             1.0,
		AspectRatio:     16.0 / 9.0,
		MaxChunks:       1,
		MaxDistance:     48,
		FullDetailRange: 12,
	}

	deadline := time.Now().Add(2 * time.Second)
	var mesh = srv.GetMesh(f)
	for mesh.Count() != 0 {
		if time.Now().After(deadline) {
			break
		}
		time.Sleep(time.Millisecond)
		mesh = srv.GetMesh(f)
	}
	if mesh.Count() != 0 {
		t.Fatalf("expected an empty mesh for an all-air world, got %d instances", mesh.Count())
	}
}

func TestSolidAtUnknownIsConservativelySolid(t *testing.T) {
	lvl := level.New()
	gen := worldgenAir{}
	pool := workerpool.New(0, 1, lvl, gen)
	defer pool.Shutdown()
	srv := New(lvl, pool)

	if !srv.SolidAt(chunkid.IVec3{X: 1000, Y: 1000, Z: 1000}) {
		t.Error("expected unknown terrain to be treated as solid")
	}
}

func TestSolidAtReadsDoneLOD0Chunk(t *testing.T) {
	lvl := level.New()
	id := chunkid.New(0, chunkid.IVec3{})
	c, _ := lvl.Insert(id)
	data := voxel.Fill(voxel.Air)
	data[3][3][3] = voxel.Stone
	c.WriteVoxel(data)

	gen := worldgenAir{}
	pool := workerpool.New(0, 1, lvl, gen)
	defer pool.Shutdown()
	srv := New(lvl, pool)

	if !srv.SolidAt(chunkid.IVec3{X: 3, Y: 3, Z: 3}) {
		t.Error("expected (3,3,3) to be solid")
	}
	if srv.SolidAt(chunkid.IVec3{X: 0, Y: 0, Z: 0}) {
		t.Error("expected (0,0,0) to be air")
	}
}

type worldgenAir struct{}

func (worldgenAir) Generate(chunkid.ID) voxel.Data { return voxel.Data{} }
