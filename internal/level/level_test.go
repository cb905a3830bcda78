package level

import (
	"sync"
	"testing"

	"github.com/mikatschuh/voxeled-engine/internal/chunkid"
	"github.com/mikatschuh/voxeled-engine/internal/occlusion"
	"github.com/mikatschuh/voxeled-engine/internal/state"
	"github.com/mikatschuh/voxeled-engine/internal/voxel"
)

func TestInsertNewChunkStartsGenerating(t *testing.T) {
	l := New()
	id := chunkid.New(0, chunkid.IVec3{X: 1, Y: 2, Z: 3})

	c, result := l.Insert(id)
	if result != Ok {
		t.Fatalf("expected Ok, got %v", result)
	}
	if c.VoxelState.Load() != state.Generating {
		t.Errorf("expected voxel=Generating, got %v", c.VoxelState.Load())
	}
	if c.OcclState.Load() != state.Done || c.MeshState.Load() != state.Done {
		t.Error("expected occl and mesh to start Done")
	}
}

// TestInsertCollisionReturnsAlreadyPresent and TestConcurrentInsertExactlyOneWins
// cover spec.md invariant 1: exactly one Chunk exists per ChunkID, and
// concurrent inserts race to exactly one winner.
func TestInsertCollisionReturnsAlreadyPresent(t *testing.T) {
	l := New()
	id := chunkid.New(0, chunkid.IVec3{})

	first, result := l.Insert(id)
	if result != Ok {
		t.Fatalf("expected first insert Ok, got %v", result)
	}
	second, result := l.Insert(id)
	if result != AlreadyPresent {
		t.Fatalf("expected AlreadyPresent, got %v", result)
	}
	if first != second {
		t.Error("expected the same chunk pointer to be returned on collision")
	}
}

func TestConcurrentInsertExactlyOneWins(t *testing.T) {
	l := New()
	id := chunkid.New(0, chunkid.IVec3{X: 9, Y: 9, Z: 9})

	const attempts = 32
	var wg sync.WaitGroup
	var mu sync.Mutex
	oks := 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, result := l.Insert(id); result == Ok {
				mu.Lock()
				oks++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if oks != 1 {
		t.Fatalf("expected exactly one Ok insert, got %d", oks)
	}
	if l.Len() != 1 {
		t.Fatalf("expected exactly one chunk stored, got %d", l.Len())
	}
}

// TestWriteVoxelDirtiesDownstream covers spec.md invariant 3: after
// write_voxel, occl and mesh stages are Dirty.
func TestWriteVoxelDirtiesDownstream(t *testing.T) {
	l := New()
	id := chunkid.New(0, chunkid.IVec3{})
	c, _ := l.Insert(id)

	c.WriteVoxel(voxel.Fill(voxel.Stone))

	if c.VoxelState.Load() != state.Done {
		t.Errorf("expected voxel=Done, got %v", c.VoxelState.Load())
	}
	if c.OcclState.Load() != state.Dirty {
		t.Errorf("expected occl=Dirty, got %v", c.OcclState.Load())
	}
	if c.MeshState.Load() != state.Dirty {
		t.Errorf("expected mesh=Dirty, got %v", c.MeshState.Load())
	}

	data, ok := c.Voxels()
	if !ok {
		t.Fatal("expected voxel data to be present")
	}
	if data[0][0][0] != voxel.Stone {
		t.Error("expected stored voxel data to round-trip")
	}
}

func TestWriteOcclDirtiesMesh(t *testing.T) {
	l := New()
	id := chunkid.New(0, chunkid.IVec3{})
	c, _ := l.Insert(id)
	c.WriteVoxel(voxel.Fill(voxel.Air))
	c.OcclState.TryStartGenerating()

	c.WriteOccl(occlusion.AxisAlignedMaps{})

	if c.OcclState.Load() != state.Done {
		t.Errorf("expected occl=Done, got %v", c.OcclState.Load())
	}
	if c.MeshState.Load() != state.Dirty {
		t.Errorf("expected mesh=Dirty after write_occl, got %v", c.MeshState.Load())
	}
}

func TestRemoveThenInsertIsIdempotent(t *testing.T) {
	l := New()
	id := chunkid.New(0, chunkid.IVec3{})
	l.Insert(id)
	l.Remove(id)
	if l.Contains(id) {
		t.Fatal("expected chunk to be gone after Remove")
	}
	_, result := l.Insert(id)
	if result != Ok {
		t.Fatalf("expected re-insert after removal to succeed, got %v", result)
	}
}

func TestWithChunkSeesInsertedChunk(t *testing.T) {
	l := New()
	id := chunkid.New(0, chunkid.IVec3{X: 4, Y: 5, Z: 6})
	l.Insert(id)

	gotID, ok := WithChunk(l, id, func(c *Chunk) chunkid.ID { return c.ID })
	if !ok {
		t.Fatal("expected WithChunk to find the chunk")
	}
	if gotID != id {
		t.Errorf("expected id %+v, got %+v", id, gotID)
	}

	if _, ok := WithChunk(l, chunkid.New(5, chunkid.IVec3{}), func(c *Chunk) int { return 0 }); ok {
		t.Error("expected WithChunk to report false for an absent chunk")
	}
}

func TestEvictOutsideRadius(t *testing.T) {
	l := New()
	near := chunkid.New(0, chunkid.IVec3{X: 0, Y: 0, Z: 0})
	far := chunkid.New(0, chunkid.IVec3{X: 100, Y: 0, Z: 0})
	l.Insert(near)
	l.Insert(far)

	removed := l.EvictOutsideRadius(0, chunkid.IVec3{}, 10)
	if removed != 1 {
		t.Fatalf("expected 1 chunk evicted, got %d", removed)
	}
	if !l.Contains(near) || l.Contains(far) {
		t.Error("expected only the far chunk to be evicted")
	}
}
