// Package level implements the chunk store: a concurrent ChunkID -> Chunk
// map with reference-counted shared handles, and the Chunk type housing the
// three generation stages (voxel, occl, mesh), each pairing a data slot with
// a state.Machine. Generalizes a single-grid chunk store into three
// independently-staged, independently-locked data slots driven by a CAS
// state machine instead of a plain dirty bool.
package level

import (
	"sync"

	"github.com/mikatschuh/voxeled-engine/internal/chunkid"
	"github.com/mikatschuh/voxeled-engine/internal/meshbuf"
	"github.com/mikatschuh/voxeled-engine/internal/occlusion"
	"github.com/mikatschuh/voxeled-engine/internal/state"
	"github.com/mikatschuh/voxeled-engine/internal/voxel"
)

// Chunk owns three generation stages. Each stage has its own RWMutex so a
// writer in one stage never blocks a reader of another.
// Chunks are only ever referenced through *Chunk pointers handed out by
// Level, so a handle obtained via Get or Insert remains valid (the Go
// garbage collector is the reference count: as long as a caller holds the
// pointer, it stays alive even after Level.Remove drops the map entry).
type Chunk struct {
	ID chunkid.ID

	VoxelState *state.Machine
	OcclState  *state.Machine
	MeshState  *state.Machine

	voxelMu sync.RWMutex
	voxels  *voxel.Data

	occlMu sync.RWMutex
	occl   *occlusion.AxisAlignedMaps

	meshMu sync.RWMutex
	mesh   *meshbuf.Mesh
}

// newChunk builds a freshly-inserted chunk: voxel=Generating (the inserting
// worker has reserved it), occl=Done, mesh=Done.
func newChunk(id chunkid.ID) *Chunk {
	return &Chunk{
		ID:         id,
		VoxelState: state.New(state.Generating),
		OcclState:  state.New(state.Done),
		MeshState:  state.New(state.Done),
	}
}

// Voxels returns the chunk's voxel data and whether it has been written yet.
func (c *Chunk) Voxels() (voxel.Data, bool) {
	c.voxelMu.RLock()
	defer c.voxelMu.RUnlock()
	if c.voxels == nil {
		return voxel.Data{}, false
	}
	return *c.voxels, true
}

// WriteVoxel stores generated voxel data and transitions the state machine:
// voxel -> Done (or Dirty if invalidated mid-generation), occl -> Dirty,
// mesh -> Dirty.
func (c *Chunk) WriteVoxel(data voxel.Data) {
	c.voxelMu.Lock()
	c.voxels = &data
	c.voxelMu.Unlock()

	c.VoxelState.FinishGenerating()
	c.OcclState.MarkDirty()
	c.MeshState.MarkDirty()
}

// Occl returns the chunk's axis-aligned solid maps and whether they exist.
func (c *Chunk) Occl() (occlusion.AxisAlignedMaps, bool) {
	c.occlMu.RLock()
	defer c.occlMu.RUnlock()
	if c.occl == nil {
		return occlusion.AxisAlignedMaps{}, false
	}
	return *c.occl, true
}

// WriteOccl stores built occlusion maps and transitions occl -> Done (or
// Dirty) and mesh -> Dirty.
func (c *Chunk) WriteOccl(maps occlusion.AxisAlignedMaps) {
	c.occlMu.Lock()
	c.occl = &maps
	c.occlMu.Unlock()

	c.OcclState.FinishGenerating()
	c.MeshState.MarkDirty()
}

// Mesh returns the chunk's built mesh and whether it exists.
func (c *Chunk) Mesh() (meshbuf.Mesh, bool) {
	c.meshMu.RLock()
	defer c.meshMu.RUnlock()
	if c.mesh == nil {
		return meshbuf.Mesh{}, false
	}
	return *c.mesh, true
}

// WriteMesh stores a built mesh and transitions mesh -> Done (or Dirty).
func (c *Chunk) WriteMesh(m meshbuf.Mesh) {
	c.meshMu.Lock()
	c.mesh = &m
	c.meshMu.Unlock()

	c.MeshState.FinishGenerating()
}

// Level is the concurrent ChunkID -> *Chunk map: a single reader-writer
// lock around a hashed table, since readers dominate.
type Level struct {
	mu     sync.RWMutex
	chunks map[chunkid.ID]*Chunk
}

// New returns an empty Level.
func New() *Level {
	return &Level{chunks: make(map[chunkid.ID]*Chunk)}
}

// InsertResult reports the outcome of Insert's atomic check-and-insert.
type InsertResult uint8

const (
	Ok InsertResult = iota
	AlreadyPresent
)

// Insert atomically creates and inserts a new chunk for id if one is not
// already present; only the winner should run the generator for id.
func (l *Level) Insert(id chunkid.ID) (*Chunk, InsertResult) {
	l.mu.RLock()
	if existing, ok := l.chunks[id]; ok {
		l.mu.RUnlock()
		return existing, AlreadyPresent
	}
	l.mu.RUnlock()

	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, ok := l.chunks[id]; ok {
		return existing, AlreadyPresent
	}
	c := newChunk(id)
	l.chunks[id] = c
	return c, Ok
}

// Get returns the chunk for id, if present.
func (l *Level) Get(id chunkid.ID) (*Chunk, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	c, ok := l.chunks[id]
	return c, ok
}

// Contains reports whether id currently has a chunk in the Level.
func (l *Level) Contains(id chunkid.ID) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.chunks[id]
	return ok
}

// WithChunk runs f(chunk) while the map is read-locked, returning f's
// result. f must not block on Level writes. Returns the zero value and
// false if id is absent.
func WithChunk[R any](l *Level, id chunkid.ID, f func(*Chunk) R) (R, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	c, ok := l.chunks[id]
	var zero R
	if !ok {
		return zero, false
	}
	return f(c), true
}

// Remove detaches id's chunk from the map. Handles already held by callers
// (in-flight jobs, the frame render list) stay valid: removal is a map
// deletion, not a destruction — the Go garbage collector keeps the chunk
// alive as long as any caller still holds its pointer.
func (l *Level) Remove(id chunkid.ID) {
	l.mu.Lock()
	delete(l.chunks, id)
	l.mu.Unlock()
}

// Len returns the number of chunks currently tracked.
func (l *Level) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.chunks)
}

// EvictOutsideRadius removes every chunk at the given lod whose chunk-space
// distance from center exceeds radius, mirroring the teacher's
// EvictFarChunks (internal/world/chunk_store.go). Eviction is not mandated
// by spec.md but is noted there as a necessary addition for a long-running
// instance (spec.md's Non-goals section).
func (l *Level) EvictOutsideRadius(lod chunkid.LOD, center chunkid.IVec3, radius int32) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	removed := 0
	for id := range l.chunks {
		if id.LOD != lod {
			continue
		}
		dx := id.Pos.X - center.X
		dy := id.Pos.Y - center.Y
		dz := id.Pos.Z - center.Z
		if dx*dx+dy*dy+dz*dz > radius*radius {
			delete(l.chunks, id)
			removed++
		}
	}
	return removed
}
