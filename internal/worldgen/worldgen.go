// Package worldgen supplies the Generator collaborator spec.md's job runner
// calls to populate a chunk's voxel stage. spec.md treats the generator as an
// external pure function ("Generator.generate(id)") and leaves its internals
// out of scope; this package adapts the shape of the teacher's
// internal/world/generator.go (a seeded heightmap generator) to the chunked,
// multi-LOD voxel grid instead of the teacher's flat Y-stacked chunk column.
package worldgen

import (
	"math"

	"github.com/mikatschuh/voxeled-engine/internal/chunkid"
	"github.com/mikatschuh/voxeled-engine/internal/voxel"
)

// Generator produces a chunk's voxel data from its identity alone, with no
// side effects and no locking — the same "pure, no locks" contract spec.md
// places on GenerateChunk's call into the generator.
type Generator interface {
	Generate(id chunkid.ID) voxel.Data
}

// Flat always returns a chunk filled with a single voxel type, useful for
// tests and for exercising the pipeline without a real terrain generator.
type Flat struct {
	Fill voxel.Type
}

func (f Flat) Generate(chunkid.ID) voxel.Data {
	return voxel.Fill(f.Fill)
}

// Height is a seeded heightmap generator, the multi-LOD descendant of the
// teacher's Generator.HeightAt/PopulateChunk. Rather than octave simplex
// noise (which the teacher sourced from a deleted noise.go this module does
// not carry forward, see DESIGN.md), it derives a height from a cheap
// deterministic hash of world X/Z so the package stays dependency-free; swap
// Height.noise for a real noise library without touching Generate's shape.
type Height struct {
	Seed       int64
	BaseHeight int32
	Amplitude  float64
}

// NewHeight returns a Height generator with the teacher's default tuning.
func NewHeight(seed int64) *Height {
	return &Height{Seed: seed, BaseHeight: 32, Amplitude: 16}
}

func (h *Height) noise(x, z int32) float64 {
	n := int64(x)*374761393 + int64(z)*668265263 + h.Seed
	n = (n ^ (n >> 13)) * 1274126177
	n = n ^ (n >> 16)
	// fold into [-1, 1)
	return float64(uint32(n)%20000)/10000.0 - 1.0
}

func (h *Height) heightAt(worldX, worldZ int32) int32 {
	height := float64(h.BaseHeight) + h.noise(worldX, worldZ)*h.Amplitude
	return int32(math.Floor(height))
}

// Generate fills the chunk's voxel grid from the heightmap, projecting the
// chunk's world-voxel origin via ChunkID.TotalPos scaled by 2^lod per
// voxel, so every LOD samples the same underlying surface at a coarser
// stride (matching the mip-style LOD semantics the GLOSSARY describes).
func (h *Height) Generate(id chunkid.ID) voxel.Data {
	var data voxel.Data
	stride := int32(1) << id.LOD
	origin := id.TotalPos().Shl(5)

	for x := 0; x < voxel.Size; x++ {
		worldX := origin.X + int32(x)*stride
		for z := 0; z < voxel.Size; z++ {
			worldZ := origin.Z + int32(z)*stride
			surface := h.heightAt(worldX, worldZ)
			for y := 0; y < voxel.Size; y++ {
				worldY := origin.Y + int32(y)*stride
				switch {
				case worldY < surface-4:
					data[x][y][z] = voxel.Stone
				case worldY < surface:
					data[x][y][z] = voxel.Dirt
				}
			}
		}
	}
	return data
}
