// Package frustum implements the BFS chunk selector described in spec.md
// §4.5: given a camera pose, flood-fill outward from the camera's chunk,
// pruning by frustum planes and promoting to coarser LOD with distance.
// Ported from original_source/src/frustum.rs's Frustum::flood_fill; the
// gimbal-lock fallback, six-plane test, and interleaved current/next-LOD
// queues are carried over verbatim, using github.com/go-gl/mathgl/mgl32 for
// the camera-space vector math the way the teacher's graphics package does.
package frustum

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mikatschuh/voxeled-engine/internal/chunkid"
	"github.com/mikatschuh/voxeled-engine/internal/profiling"
)

// Frustum describes one frame's view, in world-voxel units (chunk units =
// voxel units / 32), per spec.md's DATA MODEL.
type Frustum struct {
	CamPos    mgl32.Vec3
	Direction mgl32.Vec3

	Fov         float32
	AspectRatio float32

	MaxChunks       int
	MaxDistance     float32
	FullDetailRange float32
}

// lodAt implements spec.md's lod_at(distance) = ceil(log2(ceil(dist /
// full_detail_range))), clamped to [0, MaxLOD].
func lodAt(fullDetailRange, dist float32) chunkid.LOD {
	if fullDetailRange <= 0 || dist <= fullDetailRange {
		return 0
	}
	ratio := math.Ceil(float64(dist / fullDetailRange))
	lod := math.Ceil(math.Log2(ratio))
	if lod < 0 {
		lod = 0
	}
	if lod > float64(chunkid.MaxLOD) {
		return chunkid.MaxLOD
	}
	return chunkid.LOD(lod)
}

func neighbors(c chunkid.ID) [6]chunkid.ID {
	p := c.Pos
	return [6]chunkid.ID{
		chunkid.New(c.LOD, chunkid.IVec3{X: p.X - 1, Y: p.Y, Z: p.Z}),
		chunkid.New(c.LOD, chunkid.IVec3{X: p.X + 1, Y: p.Y, Z: p.Z}),
		chunkid.New(c.LOD, chunkid.IVec3{X: p.X, Y: p.Y - 1, Z: p.Z}),
		chunkid.New(c.LOD, chunkid.IVec3{X: p.X, Y: p.Y + 1, Z: p.Z}),
		chunkid.New(c.LOD, chunkid.IVec3{X: p.X, Y: p.Y, Z: p.Z - 1}),
		chunkid.New(c.LOD, chunkid.IVec3{X: p.X, Y: p.Y, Z: p.Z + 1}),
	}
}

func toVec3(v chunkid.IVec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// FloodFill selects up to MaxChunks visible chunk IDs, expanding outward
// from the camera's LOD-0 chunk across the six axial neighbors, pruning
// anything entirely outside the six frustum planes and promoting neighbors
// to a coarser LOD once they're far enough away. The de-duplication set
// guarantees no returned ID repeats (spec.md invariant 5).
func (f Frustum) FloodFill() []chunkid.ID {
	defer profiling.Track("frustum.FloodFill")()

	if f.MaxChunks <= 0 {
		return nil
	}

	camPos := f.CamPos.Mul(1.0 / 32.0)

	forward := f.Direction
	if forward.LenSqr() > 0 {
		forward = forward.Normalize()
	} else {
		forward = mgl32.Vec3{0, 0, 1}
	}
	var right mgl32.Vec3
	if abs32(forward[1]) > 0.999 {
		right = mgl32.Vec3{1, 0, 0}
	} else {
		right = mgl32.Vec3{0, 1, 0}.Cross(forward).Normalize()
	}
	up := forward.Cross(right).Normalize()

	tanHalfFov := float32(math.Tan(float64(f.Fov) * 0.5))
	tanHalfFovX := tanHalfFov * f.AspectRatio
	maxDistance := f.MaxDistance
	if maxDistance < 0 {
		maxDistance = 0
	}

	nearNormal := forward.Mul(-1)
	farNormal := forward
	leftNormal := right.Mul(-1).Sub(forward.Mul(tanHalfFovX))
	rightNormal := right.Sub(forward.Mul(tanHalfFovX))
	bottomNormal := up.Mul(-1).Sub(forward.Mul(tanHalfFov))
	topNormal := up.Sub(forward.Mul(tanHalfFov))

	outsidePlane := func(center mgl32.Vec3, halfExtent float32, normal mgl32.Vec3, offset float32) bool {
		delta := center.Sub(camPos)
		signedCenter := delta.Dot(normal) + offset
		projectedRadius := halfExtent * (abs32(normal[0]) + abs32(normal[1]) + abs32(normal[2]))
		return signedCenter-projectedRadius > 0
	}

	inFrustum := func(id chunkid.ID) bool {
		size := float32(id.Size())
		center := toVec3(id.TotalPos()).Add(mgl32.Vec3{size * 0.5, size * 0.5, size * 0.5})
		halfExtent := size * 0.5

		return !outsidePlane(center, halfExtent, nearNormal, 0) &&
			!outsidePlane(center, halfExtent, farNormal, -maxDistance) &&
			!outsidePlane(center, halfExtent, leftNormal, 0) &&
			!outsidePlane(center, halfExtent, rightNormal, 0) &&
			!outsidePlane(center, halfExtent, bottomNormal, 0) &&
			!outsidePlane(center, halfExtent, topNormal, 0)
	}

	alreadyQueued := make(map[chunkid.ID]struct{}, f.MaxChunks*2)
	candidates := make([]chunkid.ID, 0, f.MaxChunks*2)
	nextLODCandidates := make([]chunkid.ID, 0, f.MaxChunks*2)

	baseChunk := chunkid.New(0, chunkid.IVec3{
		X: int32(math.Floor(float64(camPos[0]))),
		Y: int32(math.Floor(float64(camPos[1]))),
		Z: int32(math.Floor(float64(camPos[2]))),
	})
	candidates = append(candidates, baseChunk)
	alreadyQueued[baseChunk] = struct{}{}

	result := make([]chunkid.ID, 0, f.MaxChunks)

	for len(candidates) > 0 {
		chunk := candidates[0]
		candidates = candidates[1:]

		if inFrustum(chunk) {
			result = append(result, chunk)
			if len(result) >= f.MaxChunks {
				break
			}

			for _, neighbor := range neighbors(chunk) {
				if _, seen := alreadyQueued[neighbor]; seen {
					continue
				}
				alreadyQueued[neighbor] = struct{}{}

				dist := toVec3(neighbor.TotalPos()).Sub(camPos).Len()
				lod := lodAt(f.FullDetailRange, dist)
				parent := neighbor.Parent()

				if lod > chunk.LOD {
					if _, seen := alreadyQueued[parent]; !seen {
						alreadyQueued[parent] = struct{}{}
						nextLODCandidates = append(nextLODCandidates, parent)
					}
				} else {
					candidates = append(candidates, neighbor)
				}
			}
		}

		if len(candidates) == 0 {
			candidates, nextLODCandidates = nextLODCandidates, candidates[:0]
		}
	}

	return result
}
