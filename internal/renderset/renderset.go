// Package renderset implements the LOD-aware render-set resolver described
// in spec.md §4.6 (C8): for each desired chunk, substitute a coarser
// meshed ancestor when its own mesh isn't ready yet, then drop any
// selection that overlaps an already-selected (finer) chunk.
package renderset

import "github.com/mikatschuh/voxeled-engine/internal/chunkid"

// MeshReady reports whether the given ChunkID currently has mesh=Done.
// Callers typically close over a *level.Level and read c.MeshState.IsDone().
type MeshReady func(chunkid.ID) bool

// Resolve walks desired in order, substituting each id with the finest
// meshed ancestor (including itself), dropping ids with no meshed ancestor
// up to MaxLOD, and deduplicating overlapping selections in favor of the
// finer LOD. Matches spec.md §4.6's three-step algorithm and invariant 4
// ("for any two chunks a, b in the render-set, chunk_overlaps(a, b) is
// false").
func Resolve(desired []chunkid.ID, ready MeshReady) []chunkid.ID {
	selected := make([]chunkid.ID, 0, len(desired))

	for _, id := range desired {
		candidate, ok := resolveAncestor(id, ready)
		if !ok {
			continue
		}

		overlapsExisting := false
		replaceIdx := -1
		for i, s := range selected {
			if !chunkid.Overlaps(candidate, s) {
				continue
			}
			overlapsExisting = true
			if candidate.LOD < s.LOD {
				// candidate is finer: it wins over the coarser existing entry.
				replaceIdx = i
			}
			break
		}

		switch {
		case !overlapsExisting:
			selected = append(selected, candidate)
		case replaceIdx >= 0:
			selected[replaceIdx] = candidate
		}
		// overlapsExisting && replaceIdx < 0: existing entry is finer or
		// equal, so candidate is dropped.
	}

	return selected
}

// resolveAncestor walks id's parent chain until it finds one with a ready
// mesh or exceeds MaxLOD, per spec.md's "walk parents until one with
// mesh=Done is found or lod >= MAX_LOD".
func resolveAncestor(id chunkid.ID, ready MeshReady) (chunkid.ID, bool) {
	cur := id
	for {
		if ready(cur) {
			return cur, true
		}
		if cur.LOD >= chunkid.MaxLOD {
			return chunkid.ID{}, false
		}
		cur = cur.Parent()
	}
}
