// Package state implements the per-stage generation state machine described
// in spec.md §4.2: four states (Done, Dirty, Generating, GeneratingDirty)
// driven entirely by CAS loops on a single atomic word. This is the core's
// concurrency primitive — readers of a stage's data slot never block on the
// stage's writer, matching §9's "state machine instead of locks" design note.
package state

import "sync/atomic"

// Value is one of the four legal stage states.
type Value uint32

const (
	Done Value = iota
	Dirty
	Generating
	GeneratingDirty
)

func (v Value) String() string {
	switch v {
	case Done:
		return "Done"
	case Dirty:
		return "Dirty"
	case Generating:
		return "Generating"
	case GeneratingDirty:
		return "GeneratingDirty"
	default:
		return "Invalid"
	}
}

// Machine is an atomic stage state, CAS-driven per spec.md's transition
// table. The zero value is Done; callers needing a different initial state
// use New.
type Machine struct {
	v atomic.Uint32
}

// New returns a Machine initialized to the given state.
func New(initial Value) *Machine {
	m := &Machine{}
	m.v.Store(uint32(initial))
	return m
}

// Load reads the current state.
func (m *Machine) Load() Value {
	return Value(m.v.Load())
}

// IsDone reports whether the stage is currently Done.
func (m *Machine) IsDone() bool {
	return m.Load() == Done
}

// TryStartGenerating attempts Dirty -> Generating. It reports whether it
// succeeded; a false result means another worker already claimed this stage
// (or it isn't Dirty at all), and per spec.md §7 the caller must silently
// drop the job rather than retry.
func (m *Machine) TryStartGenerating() bool {
	for {
		cur := Value(m.v.Load())
		if cur != Dirty {
			return false
		}
		if m.v.CompareAndSwap(uint32(Dirty), uint32(Generating)) {
			return true
		}
	}
}

// FinishGenerating transitions Generating -> Done, or GeneratingDirty ->
// Dirty if an upstream write invalidated the stage mid-generation. Any other
// state is left untouched. Per spec.md §9's Open Question, write_voxel calls
// this on the voxel stage even though only voxel generation has finished;
// occl/mesh are instead transitioned via MarkDirty. Callers should not
// "optimize" that away.
func (m *Machine) FinishGenerating() {
	for {
		cur := Value(m.v.Load())
		switch cur {
		case Generating:
			if m.v.CompareAndSwap(uint32(Generating), uint32(Done)) {
				return
			}
		case GeneratingDirty:
			if m.v.CompareAndSwap(uint32(GeneratingDirty), uint32(Dirty)) {
				return
			}
		default:
			return
		}
	}
}

// MarkDirty transitions Done -> Dirty, or Generating -> GeneratingDirty so a
// retry is guaranteed once the in-flight generation completes. Any other
// state (already Dirty or GeneratingDirty) is left untouched.
func (m *Machine) MarkDirty() {
	for {
		cur := Value(m.v.Load())
		switch cur {
		case Done:
			if m.v.CompareAndSwap(uint32(Done), uint32(Dirty)) {
				return
			}
		case Generating:
			if m.v.CompareAndSwap(uint32(Generating), uint32(GeneratingDirty)) {
				return
			}
		default:
			return
		}
	}
}
