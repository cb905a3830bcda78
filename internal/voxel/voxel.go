// Package voxel defines the per-voxel type enumeration and the fixed-size
// voxel grid that a single chunk stores.
package voxel

// Type enumerates the finite set of voxel contents a chunk can hold.
type Type uint8

const (
	Air Type = iota
	Stone
	CrackedStone
	Dirt
)

// definition holds the per-type properties this package needs to expose:
// a debug name, solidity, and a texture ID per face direction.
type definition struct {
	name       string
	solid      bool
	textureIDs [6]uint16 // indexed by face direction, see Face constants below
}

// Face identifies one of the six axis-aligned face directions, ordered the
// way Mesh buckets are ordered: {-x,+x,-y,+y,-z,+z}.
type Face uint8

const (
	FaceNegX Face = iota
	FacePosX
	FaceNegY
	FacePosY
	FaceNegZ
	FacePosZ
)

var registry = map[Type]definition{
	Air:          {name: "air", solid: false},
	Stone:        {name: "stone", solid: true, textureIDs: [6]uint16{1, 1, 1, 1, 1, 1}},
	CrackedStone: {name: "cracked_stone", solid: true, textureIDs: [6]uint16{2, 2, 2, 2, 2, 2}},
	Dirt:         {name: "dirt", solid: true, textureIDs: [6]uint16{3, 3, 3, 3, 3, 3}},
}

// IsSolid reports whether the voxel occludes neighboring faces. Air is
// never solid.
func (t Type) IsSolid() bool {
	return registry[t].solid
}

// TextureID returns the texture layer index for the given face direction.
// Types missing from the registry fall back to texture 0.
func (t Type) TextureID(face Face) uint16 {
	def, ok := registry[t]
	if !ok {
		return 0
	}
	return def.textureIDs[face]
}

// Name returns the registered name, mainly for debug logging.
func (t Type) Name() string {
	if def, ok := registry[t]; ok {
		return def.name
	}
	return "unknown"
}

// Size is the fixed edge length of a chunk's voxel grid, in voxels.
const Size = 32

// Data is the 32x32x32 voxel block owned by a chunk's voxel stage, ordered
// [x][y][z].
type Data [Size][Size][Size]Type

// Fill returns a Data cube with every voxel set to t, used by
// worldgen.Flat and by tests that want a uniform block.
func Fill(t Type) Data {
	var d Data
	if t == Air {
		return d
	}
	for x := range d {
		for y := range d[x] {
			for z := range d[x][y] {
				d[x][y][z] = t
			}
		}
	}
	return d
}
