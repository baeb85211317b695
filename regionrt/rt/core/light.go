package core

import "github.com/go-gl/mathgl/mgl32"

const (
	// FullBright is block light 15 and sky light 15, packed.
	FullBright uint32 = 0x00F000F0
	// NoOverlay is the overlay value for an undamaged, unflashing object.
	NoOverlay uint32 = 10 << 16
)

// PackLight packs block and sky light levels (0..15) the way vertex light UVs expect.
func PackLight(block, sky int) uint32 {
	return uint32(clampLevel(block))<<4 | uint32(clampLevel(sky))<<20
}

// UnpackLight is the inverse of PackLight.
func UnpackLight(packed uint32) (block, sky int) {
	return int(packed>>4) & 0xF, int(packed>>20) & 0xF
}

// PackOverlay packs overlay texture coordinates.
func PackOverlay(u, v int) uint32 {
	return uint32(u&0xFFFF) | uint32(v&0xFFFF)<<16
}

func clampLevel(l int) int {
	if l < 0 {
		return 0
	}
	if l > 15 {
		return 15
	}
	return l
}

// World is the scene context objects live in.
type World interface {
	// LightAt returns the packed light value at pos.
	LightAt(pos mgl32.Vec3) uint32
}

// LightAt resolves lighting for pos, falling back to FullBright without a world.
func LightAt(w World, pos mgl32.Vec3) uint32 {
	if w == nil {
		return FullBright
	}
	return w.LightAt(pos)
}
