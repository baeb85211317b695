package gpu

import (
	"github.com/gekko3d/regioncache/regionrt/rt/core"
	"github.com/go-gl/mathgl/mgl32"
)

type BufferUsage uint8

const (
	BufferUsageVertex BufferUsage = iota
	BufferUsageIndex
	BufferUsageUniform
)

type BufferDescriptor struct {
	Label string
	Usage BufferUsage
	Size  uint64
}

// Buffer is a GPU-resident buffer. Release must be called exactly once.
type Buffer interface {
	Size() uint64
	Release()
}

// Device creates and fills GPU buffers.
type Device interface {
	CreateBuffer(desc BufferDescriptor) (Buffer, error)
	WriteBuffer(buf Buffer, offset uint64, data []byte) error
}

// DrawUniforms is the per-frame camera state bound for cached geometry.
// CellOffset shifts world-space vertices into camera-relative space.
type DrawUniforms struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	CellOffset mgl32.Vec3
}

// Pass records draw calls of cached layers into the current frame.
type Pass interface {
	// BeginLayer binds the render state of layer.
	BeginLayer(layer *core.RenderLayer, uniforms DrawUniforms) error
	DrawIndexed(vertex Buffer, index Buffer, indexCount uint32)
	// EndLayer restores any state BeginLayer changed.
	EndLayer(layer *core.RenderLayer)
}

// alignSize rounds size up to the 4-byte copy alignment.
func alignSize(size uint64) uint64 {
	if size%4 != 0 {
		size += 4 - (size % 4)
	}
	return size
}
