package gpu

import (
	"fmt"

	"github.com/gekko3d/regioncache/regionrt/rt/core"
	"github.com/gekko3d/regioncache/regionrt/rt/mesh"
	"github.com/go-gl/mathgl/mgl32"
)

// LayerBuffer is the committed GPU geometry of one layer of one region.
// It is never updated in place; a new upload replaces it.
type LayerBuffer struct {
	Layer      *core.RenderLayer
	Vertex     Buffer
	Index      Buffer
	IndexCount int
	Sort       *mesh.SortState

	released bool
}

// NewLayerBuffer uploads res into fresh vertex and index buffers.
func NewLayerBuffer(dev Device, label string, res *mesh.CompileResult) (*LayerBuffer, error) {
	if res.Empty() {
		return nil, fmt.Errorf("layer %s has nothing to upload", res.Layer)
	}

	vb, err := dev.CreateBuffer(BufferDescriptor{
		Label: label + " Vertex Buffer",
		Usage: BufferUsageVertex,
		Size:  alignSize(uint64(len(res.VertexData))),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create vertex buffer: %w", err)
	}
	if err := dev.WriteBuffer(vb, 0, padded(res.VertexData)); err != nil {
		vb.Release()
		return nil, fmt.Errorf("failed to write vertex buffer: %w", err)
	}

	ib, err := dev.CreateBuffer(BufferDescriptor{
		Label: label + " Index Buffer",
		Usage: BufferUsageIndex,
		Size:  uint64(res.IndexCount) * 4,
	})
	if err != nil {
		vb.Release()
		return nil, fmt.Errorf("failed to create index buffer: %w", err)
	}
	if err := dev.WriteBuffer(ib, 0, mesh.IndexBytes(nil, res.DrawIndices())); err != nil {
		vb.Release()
		ib.Release()
		return nil, fmt.Errorf("failed to write index buffer: %w", err)
	}

	return &LayerBuffer{
		Layer:      res.Layer,
		Vertex:     vb,
		Index:      ib,
		IndexCount: res.IndexCount,
		Sort:       res.Sort,
	}, nil
}

func padded(data []byte) []byte {
	if n := alignSize(uint64(len(data))); n != uint64(len(data)) {
		out := make([]byte, n)
		copy(out, data)
		return out
	}
	return data
}

// Draw issues the layer's draw call. Sort-on-draw layers get a fresh
// far-to-near index order for origin first; vertex data is never touched.
func (b *LayerBuffer) Draw(dev Device, pass Pass, scratch *mesh.SortScratch, origin mgl32.Vec3) error {
	if b.released || b.IndexCount <= 0 {
		return nil
	}
	if b.Sort != nil && scratch != nil {
		data := b.Sort.BuildSortedIndexBytes(scratch, origin)
		if err := dev.WriteBuffer(b.Index, 0, data); err != nil {
			return fmt.Errorf("failed to write sorted indices: %w", err)
		}
	}
	pass.DrawIndexed(b.Vertex, b.Index, uint32(b.IndexCount))
	return nil
}

// Release frees the GPU buffers. Later calls are no-ops.
func (b *LayerBuffer) Release() {
	if b == nil || b.released {
		return
	}
	b.released = true
	b.Vertex.Release()
	b.Index.Release()
}

func (b *LayerBuffer) Released() bool {
	return b.released
}
