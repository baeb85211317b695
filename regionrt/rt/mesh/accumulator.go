package mesh

import (
	"github.com/gekko3d/regioncache/regionrt/rt/core"
	"github.com/go-gl/mathgl/mgl32"
)

// Accumulator records the geometry of one region rebuild, grouped by render
// layer. Layer buffers are allocated on first use. An Accumulator must be
// released once it is no longer needed, including when a rebuild is abandoned.
type Accumulator struct {
	pool      *BytePool
	builders  map[*core.RenderLayer]*layerBuilder
	order     []*core.RenderLayer
	finalized bool
}

type layerBuilder struct {
	layer     *core.RenderLayer
	pool      *BytePool
	data      []byte
	positions []mgl32.Vec3
	vertices  int
}

func (b *layerBuilder) AddVertex(v core.Vertex) {
	if b.data == nil {
		size := b.layer.BufferSize
		if size <= 0 {
			size = DefaultBufferSize
		}
		b.data = b.pool.Get(size)
	}
	b.data = b.layer.Layout.Encode(b.data, v)
	if b.layer.Sorted() {
		b.positions = append(b.positions, v.Pos)
	}
	b.vertices++
}

func (b *layerBuilder) release() {
	b.pool.Put(b.data)
	b.data = nil
	b.positions = nil
}

// NewAccumulator returns an accumulator drawing scratch memory from the shared pool.
func NewAccumulator() *Accumulator {
	return NewAccumulatorWithPool(sharedPool)
}

func NewAccumulatorWithPool(pool *BytePool) *Accumulator {
	return &Accumulator{
		pool:     pool,
		builders: make(map[*core.RenderLayer]*layerBuilder),
	}
}

// Sink returns the geometry sink for layer. It implements core.SinkProvider.
func (a *Accumulator) Sink(layer *core.RenderLayer) core.VertexSink {
	if a.finalized {
		panic("mesh: sink requested from a finalized accumulator")
	}
	if b, ok := a.builders[layer]; ok {
		return b
	}
	b := &layerBuilder{layer: layer, pool: a.pool}
	a.builders[layer] = b
	a.order = append(a.order, layer)
	return b
}

// IsEmpty reports whether no layer holds a vertex.
func (a *Accumulator) IsEmpty() bool {
	for _, b := range a.builders {
		if b.vertices > 0 {
			return false
		}
	}
	return true
}

// VertexCount is the number of vertices recorded for layer.
func (a *Accumulator) VertexCount(layer *core.RenderLayer) int {
	if b, ok := a.builders[layer]; ok {
		return b.vertices
	}
	return 0
}

// Layers returns the layers that have been written to, in first-use order.
func (a *Accumulator) Layers() []*core.RenderLayer {
	return a.order
}

// FinalizeAndUpload turns every layer with geometry into an immutable
// CompileResult and schedules its upload. origin is the viewpoint the initial
// translucent sort is computed against. Scratch memory of each layer is
// released as soon as its upload is scheduled. It returns the layers that were
// scheduled.
func (a *Accumulator) FinalizeAndUpload(
	target func(*core.RenderLayer) UploadTarget,
	scratch func(*core.RenderLayer) *SortScratch,
	origin mgl32.Vec3,
	schedule func(UploadTask),
) []*core.RenderLayer {
	a.finalized = true
	var scheduled []*core.RenderLayer
	for _, layer := range a.order {
		b := a.builders[layer]
		if b.vertices == 0 {
			b.release()
			continue
		}

		res := &CompileResult{
			Layer:       layer,
			VertexCount: b.vertices,
			IndexCount:  layer.Topology.IndexCount(b.vertices),
			VertexData:  append([]byte(nil), b.data...),
			Indices:     SequentialIndices(layer.Topology, b.vertices),
		}
		if layer.Sorted() {
			if sortState, ok := NewSortState(layer.Topology, b.positions); ok {
				res.Sort = sortState
				sorted := sortState.BuildSortedIndices(scratch(layer), origin)
				res.SortedIndices = append([]uint32(nil), sorted...)
			}
		}

		schedule(UploadTask{Target: target(layer), Layer: layer, Result: res})
		b.release()
		scheduled = append(scheduled, layer)
	}
	return scheduled
}

// Release returns all scratch memory to the pool. It is safe to call more than once.
func (a *Accumulator) Release() {
	for _, b := range a.builders {
		b.release()
	}
}
