package mesh

import "github.com/gekko3d/regioncache/regionrt/rt/core"

// CompileResult is the immutable CPU-side mesh of one layer of one region.
type CompileResult struct {
	Layer       *core.RenderLayer
	VertexData  []byte
	VertexCount int
	IndexCount  int
	// Indices is the default sequential draw order.
	Indices []uint32
	// Sort and SortedIndices are set for sort-on-draw layers only.
	Sort          *SortState
	SortedIndices []uint32
}

// Empty reports whether the result has nothing to draw. Committing an empty
// result clears the layer.
func (r *CompileResult) Empty() bool {
	return r == nil || r.IndexCount <= 0
}

// DrawIndices is the index order to upload first.
func (r *CompileResult) DrawIndices() []uint32 {
	if r.SortedIndices != nil {
		return r.SortedIndices
	}
	return r.Indices
}

// UploadTarget installs a compiled layer into persistent GPU storage.
type UploadTarget interface {
	Commit(layer *core.RenderLayer, res *CompileResult) error
}

// UploadTask is a queued transfer of one CompileResult to its target.
type UploadTask struct {
	Target UploadTarget
	Layer  *core.RenderLayer
	Result *CompileResult
}

// ClearTask returns a task that drops layer from target.
func ClearTask(target UploadTarget, layer *core.RenderLayer) UploadTask {
	return UploadTask{Target: target, Layer: layer}
}

func (t UploadTask) Run() error {
	layer := t.Layer
	if layer == nil && t.Result != nil {
		layer = t.Result.Layer
	}
	return t.Target.Commit(layer, t.Result)
}
