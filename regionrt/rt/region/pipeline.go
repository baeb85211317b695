package region

import (
	"github.com/gekko3d/regioncache/regionrt/rt/core"
	"github.com/gekko3d/regioncache/regionrt/rt/gpu"
	"github.com/gekko3d/regioncache/regionrt/rt/mesh"
	"github.com/go-gl/mathgl/mgl32"
)

type Config struct {
	CellSize float32
	// HorizonDistance overrides the viewpoint's horizon when positive.
	HorizonDistance float32
	// PartialTick returns the interpolation fraction handed to renderers.
	PartialTick func() float32
	Logger      Logger
}

func DefaultConfig() Config {
	return Config{CellSize: core.DefaultCellSize}
}

// DrainStats summarizes one RunPendingTasks call.
type DrainStats struct {
	Compiled int
	// Rebuilt counts compile tasks that ran to completion.
	Rebuilt  int
	Uploaded int
	Failed   int
}

// Pipeline owns the cells of one level and the deferred work that keeps their
// GPU buffers in sync with the tracked objects. It is not safe for concurrent
// use; all calls come from the render loop.
type Pipeline struct {
	device    gpu.Device
	renderers *core.RendererRegistry
	viewpoint core.Viewpoint
	config    Config
	log       Logger
	pool      *mesh.BytePool

	cells map[core.CellId]*Cell
	order []core.CellId
	// homes is the cell each tracked object was last filed under.
	homes map[core.ObjectId]core.CellId

	compiles taskQueue
	uploads  taskQueue
	valid    bool
}

func NewPipeline(device gpu.Device, renderers *core.RendererRegistry, viewpoint core.Viewpoint, config Config) *Pipeline {
	if config.CellSize <= 0 {
		config.CellSize = core.DefaultCellSize
	}
	log := config.Logger
	if log == nil {
		log = nopLogger{}
	}
	return &Pipeline{
		device:    device,
		renderers: renderers,
		viewpoint: viewpoint,
		config:    config,
		log:       log,
		pool:      mesh.NewBytePool(),
		cells:     make(map[core.CellId]*Cell),
		homes:     make(map[core.ObjectId]core.CellId),
		valid:     true,
	}
}

func (p *Pipeline) Valid() bool {
	return p.valid
}

func (p *Pipeline) Config() Config {
	return p.config
}

func (p *Pipeline) CellCount() int {
	return len(p.cells)
}

func (p *Pipeline) PendingCompiles() int {
	return p.compiles.Len()
}

func (p *Pipeline) PendingUploads() int {
	return p.uploads.Len()
}

// ScratchOutstanding reports accumulator buffers not yet returned to the pool.
func (p *Pipeline) ScratchOutstanding() int64 {
	return p.pool.Outstanding()
}

func (p *Pipeline) horizon() float32 {
	if p.config.HorizonDistance > 0 {
		return p.config.HorizonDistance
	}
	return p.viewpoint.HorizonDistance()
}

func (p *Pipeline) partialTick() float32 {
	if p.config.PartialTick == nil {
		return 0
	}
	return p.config.PartialTick()
}

// Cell returns the cell for id, creating it on first use.
func (p *Pipeline) Cell(id core.CellId) *Cell {
	if c, ok := p.cells[id]; ok {
		return c
	}
	c := newCell(id, p)
	p.cells[id] = c
	p.order = append(p.order, id)
	return c
}

// Lookup returns the cell for id without creating it.
func (p *Pipeline) Lookup(id core.CellId) (*Cell, bool) {
	c, ok := p.cells[id]
	return c, ok
}

// NotifyChanged schedules a rebuild of the cell containing obj. An object
// that moved is dropped from its previous cell first. Objects with no
// registered renderer are ignored.
func (p *Pipeline) NotifyChanged(obj core.TrackedObject) {
	if !p.valid {
		return
	}
	if _, ok := p.renderers.Lookup(obj); !ok {
		return
	}
	id := obj.ObjectId()
	to := core.CellOf(obj.Position(), p.config.CellSize)
	if from, ok := p.homes[id]; ok && from != to {
		p.log.Debugf("%s moved %s -> %s", id, from, to)
		p.Cell(from).Remove(obj)
	}
	if obj.Removed() {
		delete(p.homes, id)
	} else {
		p.homes[id] = to
	}
	p.Cell(to).Update(obj)
}

// NotifyRemoved drops obj from the cell it was filed under and schedules a
// rebuild.
func (p *Pipeline) NotifyRemoved(obj core.TrackedObject) {
	if !p.valid {
		return
	}
	if _, ok := p.renderers.Lookup(obj); !ok {
		return
	}
	id := obj.ObjectId()
	home, ok := p.homes[id]
	if !ok {
		home = core.CellOf(obj.Position(), p.config.CellSize)
	}
	delete(p.homes, id)
	p.Cell(home).Remove(obj)
}

func (p *Pipeline) SubmitCompile(t Task) {
	if !p.valid {
		return
	}
	p.compiles.Push(t)
}

func (p *Pipeline) SubmitUpload(t Task) {
	if !p.valid {
		return
	}
	p.uploads.Push(t)
}

// RunPendingTasks drains the compile queue, then the upload queue. Uploads
// scheduled by this drain's compiles run in the same call.
func (p *Pipeline) RunPendingTasks() DrainStats {
	var stats DrainStats
	for p.valid {
		t, ok := p.compiles.Pop()
		if !ok {
			break
		}
		if err := t.Run(); err != nil {
			p.log.Errorf("compile task failed: %v", err)
			stats.Failed++
		}
		stats.Compiled++
		if rt, ok := t.(*RebuildTask); ok && rt.Completed() {
			stats.Rebuilt++
		}
	}
	for p.valid {
		t, ok := p.uploads.Pop()
		if !ok {
			break
		}
		if err := t.Run(); err != nil {
			p.log.Errorf("upload task failed: %v", err)
			stats.Failed++
			continue
		}
		stats.Uploaded++
	}
	return stats
}

// InvalidateAll releases every GPU buffer and turns the pipeline into a no-op.
// It is used when the level is torn down.
func (p *Pipeline) InvalidateAll() {
	if !p.valid {
		return
	}
	p.valid = false
	for _, id := range p.order {
		p.cells[id].release()
	}
	clear(p.homes)
	p.compiles.Clear()
	p.uploads.Clear()
	p.log.Debugf("region cache invalidated (%d cells)", len(p.cells))
}

// RenderAll draws every cell within the horizon and returns the number of
// draw calls issued.
func (p *Pipeline) RenderAll(pass gpu.Pass, view, projection mgl32.Mat4) int {
	if !p.valid {
		return 0
	}
	draws := 0
	for _, id := range p.order {
		draws += p.cells[id].Render(pass, view, projection)
	}
	return draws
}
