package region

import (
	"context"
	"fmt"
	"slices"

	"github.com/gekko3d/regioncache/regionrt/rt/core"
	"github.com/gekko3d/regioncache/regionrt/rt/gpu"
	"github.com/gekko3d/regioncache/regionrt/rt/mesh"
	"github.com/go-gl/mathgl/mgl32"
)

// Cell caches the compiled geometry of every tracked object inside one
// ground-plane region.
type Cell struct {
	id       core.CellId
	pipeline *Pipeline

	objects []core.TrackedObject
	index   map[core.ObjectId]int

	buffers map[*core.RenderLayer]*gpu.LayerBuffer
	layers  []*core.RenderLayer
	scratch map[*core.RenderLayer]*mesh.SortScratch

	empty   bool
	current *RebuildTask
}

func newCell(id core.CellId, p *Pipeline) *Cell {
	return &Cell{
		id:       id,
		pipeline: p,
		index:    make(map[core.ObjectId]int),
		buffers:  make(map[*core.RenderLayer]*gpu.LayerBuffer),
		scratch:  make(map[*core.RenderLayer]*mesh.SortScratch),
		empty:    true,
	}
}

func (c *Cell) Id() core.CellId {
	return c.id
}

// Empty reports whether the last completed rebuild produced no geometry.
func (c *Cell) Empty() bool {
	return c.empty
}

func (c *Cell) ObjectCount() int {
	return len(c.objects)
}

// Current returns the pending rebuild, or nil when the cell is up to date.
func (c *Cell) Current() *RebuildTask {
	return c.current
}

// Buffer returns the committed buffer of layer, if any.
func (c *Cell) Buffer(layer *core.RenderLayer) *gpu.LayerBuffer {
	return c.buffers[layer]
}

// Layers returns the committed layers in draw order.
func (c *Cell) Layers() []*core.RenderLayer {
	return drawOrder(c.layers)
}

// Update registers or refreshes obj and schedules a rebuild. A removed object
// is dropped instead.
func (c *Cell) Update(obj core.TrackedObject) {
	c.cancelCurrent()
	c.purgeRemoved()
	if obj.Removed() {
		c.drop(obj.ObjectId())
	} else if i, ok := c.index[obj.ObjectId()]; ok {
		c.objects[i] = obj
	} else {
		c.index[obj.ObjectId()] = len(c.objects)
		c.objects = append(c.objects, obj)
	}
	c.schedule()
}

// Remove drops obj and schedules a rebuild.
func (c *Cell) Remove(obj core.TrackedObject) {
	c.cancelCurrent()
	c.drop(obj.ObjectId())
	c.purgeRemoved()
	c.schedule()
}

func (c *Cell) cancelCurrent() {
	if c.current != nil {
		c.current.Cancel()
		c.current = nil
	}
}

func (c *Cell) schedule() {
	task := newRebuildTask(c)
	c.current = task
	c.pipeline.SubmitCompile(task)
}

func (c *Cell) drop(id core.ObjectId) {
	if _, ok := c.index[id]; !ok {
		return
	}
	c.objects = slices.DeleteFunc(c.objects, func(o core.TrackedObject) bool {
		return o.ObjectId() == id
	})
	c.reindex()
}

func (c *Cell) purgeRemoved() {
	n := len(c.objects)
	c.objects = slices.DeleteFunc(c.objects, func(o core.TrackedObject) bool {
		return o.Removed()
	})
	if len(c.objects) != n {
		c.reindex()
	}
}

func (c *Cell) reindex() {
	clear(c.index)
	for i, o := range c.objects {
		c.index[o.ObjectId()] = i
	}
}

func (c *Cell) scratchFor(layer *core.RenderLayer) *mesh.SortScratch {
	s, ok := c.scratch[layer]
	if !ok {
		s = mesh.NewSortScratch()
		c.scratch[layer] = s
	}
	return s
}

// rebuild compiles the object snapshot and schedules the uploads. It returns
// false when the task was cancelled, in which case nothing was scheduled.
func (c *Cell) rebuild(ctx context.Context, task *RebuildTask) bool {
	p := c.pipeline
	defer func() {
		if c.current == task {
			c.current = nil
		}
	}()
	if ctx.Err() != nil {
		return false
	}

	snapshot := slices.Clone(c.objects)
	acc := mesh.NewAccumulatorWithPool(p.pool)
	defer acc.Release()

	partialTick := p.partialTick()
	for _, obj := range snapshot {
		if ctx.Err() != nil {
			p.log.Debugf("%s: rebuild %s cancelled", c.id, task.Id)
			return false
		}
		renderer, ok := p.renderers.Lookup(obj)
		if !ok {
			p.log.Debugf("%s: no renderer for %s (%s)", c.id, obj.Kind(), obj.ObjectId())
			continue
		}
		pos := obj.Position()
		light := core.LightAt(obj.World(), pos)

		pose := core.NewPoseStack()
		pose.Push()
		pose.Translate(pos.X(), pos.Y(), pos.Z())
		renderer.RenderCached(obj, pose, acc, partialTick, light, core.NoOverlay)
		pose.Pop()
	}
	if ctx.Err() != nil {
		return false
	}

	c.empty = acc.IsEmpty()
	origin := p.viewpoint.CameraPosition()
	scheduled := acc.FinalizeAndUpload(
		func(*core.RenderLayer) mesh.UploadTarget { return c },
		c.scratchFor,
		origin,
		func(t mesh.UploadTask) { p.SubmitUpload(t) },
	)
	for _, layer := range c.layers {
		if !slices.Contains(scheduled, layer) {
			p.SubmitUpload(mesh.ClearTask(c, layer))
		}
	}
	return true
}

// Commit installs res as the layer's buffer. The previous buffer is released
// only after the new one is in place; on failure it is kept.
func (c *Cell) Commit(layer *core.RenderLayer, res *mesh.CompileResult) error {
	p := c.pipeline
	if !p.valid {
		return nil
	}
	old := c.buffers[layer]

	if res.Empty() {
		if old != nil {
			delete(c.buffers, layer)
			c.layers = slices.DeleteFunc(c.layers, func(l *core.RenderLayer) bool { return l == layer })
			old.Release()
		}
		if s, ok := c.scratch[layer]; ok {
			s.Release()
			delete(c.scratch, layer)
		}
		return nil
	}

	buf, err := gpu.NewLayerBuffer(p.device, fmt.Sprintf("%s %s", c.id, layer), res)
	if err != nil {
		return fmt.Errorf("failed to upload %s of %s: %w", layer, c.id, err)
	}
	c.buffers[layer] = buf
	if old == nil {
		c.layers = append(c.layers, layer)
	} else {
		old.Release()
	}
	return nil
}

// Render draws the committed layers when the cell is within the horizon.
// It returns the number of draw calls issued.
func (c *Cell) Render(pass gpu.Pass, view, projection mgl32.Mat4) int {
	if c.empty || len(c.layers) == 0 {
		return 0
	}
	p := c.pipeline
	camera := p.viewpoint.CameraPosition()
	if c.id.GroundDistance(camera, p.config.CellSize) > p.horizon() {
		return 0
	}

	uniforms := gpu.DrawUniforms{
		View:       view,
		Projection: projection,
		CellOffset: camera.Mul(-1),
	}
	draws := 0
	for _, layer := range drawOrder(c.layers) {
		buf := c.buffers[layer]
		if buf == nil || buf.IndexCount <= 0 {
			continue
		}
		if err := pass.BeginLayer(layer, uniforms); err != nil {
			p.log.Errorf("%s: failed to bind %s: %v", c.id, layer, err)
			continue
		}
		var scratch *mesh.SortScratch
		if buf.Sort != nil {
			scratch = c.scratchFor(layer)
		}
		if err := buf.Draw(p.device, pass, scratch, camera); err != nil {
			p.log.Errorf("%s: %v", c.id, err)
		} else {
			draws++
		}
		pass.EndLayer(layer)
	}
	return draws
}

// release frees every committed buffer and cancels the pending rebuild.
func (c *Cell) release() {
	c.cancelCurrent()
	for _, layer := range c.layers {
		c.buffers[layer].Release()
	}
	clear(c.buffers)
	c.layers = nil
	for _, s := range c.scratch {
		s.Release()
	}
	clear(c.scratch)
	c.empty = true
}

// drawOrder puts layers that are not sorted on draw first, keeping discovery
// order within each group.
func drawOrder(layers []*core.RenderLayer) []*core.RenderLayer {
	out := slices.Clone(layers)
	slices.SortStableFunc(out, func(a, b *core.RenderLayer) int {
		switch {
		case a.SortOnDraw == b.SortOnDraw:
			return 0
		case b.SortOnDraw:
			return -1
		default:
			return 1
		}
	})
	return out
}
