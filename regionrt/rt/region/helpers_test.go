package region

import (
	"github.com/gekko3d/regioncache/regionrt/rt/core"
	"github.com/gekko3d/regioncache/regionrt/rt/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

const kindQuad core.ObjectKind = "quad"

type testObject struct {
	id      core.ObjectId
	kind    core.ObjectKind
	pos     mgl32.Vec3
	removed bool
	world   core.World
}

func newObject(pos mgl32.Vec3) *testObject {
	return &testObject{id: core.NewObjectId(), kind: kindQuad, pos: pos}
}

func (o *testObject) ObjectId() core.ObjectId { return o.id }
func (o *testObject) Kind() core.ObjectKind   { return o.kind }
func (o *testObject) Position() mgl32.Vec3    { return o.pos }
func (o *testObject) Removed() bool           { return o.removed }
func (o *testObject) World() core.World       { return o.world }

type constWorld uint32

func (w constWorld) LightAt(mgl32.Vec3) uint32 { return uint32(w) }

// quadRenderer emits one unit quad per layer at the object's position.
type quadRenderer struct {
	layers []*core.RenderLayer
	calls  int
	lights []uint32
	ticks  []float32
	hook   func(obj core.TrackedObject)
}

func (r *quadRenderer) RenderCached(obj core.TrackedObject, pose *core.PoseStack, sinks core.SinkProvider, partialTick float32, light uint32, overlay uint32) {
	r.calls++
	r.lights = append(r.lights, light)
	r.ticks = append(r.ticks, partialTick)
	if r.hook != nil {
		r.hook(obj)
	}
	for _, layer := range r.layers {
		sink := sinks.Sink(layer)
		for _, p := range []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}} {
			pose.Emit(sink, core.Vertex{Pos: p, Color: [4]uint8{255, 255, 255, 128}, Light: light, Overlay: overlay})
		}
	}
}

type fixture struct {
	pipeline *Pipeline
	device   *gpu.RecordingDevice
	pass     *gpu.RecordingPass
	renderer *quadRenderer
	registry *core.RendererRegistry
	camera   *core.CameraState
}

func newFixture(layers ...*core.RenderLayer) *fixture {
	if len(layers) == 0 {
		layers = []*core.RenderLayer{core.LayerSolid}
	}
	f := &fixture{
		device:   gpu.NewRecordingDevice(),
		pass:     gpu.NewRecordingPass(),
		renderer: &quadRenderer{layers: layers},
		registry: core.NewRendererRegistry(),
		camera:   core.NewCameraState(),
	}
	f.camera.Position = mgl32.Vec3{8, 8, 4}
	f.registry.Register(kindQuad, f.renderer)
	cfg := DefaultConfig()
	cfg.PartialTick = func() float32 { return 0.25 }
	f.pipeline = NewPipeline(f.device, f.registry, f.camera, cfg)
	return f
}

func (f *fixture) render() int {
	f.pass.Reset()
	return f.pipeline.RenderAll(f.pass, f.camera.GetViewMatrix(), f.camera.GetProjectionMatrix())
}

type recordTask struct {
	name string
	log  *[]string
	err  error
}

func (t recordTask) Run() error {
	*t.log = append(*t.log, t.name)
	return t.err
}
