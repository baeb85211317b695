package regioncache

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/regioncache/regionrt/rt/core"
	"github.com/gekko3d/regioncache/regionrt/rt/gpu"
)

type stubObject struct {
	id  core.ObjectId
	pos mgl32.Vec3
}

func (o *stubObject) ObjectId() core.ObjectId { return o.id }
func (o *stubObject) Kind() core.ObjectKind   { return "stub" }
func (o *stubObject) Position() mgl32.Vec3    { return o.pos }
func (o *stubObject) Removed() bool           { return false }
func (o *stubObject) World() core.World       { return nil }

func stubRenderer(obj core.TrackedObject, pose *core.PoseStack, sinks core.SinkProvider, partialTick float32, light uint32, overlay uint32) {
	sink := sinks.Sink(core.LayerSolid)
	for _, p := range []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}} {
		pose.Emit(sink, core.Vertex{Pos: p, Light: light})
	}
}

func newHeadlessApp(t *testing.T, modules ...Module) (*App, *RegionCache, *HeadlessState) {
	t.Helper()
	builder := NewAppBuilder().
		UseModule(TimeModule{}, HeadlessModule{}, RegionCacheModule{RenderDistance: 4})
	builder.UseModule(modules...)
	app := builder.Build()

	cache, ok := Resource[RegionCache](app)
	require.True(t, ok)
	headless, ok := Resource[HeadlessState](app)
	require.True(t, ok)
	cache.Renderers.Register("stub", core.RendererFunc(stubRenderer))
	cache.Camera.Position = mgl32.Vec3{8, 8, 4}
	return app, cache, headless
}

func TestRegionCacheModule_Install(t *testing.T) {
	app, cache, headless := newHeadlessApp(t)

	assert.True(t, cache.Pipeline.Valid())
	assert.Equal(t, 4, cache.Camera.RenderDistance)
	assert.InDelta(t, 64, cache.Camera.HorizonDistance(), 1e-6)

	device, ok := Resource[RenderDevice](app)
	require.True(t, ok)
	assert.Same(t, headless.Device, device.Device)

	_, ok = Resource[CacheProfiler](app)
	assert.True(t, ok)
	_, ok = Resource[Frame](app)
	assert.True(t, ok)
}

func TestRegionCacheModule_SecondInstallIsIgnored(t *testing.T) {
	app, cache, _ := newHeadlessApp(t)
	RegionCacheModule{}.Install(app, app.Commands())

	again, _ := Resource[RegionCache](app)
	assert.Same(t, cache, again)
}

func TestRegionCacheModule_DifferentCachePanics(t *testing.T) {
	app, _, _ := newHeadlessApp(t)
	assert.PanicsWithValue(t, "Multiple region caches installed: region-cache and other", func() {
		RegionCacheModule{Name: "other"}.Install(app, app.Commands())
	})
}

func TestRegionCacheModule_WithoutDeviceFallsBackToRecording(t *testing.T) {
	app := NewAppBuilder().UseModule(RegionCacheModule{}).Build()

	device, ok := Resource[RenderDevice](app)
	require.True(t, ok)
	assert.True(t, device.Headless)
	assert.IsType(t, &gpu.RecordingDevice{}, device.Device)
	_, ok = Resource[Time](app)
	assert.True(t, ok, "time is installed on demand")
}

func TestRegionCacheModule_DrainsThenRenders(t *testing.T) {
	app, cache, headless := newHeadlessApp(t)
	cache.NotifyChanged(&stubObject{id: core.NewObjectId(), pos: mgl32.Vec3{2, 2, 0}})

	app.Step()

	assert.Equal(t, 1, cache.LastDrain.Rebuilt)
	assert.Equal(t, 1, cache.LastDrain.Uploaded)
	require.Len(t, headless.Pass.Draws, 1, "uploads of this frame are drawn this frame")
	assert.Equal(t, core.LayerSolid, headless.Pass.Draws[0].Layer)

	frame, _ := Resource[Frame](app)
	assert.Nil(t, frame.Pass, "pass is cleared once the frame ends")
	assert.Equal(t, 1, frame.Draws)

	profiler, _ := Resource[CacheProfiler](app)
	assert.Equal(t, 1, profiler.Counter("uploaded"))
	assert.Equal(t, 1, profiler.Counter("cells"))
	assert.Equal(t, uint64(1), profiler.Frames)
	assert.Contains(t, profiler.StatsString(), "drain")

	app.Step()
	assert.Zero(t, cache.LastDrain.Compiled)
	assert.Len(t, headless.Pass.Draws, 1)
}

func TestRegionCache_SwapLevel(t *testing.T) {
	app, cache, headless := newHeadlessApp(t)
	cache.NotifyChanged(&stubObject{id: core.NewObjectId(), pos: mgl32.Vec3{2, 2, 0}})
	app.Step()
	require.Equal(t, 2, headless.Device.Live())

	old := cache.Pipeline
	world := constLight(core.PackLight(3, 3))
	cache.SwapLevel(world)

	assert.False(t, old.Valid())
	assert.True(t, cache.Pipeline.Valid())
	assert.NotSame(t, old, cache.Pipeline)
	assert.Equal(t, 1, cache.Level)
	assert.Equal(t, core.World(world), cache.World)
	assert.Zero(t, headless.Device.Live(), "old level's buffers are released")

	app.Step()
	assert.Empty(t, headless.Pass.Draws)

	old.NotifyChanged(&stubObject{id: core.NewObjectId(), pos: mgl32.Vec3{2, 2, 0}})
	assert.Zero(t, old.PendingCompiles())
}

func TestHeadlessModule_ExitsAfterFrames(t *testing.T) {
	app := NewAppBuilder().
		UseModule(HeadlessModule{Frames: 3}, RegionCacheModule{}).
		Build()
	app.Run()
	assert.Equal(t, uint64(3), app.Frames())
}

type constLight uint32

func (c constLight) LightAt(mgl32.Vec3) uint32 { return uint32(c) }
