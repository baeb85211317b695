package regioncache

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	app_rt "github.com/gekko3d/regioncache/regionrt/rt/app"
	"github.com/gekko3d/regioncache/regionrt/rt/core"
	"github.com/gekko3d/regioncache/regionrt/rt/gpu"
	"github.com/gekko3d/regioncache/regionrt/rt/region"
)

// RenderDevice is the GPU the cache uploads to. A window module provides the
// wgpu device; without one the cache falls back to a recording device.
type RenderDevice struct {
	Device   gpu.Device
	Headless bool
}

// Frame is the render pass of the frame being built. Platform modules set
// Pass before the Render stage and clear it once the frame is submitted.
type Frame struct {
	Pass       gpu.Pass
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Draws      int
}

type RegionCacheModule struct {
	Name           string
	CellSize       float32
	RenderDistance int
	Debug          bool
}

// RegionCache is the App-facing handle of the current level's pipeline.
type RegionCache struct {
	Pipeline  *region.Pipeline
	Renderers *core.RendererRegistry
	Camera    *core.CameraState
	World     core.World
	Level     int
	LastDrain region.DrainStats

	device gpu.Device
	config region.Config
	log    Logger
}

func (c *RegionCache) NotifyChanged(obj core.TrackedObject) {
	c.Pipeline.NotifyChanged(obj)
}

func (c *RegionCache) NotifyRemoved(obj core.TrackedObject) {
	c.Pipeline.NotifyRemoved(obj)
}

// SwapLevel tears down every cached buffer of the current level and starts an
// empty pipeline for world. Objects of the new level must be notified again.
func (c *RegionCache) SwapLevel(world core.World) {
	if c.Pipeline != nil {
		c.Pipeline.InvalidateAll()
	}
	c.World = world
	c.Level++
	c.config.Logger = levelLogger(c.log, c.Level)
	c.Pipeline = region.NewPipeline(c.device, c.Renderers, c.Camera, c.config)
	c.LastDrain = region.DrainStats{}
}

// CacheProfiler keeps timings of the last drain and render.
type CacheProfiler struct {
	Drain  time.Duration
	Render time.Duration
	Totals region.DrainStats
	Frames uint64

	scopes *app_rt.Profiler
}

func NewCacheProfiler() *CacheProfiler {
	return &CacheProfiler{scopes: app_rt.NewProfiler()}
}

func (p *CacheProfiler) StatsString() string {
	return p.scopes.GetStatsString()
}

func (p *CacheProfiler) Counter(name string) int {
	return p.scopes.Counts[name]
}

func (mod RegionCacheModule) Install(app *App, cmd *Commands) {
	name := mod.Name
	if name == "" {
		name = "region-cache"
	}
	if ensureSingleCache(app, name) {
		return
	}
	log := app.Logger()
	if mod.Debug {
		log.SetDebug(true)
	}

	clock, ok := Resource[Time](app)
	if !ok {
		TimeModule{}.Install(app, cmd)
		clock, _ = Resource[Time](app)
	}

	device, ok := Resource[RenderDevice](app)
	if !ok {
		log.Warnf("no render device installed, caching into a recording device")
		device = &RenderDevice{Device: gpu.NewRecordingDevice(), Headless: true}
		cmd.AddResources(device)
	}

	camera, ok := Resource[core.CameraState](app)
	if !ok {
		camera = core.NewCameraState()
		cmd.AddResources(camera)
	}
	if mod.CellSize > 0 {
		camera.CellSize = mod.CellSize
	}
	if mod.RenderDistance > 0 {
		camera.RenderDistance = mod.RenderDistance
	}

	if _, ok := Resource[Frame](app); !ok {
		cmd.AddResources(&Frame{})
	}

	config := region.DefaultConfig()
	config.CellSize = camera.CellSize
	config.PartialTick = func() float32 { return clock.PartialTick }
	config.Logger = levelLogger(log, 0)

	cache := &RegionCache{
		Renderers: core.NewRendererRegistry(),
		Camera:    camera,
		device:    device.Device,
		config:    config,
		log:       log,
	}
	cache.Pipeline = region.NewPipeline(device.Device, cache.Renderers, camera, config)
	cmd.AddResources(cache, NewCacheProfiler())

	app.UseSystem(
		System(regionDrainSystem).
			InStage(PreRender).
			RunAlways(),
	)
	app.UseSystem(
		System(regionRenderSystem).
			InStage(Render).
			RunAlways(),
	)
	log.Infof("%s installed (cell %.0f, horizon %.0f)", name, camera.CellSize, camera.HorizonDistance())
}

func regionDrainSystem(cache *RegionCache, profiler *CacheProfiler) {
	profiler.scopes.BeginScope("drain")
	start := time.Now()
	stats := cache.Pipeline.RunPendingTasks()
	profiler.Drain = time.Since(start)
	profiler.scopes.EndScope("drain")

	cache.LastDrain = stats
	profiler.Totals.Compiled += stats.Compiled
	profiler.Totals.Rebuilt += stats.Rebuilt
	profiler.Totals.Uploaded += stats.Uploaded
	profiler.Totals.Failed += stats.Failed
	profiler.scopes.SetCount("cells", cache.Pipeline.CellCount())
	profiler.scopes.SetCount("compiled", profiler.Totals.Compiled)
	profiler.scopes.SetCount("rebuilt", profiler.Totals.Rebuilt)
	profiler.scopes.SetCount("uploaded", profiler.Totals.Uploaded)
	profiler.scopes.SetCount("failed", profiler.Totals.Failed)
}

func regionRenderSystem(cache *RegionCache, frame *Frame, profiler *CacheProfiler) {
	if frame.Pass == nil {
		return
	}
	profiler.scopes.BeginScope("render")
	start := time.Now()
	frame.View = cache.Camera.GetViewMatrix()
	frame.Projection = cache.Camera.GetProjectionMatrix()
	frame.Draws = cache.Pipeline.RenderAll(frame.Pass, frame.View, frame.Projection)
	profiler.Render = time.Since(start)
	profiler.Frames++
	profiler.scopes.EndScope("render")
	profiler.scopes.SetCount("draws", frame.Draws)
}
