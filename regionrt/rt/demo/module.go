package demo

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/regioncache"
)

// SceneModule fills the region cache with a demo field and keeps changing
// it: torches flicker on and off every ToggleEvery ticks and the whole level
// is swapped every SwapEvery ticks (or with R when input is available).
type SceneModule struct {
	Size        int
	Seed        uint64
	ToggleEvery uint64
	SwapEvery   uint64
}

// SceneState is the running demo.
type SceneState struct {
	Scene       *Scene
	ToggleEvery uint64
	SwapEvery   uint64
	Seed        uint64

	lastToggle uint64
	lastSwap   uint64
}

func (m SceneModule) Install(app *regioncache.App, cmd *regioncache.Commands) {
	cache, ok := regioncache.Resource[regioncache.RegionCache](app)
	if !ok {
		panic("demo.SceneModule needs RegionCacheModule installed first")
	}
	RegisterRenderers(cache.Renderers)

	state := &SceneState{
		ToggleEvery: m.ToggleEvery,
		SwapEvery:   m.SwapEvery,
		Seed:        m.Seed,
	}
	state.Scene = NewScene(0, m.Size, cache.Camera.CellSize, m.Seed)
	cache.World = state.Scene.Level
	state.Scene.Spawn(cache)
	placeCamera(cache, state.Scene)
	cmd.AddResources(state)

	app.UseSystem(
		regioncache.System(sceneSystem).
			InStage(regioncache.Update).
			RunAlways(),
	)
	if _, ok := regioncache.Resource[regioncache.Input](app); ok {
		app.UseSystem(
			regioncache.System(sceneInputSystem).
				InStage(regioncache.Update).
				RunAlways(),
		)
	}
	cmd.Logger().Infof("demo scene: %d objects in %d cells", len(state.Scene.Objects), cache.Pipeline.CellCount())
}

func placeCamera(cache *regioncache.RegionCache, scene *Scene) {
	c := scene.Center()
	cache.Camera.Position = mgl32.Vec3{c.X(), c.Y() - scene.CellSize*2, 12}
}

// NextLevel swaps the cache to a freshly generated level.
func (s *SceneState) NextLevel(cache *regioncache.RegionCache) {
	next := NewScene(s.Scene.Level.Index+1, s.Scene.Size, s.Scene.CellSize, s.Seed)
	cache.SwapLevel(next.Level)
	s.Scene = next
	next.Spawn(cache)
}

func sceneSystem(state *SceneState, cache *regioncache.RegionCache, t *regioncache.Time, cmd *regioncache.Commands) {
	if state.SwapEvery > 0 && t.Tick-state.lastSwap >= state.SwapEvery {
		state.lastSwap = t.Tick
		state.lastToggle = t.Tick
		state.NextLevel(cache)
		cmd.Logger().Infof("swapped to level %d", cache.Level)
		return
	}
	if state.ToggleEvery > 0 && t.Tick-state.lastToggle >= state.ToggleEvery {
		state.lastToggle = t.Tick
		if torch := state.Scene.ToggleTorch(cache); torch != nil {
			cmd.Logger().Debugf("torch %s lit=%v", torch.Id, torch.Lit)
		}
		state.Scene.TogglePane(cache)
	}
}

func sceneInputSystem(input *regioncache.Input, state *SceneState, cache *regioncache.RegionCache, profiler *regioncache.CacheProfiler, cmd *regioncache.Commands) {
	if input.JustPressed[regioncache.KeyR] {
		state.NextLevel(cache)
	}
	if input.JustPressed[regioncache.KeyT] {
		state.Scene.ToggleTorch(cache)
	}
	if input.JustPressed[regioncache.KeyF3] {
		cmd.Logger().Infof("\n%s", profiler.StatsString())
	}
}
