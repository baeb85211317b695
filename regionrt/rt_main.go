package main

import (
	"flag"
	"fmt"
	"runtime"

	"github.com/gekko3d/regioncache"
	"github.com/gekko3d/regioncache/regionrt/rt/demo"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	debug := flag.Bool("debug", false, "Enable debug logging")
	headless := flag.Bool("headless", false, "Render into a recording device instead of a window")
	frames := flag.Int("frames", 600, "Frames to run in headless mode")
	size := flag.Int("size", 8, "Demo field size in cells per side")
	distance := flag.Int("distance", 12, "Render distance in cells")
	seed := flag.Uint64("seed", 1, "Demo scene seed")
	flag.Parse()

	builder := regioncache.NewAppBuilder().
		UseModule(regioncache.LoggingModule{Prefix: "regioncache", Debug: *debug}).
		UseModule(regioncache.TimeModule{})

	renderer := regioncache.RendererWGPU
	if *headless {
		renderer = regioncache.RendererHeadless
	}
	builder.UseRenderer(renderer, regioncache.RendererOptions{
		Width:  1280,
		Height: 720,
		Title:  "Region Cache",
		Frames: *frames,
	})

	builder.UseModule(regioncache.RegionCacheModule{RenderDistance: *distance, Debug: *debug})
	if !*headless {
		builder.UseModule(regioncache.FlyingCameraModule{})
	}
	builder.UseModule(demo.SceneModule{Size: *size, Seed: *seed, ToggleEvery: 10, SwapEvery: 400})

	app := builder.Build()
	app.Run()

	if profiler, ok := regioncache.Resource[regioncache.CacheProfiler](app); ok {
		fmt.Print(profiler.StatsString())
	}
}
