package regioncache

import (
	"fmt"
)

// RendererName identifies the platform the cache draws on.
type RendererName string

const (
	RendererWGPU     RendererName = "wgpu"
	RendererHeadless RendererName = "headless"
)

type RendererOptions struct {
	Width  int
	Height int
	Title  string
	// Frames limits headless runs; zero runs until Exit.
	Frames int
}

// UseRenderer queues the platform modules of name. Call it before adding
// RegionCacheModule so the cache picks up the right RenderDevice.
//
//	NewAppBuilder().UseRenderer(RendererHeadless, RendererOptions{Frames: 60})
func (b *AppBuilder) UseRenderer(name RendererName, opts RendererOptions) *AppBuilder {
	switch name {
	case RendererWGPU:
		return b.UseModule(NewPlatformWindow(opts.Width, opts.Height, opts.Title), InputModule{})
	case RendererHeadless:
		return b.UseModule(HeadlessModule{Frames: opts.Frames})
	}
	panic(fmt.Sprintf("unknown renderer %q", name))
}
