package app

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gekko3d/regioncache/regionrt/rt/gpu"
)

// App owns the window surface, the wgpu device and the per-frame render pass
// that cached regions are drawn into.
type App struct {
	Window   *glfw.Window
	Instance *wgpu.Instance
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue
	Surface  *wgpu.Surface
	Config   *wgpu.SurfaceConfiguration

	DepthTexture *wgpu.Texture
	DepthView    *wgpu.TextureView

	Pipelines *gpu.PipelineCache
	GpuDevice *gpu.WgpuDevice
	Profiler  *Profiler

	ClearColor wgpu.Color

	LastRenderTime float64
	FrameCount     int
	FPS            float64
	FPSTime        float64

	frameTexture *wgpu.Texture
	frameView    *wgpu.TextureView
	encoder      *wgpu.CommandEncoder
	pass         *wgpu.RenderPassEncoder
}

func NewApp(window *glfw.Window) *App {
	return &App{
		Window:     window,
		Profiler:   NewProfiler(),
		ClearColor: wgpu.Color{R: 0.05, G: 0.06, B: 0.09, A: 1},
	}
}

func (a *App) Init() error {
	a.Instance = wgpu.CreateInstance(nil)
	a.Surface = a.Instance.CreateSurface(GetSurfaceDescriptor(a.Window))

	adapter, err := a.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: a.Surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("failed to request adapter: %w", err)
	}
	a.Adapter = adapter

	a.Device, err = adapter.RequestDevice(&wgpu.DeviceDescriptor{Label: "Region Cache Device"})
	if err != nil {
		return fmt.Errorf("failed to request device: %w", err)
	}
	a.Queue = a.Device.GetQueue()
	a.GpuDevice = gpu.NewWgpuDevice(a.Device)

	width, height := a.Window.GetFramebufferSize()
	caps := a.Surface.GetCapabilities(adapter)
	a.Config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	a.Surface.Configure(adapter, a.Device, a.Config)

	if err := a.setupDepth(width, height); err != nil {
		return err
	}

	a.Pipelines, err = gpu.NewPipelineCache(a.Device, a.Config.Format)
	if err != nil {
		return fmt.Errorf("failed to create pipeline cache: %w", err)
	}
	return nil
}

func (a *App) setupDepth(w, h int) error {
	if a.DepthView != nil {
		a.DepthView.Release()
	}
	if a.DepthTexture != nil {
		a.DepthTexture.Release()
	}

	var err error
	a.DepthTexture, err = a.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Depth Texture",
		Size:          wgpu.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        gpu.DepthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("failed to create depth texture: %w", err)
	}
	a.DepthView, err = a.DepthTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("failed to create depth view: %w", err)
	}
	return nil
}

func (a *App) Resize(w, h int) {
	if w > 0 && h > 0 {
		a.Config.Width = uint32(w)
		a.Config.Height = uint32(h)
		a.Surface.Configure(a.Adapter, a.Device, a.Config)
		if err := a.setupDepth(w, h); err != nil {
			fmt.Printf("ERROR: %v\n", err)
		}
	}
}

// Aspect is the surface width over height.
func (a *App) Aspect() float32 {
	if a.Config == nil || a.Config.Height == 0 {
		return 1
	}
	return float32(a.Config.Width) / float32(a.Config.Height)
}

// BeginFrame acquires the next surface texture and opens the render pass the
// cache draws into.
func (a *App) BeginFrame() (gpu.Pass, error) {
	a.Profiler.BeginScope("frame")

	tex, err := a.Surface.GetCurrentTexture()
	if err != nil {
		return nil, fmt.Errorf("failed to get current texture: %w", err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("failed to create view: %w", err)
	}
	encoder, err := a.Device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		tex.Release()
		return nil, fmt.Errorf("failed to create command encoder: %w", err)
	}

	a.frameTexture, a.frameView, a.encoder = tex, view, encoder
	a.pass = encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: a.ClearColor,
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            a.DepthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})
	return gpu.NewWgpuPass(a.pass, a.Pipelines), nil
}

// EndFrame submits the pass opened by BeginFrame and presents it.
func (a *App) EndFrame() error {
	if a.pass == nil {
		return nil
	}
	defer a.releaseFrame()

	if err := a.pass.End(); err != nil {
		return fmt.Errorf("render pass End failed: %w", err)
	}
	cmd, err := a.encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("encoder Finish failed: %w", err)
	}
	a.Queue.Submit(cmd)
	cmd.Release()
	a.Surface.Present()
	a.Profiler.EndScope("frame")

	now := glfw.GetTime()
	if a.LastRenderTime > 0 {
		a.FrameCount++
		a.FPSTime += now - a.LastRenderTime
		if a.FPSTime >= 1.0 {
			a.FPS = float64(a.FrameCount) / a.FPSTime
			a.FrameCount = 0
			a.FPSTime = 0
		}
	}
	a.LastRenderTime = now
	return nil
}

func (a *App) releaseFrame() {
	a.pass.Release()
	a.encoder.Release()
	a.frameView.Release()
	a.frameTexture.Release()
	a.pass, a.encoder, a.frameView, a.frameTexture = nil, nil, nil, nil
}

func (a *App) Release() {
	if a.Pipelines != nil {
		a.Pipelines.Release()
	}
	if a.DepthView != nil {
		a.DepthView.Release()
	}
	if a.DepthTexture != nil {
		a.DepthTexture.Release()
	}
	if a.Surface != nil {
		a.Surface.Release()
	}
	if a.Device != nil {
		a.Device.Release()
	}
	if a.Instance != nil {
		a.Instance.Release()
	}
}

func GetSurfaceDescriptor(w *glfw.Window) *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(w)
}
