package regioncache

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	app_rt "github.com/gekko3d/regioncache/regionrt/rt/app"
)

// WindowState is the shared GLFW window and the wgpu surface cached regions
// are presented on.
type WindowState struct {
	windowGlfw   *glfw.Window
	WindowWidth  int
	WindowHeight int
	windowTitle  string
	RtApp        *app_rt.App
}

func (s *WindowState) FPS() float64 {
	if s == nil || s.RtApp == nil {
		return 0
	}
	return s.RtApp.FPS
}

// PlatformWindowModule opens a window, brings up wgpu on it and provides the
// RenderDevice the region cache uploads to. Install it before
// RegionCacheModule.
type PlatformWindowModule struct {
	Width  int
	Height int
	Title  string
}

// NewPlatformWindow creates a window module. Zero sizes and an empty title
// get defaults.
func NewPlatformWindow(width, height int, title string) *PlatformWindowModule {
	if width <= 0 {
		width = 1280
	}
	if height <= 0 {
		height = 720
	}
	if title == "" {
		title = "Region Cache"
	}
	return &PlatformWindowModule{
		Width:  width,
		Height: height,
		Title:  title,
	}
}

func createWindowState(width int, height int, title string) *WindowState {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		panic(err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		panic(err)
	}

	return &WindowState{
		windowGlfw:   win,
		WindowWidth:  width,
		WindowHeight: height,
		windowTitle:  title,
	}
}

func (m PlatformWindowModule) Install(app *App, cmd *Commands) {
	if _, ok := Resource[WindowState](app); ok {
		return
	}

	ws := createWindowState(m.Width, m.Height, m.Title)
	ws.RtApp = app_rt.NewApp(ws.windowGlfw)
	if err := ws.RtApp.Init(); err != nil {
		panic(err)
	}
	ws.windowGlfw.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		ws.WindowWidth, ws.WindowHeight = width, height
		ws.RtApp.Resize(width, height)
	})

	cmd.AddResources(ws, &RenderDevice{Device: ws.RtApp.GpuDevice})
	if _, ok := Resource[Frame](app); !ok {
		cmd.AddResources(&Frame{})
	}

	app.UseSystem(
		System(windowCloseSystem).
			InStage(Prelude).
			RunAlways(),
	)
	app.UseSystem(
		System(windowBeginFrameSystem).
			InStage(PreRender).
			RunAlways(),
	)
	app.UseSystem(
		System(windowEndFrameSystem).
			InStage(PostRender).
			RunAlways(),
	)
}

func windowCloseSystem(ws *WindowState, cmd *Commands) {
	if ws.windowGlfw.ShouldClose() {
		cmd.Exit()
	}
}

func windowBeginFrameSystem(ws *WindowState, frame *Frame, cmd *Commands) {
	pass, err := ws.RtApp.BeginFrame()
	if err != nil {
		cmd.Logger().Errorf("%v", err)
		frame.Pass = nil
		return
	}
	frame.Pass = pass
}

func windowEndFrameSystem(ws *WindowState, frame *Frame, cmd *Commands) {
	if frame.Pass == nil {
		return
	}
	frame.Pass = nil
	if err := ws.RtApp.EndFrame(); err != nil {
		cmd.Logger().Errorf("%v", err)
	}
}
