package regioncache

import (
	"github.com/gekko3d/regioncache/regionrt/rt/gpu"
)

// HeadlessState records what the cache would have sent to a GPU.
type HeadlessState struct {
	Device *gpu.RecordingDevice
	Pass   *gpu.RecordingPass
	Frames int
}

// HeadlessModule renders into a RecordingDevice instead of a window. With
// Frames > 0 the app exits after that many frames.
type HeadlessModule struct {
	Frames int
}

func (m HeadlessModule) Install(app *App, cmd *Commands) {
	state := &HeadlessState{
		Device: gpu.NewRecordingDevice(),
		Pass:   gpu.NewRecordingPass(),
		Frames: m.Frames,
	}
	cmd.AddResources(state, &RenderDevice{Device: state.Device, Headless: true})
	if _, ok := Resource[Frame](app); !ok {
		cmd.AddResources(&Frame{})
	}

	app.UseSystem(
		System(headlessBeginFrameSystem).
			InStage(PreRender).
			RunAlways(),
	)
	app.UseSystem(
		System(headlessEndFrameSystem).
			InStage(Finale).
			RunAlways(),
	)
}

func headlessBeginFrameSystem(state *HeadlessState, frame *Frame) {
	state.Pass.Reset()
	frame.Pass = state.Pass
}

func headlessEndFrameSystem(state *HeadlessState, frame *Frame, cmd *Commands) {
	frame.Pass = nil
	if state.Frames > 0 && cmd.app.Frames()+1 >= uint64(state.Frames) {
		cmd.Exit()
	}
}
