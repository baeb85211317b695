package regioncache

import (
	"github.com/gekko3d/regioncache/regionrt/rt/core"
)

// FlyingCameraModule moves the cache's viewpoint with WASD, Space/Shift and
// the captured mouse. It needs InputModule and RegionCacheModule.
type FlyingCameraModule struct{}

func (m FlyingCameraModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(flyingCameraSystem).
			InStage(Update).
			RunAlways(),
	)
}

func flyingCameraSystem(input *Input, camera *core.CameraState, t *Time, ws *WindowState) {
	var forward, right, up float32
	if input.Pressed[KeyW] {
		forward++
	}
	if input.Pressed[KeyS] {
		forward--
	}
	if input.Pressed[KeyD] {
		right++
	}
	if input.Pressed[KeyA] {
		right--
	}
	if input.Pressed[KeySpace] {
		up++
	}
	if input.Pressed[KeyShift] {
		up--
	}

	camera.Move(forward, right, up, t.Seconds())
	if input.MouseCaptured {
		camera.Look(float32(input.MouseDeltaX), float32(input.MouseDeltaY))
	}
	camera.Aspect = ws.RtApp.Aspect()
}
