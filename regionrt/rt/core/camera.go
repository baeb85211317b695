package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Viewpoint supplies the per-frame camera state the cache reads at draw time.
type Viewpoint interface {
	CameraPosition() mgl32.Vec3
	// HorizonDistance is the ground distance beyond which cells are not drawn.
	HorizonDistance() float32
}

type CameraState struct {
	Position    mgl32.Vec3
	Yaw         float32
	Pitch       float32
	Speed       float32
	Sensitivity float32

	Fov    float32
	Aspect float32
	Near   float32
	Far    float32

	// RenderDistance is the horizon measured in cells.
	RenderDistance int
	CellSize       float32
}

func NewCameraState() *CameraState {
	return &CameraState{
		Position:       mgl32.Vec3{0, -20, 10},
		Yaw:            0,
		Pitch:          -0.3,
		Speed:          10.0,
		Sensitivity:    0.003,
		Fov:            mgl32.DegToRad(70),
		Aspect:         16.0 / 9.0,
		Near:           0.05,
		Far:            1024,
		RenderDistance: 12,
		CellSize:       DefaultCellSize,
	}
}

func (c *CameraState) CameraPosition() mgl32.Vec3 {
	return c.Position
}

func (c *CameraState) HorizonDistance() float32 {
	return float32(c.RenderDistance) * c.CellSize
}

func (c *CameraState) GetForward() mgl32.Vec3 {
	// Z-up: Forward in XY plane, Z for pitch
	return mgl32.Vec3{
		float32(math.Cos(float64(c.Pitch)) * math.Sin(float64(c.Yaw))),
		float32(math.Cos(float64(c.Pitch)) * math.Cos(float64(c.Yaw))),
		float32(math.Sin(float64(c.Pitch))),
	}
}

func (c *CameraState) GetRight() mgl32.Vec3 {
	return mgl32.Vec3{
		float32(math.Cos(float64(c.Yaw))),
		float32(-math.Sin(float64(c.Yaw))),
		0,
	}
}

// GetViewMatrix is the camera-relative view: the eye sits at the origin and
// geometry is shifted by the cell offset uniform instead.
func (c *CameraState) GetViewMatrix() mgl32.Mat4 {
	forward := c.GetForward()
	up := mgl32.Vec3{0, 0, 1}
	return mgl32.LookAtV(mgl32.Vec3{}, forward, up)
}

func (c *CameraState) GetProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(c.Fov, c.Aspect, c.Near, c.Far)
}

// Move advances the camera along its local axes.
func (c *CameraState) Move(forward, right, up float32, dt float32) {
	step := c.Speed * dt
	delta := c.GetForward().Mul(forward * step).
		Add(c.GetRight().Mul(right * step)).
		Add(mgl32.Vec3{0, 0, up * step})
	c.Position = c.Position.Add(delta)
}

// Look applies a mouse delta, clamping pitch short of straight up/down.
func (c *CameraState) Look(dx, dy float32) {
	c.Yaw += dx * c.Sensitivity
	c.Pitch -= dy * c.Sensitivity
	limit := float32(math.Pi/2 - 0.01)
	c.Pitch = mgl32.Clamp(c.Pitch, -limit, limit)
}
