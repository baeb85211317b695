package core

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultCellSize is the edge length of a ground cell in world units.
const DefaultCellSize float32 = 16

// CellId identifies a fixed-size cell on the ground (XY) plane. The stack is Z-up.
type CellId struct {
	X int32
	Y int32
}

// CellOf returns the cell containing pos.
func CellOf(pos mgl32.Vec3, cellSize float32) CellId {
	return CellId{
		X: cellIndex(pos.X(), cellSize),
		Y: cellIndex(pos.Y(), cellSize),
	}
}

func cellIndex(v float32, cellSize float32) int32 {
	return int32(math.Floor(float64(v / cellSize)))
}

// Origin is the minimum corner of the cell on the ground plane.
func (c CellId) Origin(cellSize float32) mgl32.Vec2 {
	return mgl32.Vec2{float32(c.X) * cellSize, float32(c.Y) * cellSize}
}

// Center is the middle of the cell on the ground plane.
func (c CellId) Center(cellSize float32) mgl32.Vec2 {
	half := cellSize * 0.5
	o := c.Origin(cellSize)
	return mgl32.Vec2{o.X() + half, o.Y() + half}
}

// GroundDistance is the distance from p to the cell center, ignoring height.
func (c CellId) GroundDistance(p mgl32.Vec3, cellSize float32) float32 {
	center := c.Center(cellSize)
	return mgl32.Vec2{p.X(), p.Y()}.Sub(center).Len()
}

func (c CellId) String() string {
	return fmt.Sprintf("cell(%d,%d)", c.X, c.Y)
}
