package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestCellOf(t *testing.T) {
	tests := []struct {
		name     string
		pos      mgl32.Vec3
		expected CellId
	}{
		{name: "Origin", pos: mgl32.Vec3{0, 0, 0}, expected: CellId{0, 0}},
		{name: "Inside first cell", pos: mgl32.Vec3{15.9, 3, 100}, expected: CellId{0, 0}},
		{name: "Cell boundary", pos: mgl32.Vec3{16, 32, 0}, expected: CellId{1, 2}},
		{name: "Negative floors down", pos: mgl32.Vec3{-0.5, -16, 0}, expected: CellId{-1, -1}},
		{name: "Negative past boundary", pos: mgl32.Vec3{-16.1, -33, 0}, expected: CellId{-2, -3}},
		{name: "Height ignored", pos: mgl32.Vec3{1, 1, -500}, expected: CellId{0, 0}},
	}

	for _, tc := range tests {
		got := CellOf(tc.pos, DefaultCellSize)
		if got != tc.expected {
			t.Errorf("Test %s failed: expected %v, got %v", tc.name, tc.expected, got)
		}
	}
}

func TestCellId_CenterAndDistance(t *testing.T) {
	c := CellId{X: 1, Y: -1}

	assert.Equal(t, mgl32.Vec2{16, -16}, c.Origin(16))
	assert.Equal(t, mgl32.Vec2{24, -8}, c.Center(16))

	// Height does not contribute.
	d := c.GroundDistance(mgl32.Vec3{24, -8, 300}, 16)
	assert.InDelta(t, 0, d, 1e-5)

	d = c.GroundDistance(mgl32.Vec3{24, 22, 0}, 16)
	assert.InDelta(t, 30, d, 1e-5)

	assert.Equal(t, "cell(1,-1)", c.String())
}
