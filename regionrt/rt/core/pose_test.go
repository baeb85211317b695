package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceSink struct {
	vertices []Vertex
}

func (s *sliceSink) AddVertex(v Vertex) { s.vertices = append(s.vertices, v) }

func TestPoseStack_EmitTransforms(t *testing.T) {
	pose := NewPoseStack()
	sink := &sliceSink{}

	pose.Push()
	pose.Translate(10, 20, 30)
	pose.Scale(2, 2, 2)
	pose.Emit(sink, Vertex{Pos: mgl32.Vec3{1, 1, 1}, Normal: mgl32.Vec3{0, 0, 1}})
	pose.Pop()

	pose.Emit(sink, Vertex{Pos: mgl32.Vec3{1, 1, 1}})

	require.Len(t, sink.vertices, 2)
	assert.True(t, sink.vertices[0].Pos.ApproxEqual(mgl32.Vec3{12, 22, 32}), "got %v", sink.vertices[0].Pos)
	assert.True(t, sink.vertices[0].Normal.ApproxEqual(mgl32.Vec3{0, 0, 1}))
	assert.True(t, sink.vertices[1].Pos.ApproxEqual(mgl32.Vec3{1, 1, 1}))
	assert.Equal(t, 0, pose.Depth())
}

func TestPoseStack_RotateNormal(t *testing.T) {
	pose := NewPoseStack()
	sink := &sliceSink{}

	pose.Rotate(mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 0, 1}))
	pose.Emit(sink, Vertex{Pos: mgl32.Vec3{1, 0, 0}, Normal: mgl32.Vec3{1, 0, 0}})

	want := mgl32.Vec3{0, 1, 0}
	require.Len(t, sink.vertices, 1)
	for i := range 3 {
		assert.InDelta(t, want[i], sink.vertices[0].Pos[i], 1e-5, "pos[%d]", i)
		assert.InDelta(t, want[i], sink.vertices[0].Normal[i], 1e-5, "normal[%d]", i)
	}
}

func TestPoseStack_PopUnderflowPanics(t *testing.T) {
	pose := NewPoseStack()
	assert.PanicsWithValue(t, "pose stack underflow", func() { pose.Pop() })
}
