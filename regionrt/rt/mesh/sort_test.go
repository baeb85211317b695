package mesh

import (
	"bytes"
	"testing"

	"github.com/gekko3d/regioncache/regionrt/rt/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequentialIndices(t *testing.T) {
	tests := []struct {
		name     string
		topology core.Topology
		vertices int
		expected []uint32
	}{
		{"Quads", core.TopologyQuads, 8, []uint32{0, 1, 2, 2, 3, 0, 4, 5, 6, 6, 7, 4}},
		{"Partial quad dropped", core.TopologyQuads, 6, []uint32{0, 1, 2, 2, 3, 0}},
		{"Triangles", core.TopologyTriangles, 4, []uint32{0, 1, 2}},
		{"Lines", core.TopologyLines, 4, []uint32{0, 1, 2, 3}},
		{"Strip", core.TopologyTriangleStrip, 4, []uint32{0, 1, 2, 2, 1, 3}},
		{"Fan", core.TopologyTriangleFan, 4, []uint32{0, 1, 2, 0, 2, 3}},
	}

	for _, tc := range tests {
		got := SequentialIndices(tc.topology, tc.vertices)
		assert.Equal(t, tc.expected, got, tc.name)
		assert.Len(t, got, tc.topology.IndexCount(tc.vertices), tc.name)
	}
}

func quadPositions(zs ...float32) []mgl32.Vec3 {
	var out []mgl32.Vec3
	for _, z := range zs {
		out = append(out,
			mgl32.Vec3{0, 0, z}, mgl32.Vec3{1, 0, z}, mgl32.Vec3{1, 1, z}, mgl32.Vec3{0, 1, z})
	}
	return out
}

func TestSortState_FarToNear(t *testing.T) {
	state, ok := NewSortState(core.TopologyQuads, quadPositions(0, 10, 20))
	require.True(t, ok)
	require.Equal(t, 3, state.PrimitiveCount())
	assert.True(t, state.Centroids[1].ApproxEqual(mgl32.Vec3{0.5, 0.5, 10}))

	scratch := NewSortScratch()

	above := state.BuildSortedIndices(scratch, mgl32.Vec3{0.5, 0.5, 100})
	assert.Equal(t, []uint32{0, 1, 2, 2, 3, 0, 4, 5, 6, 6, 7, 4, 8, 9, 10, 10, 11, 8}, above)

	below := state.BuildSortedIndices(scratch, mgl32.Vec3{0.5, 0.5, -100})
	assert.Equal(t, []uint32{8, 9, 10, 10, 11, 8, 4, 5, 6, 6, 7, 4, 0, 1, 2, 2, 3, 0}, below)
}

func TestSortState_TiesKeepCompileOrder(t *testing.T) {
	state, ok := NewSortState(core.TopologyTriangles, []mgl32.Vec3{
		{-1, 0, 0}, {-1, 0, 0}, {-1, 0, 0},
		{1, 0, 0}, {1, 0, 0}, {1, 0, 0},
	})
	require.True(t, ok)

	got := state.BuildSortedIndices(NewSortScratch(), mgl32.Vec3{0, 5, 0})
	assert.Equal(t, []uint32{0, 1, 2, 3, 4, 5}, got)
}

func TestSortState_UnsortableTopology(t *testing.T) {
	_, ok := NewSortState(core.TopologyLines, quadPositions(0))
	assert.False(t, ok)
}

func TestResortDoesNotTouchVertexData(t *testing.T) {
	acc := NewAccumulatorWithPool(NewBytePool())
	defer acc.Release()
	for _, z := range []float32{0, 4, 8} {
		emitQuad(acc.Sink(core.LayerTranslucent), 0, 0, z)
	}

	target := newRecordingTarget()
	scratch := NewSortScratch()
	acc.FinalizeAndUpload(
		func(*core.RenderLayer) UploadTarget { return target },
		func(*core.RenderLayer) *SortScratch { return scratch },
		mgl32.Vec3{},
		func(task UploadTask) { require.NoError(t, task.Run()) },
	)
	res := target.commits[core.LayerTranslucent]
	require.NotNil(t, res)

	before := bytes.Clone(res.VertexData)
	first := bytes.Clone(res.Sort.BuildSortedIndexBytes(scratch, mgl32.Vec3{0, 0, 50}))
	second := bytes.Clone(res.Sort.BuildSortedIndexBytes(scratch, mgl32.Vec3{0, 0, -50}))

	assert.Equal(t, before, res.VertexData)
	assert.NotEqual(t, first, second)
	assert.Len(t, first, res.IndexCount*4)
}
