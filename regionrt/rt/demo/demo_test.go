package demo

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/regioncache/regionrt/rt/core"
	"github.com/gekko3d/regioncache/regionrt/rt/gpu"
	"github.com/gekko3d/regioncache/regionrt/rt/region"
)

type countingNotifier struct {
	changed, removed int
}

func (n *countingNotifier) NotifyChanged(core.TrackedObject) { n.changed++ }
func (n *countingNotifier) NotifyRemoved(core.TrackedObject) { n.removed++ }

func TestLevel_LightAt(t *testing.T) {
	level := NewLevel(0)
	torch := level.NewObject(KindTorch, mgl32.Vec3{0, 0, 0})

	tests := []struct {
		name  string
		pos   mgl32.Vec3
		lit   bool
		block int
	}{
		{"at the torch", mgl32.Vec3{0, 0, 0}, true, 14},
		{"four away", mgl32.Vec3{4, 0, 0}, true, 10},
		{"out of reach", mgl32.Vec3{40, 0, 0}, true, 0},
		{"unlit", mgl32.Vec3{0, 0, 0}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			torch.Lit = tt.lit
			block, sky := core.UnpackLight(level.LightAt(tt.pos))
			assert.Equal(t, tt.block, block)
			assert.Equal(t, 15, sky)
		})
	}

	assert.Equal(t, 4, NewLevel(1).SkyLight, "odd levels are night")
}

func TestScene_Populate(t *testing.T) {
	a := NewScene(0, 4, 16, 7)
	b := NewScene(0, 4, 16, 7)
	require.Equal(t, len(a.Objects), len(b.Objects))
	for i := range a.Objects {
		assert.Equal(t, a.Objects[i].Pos, b.Objects[i].Pos, "same seed, same field")
	}

	cells := map[core.CellId]bool{}
	for _, obj := range a.Objects {
		cells[core.CellOf(obj.Pos, 16)] = true
		assert.Same(t, a.Level, obj.World())
	}
	assert.Len(t, cells, 16, "every object stays inside the 4x4 field")
}

func TestScene_Toggles(t *testing.T) {
	scene := NewScene(0, 2, 16, 3)
	n := &countingNotifier{}

	torch := scene.ToggleTorch(n)
	require.NotNil(t, torch)
	assert.False(t, torch.Lit)
	assert.GreaterOrEqual(t, n.changed, 1, "the torch itself is re-announced")

	pane := scene.TogglePane(n)
	require.NotNil(t, pane)
	assert.True(t, pane.Removed())
	assert.Equal(t, 1, n.removed)
}

func TestScene_RendersThroughPipeline(t *testing.T) {
	device := gpu.NewRecordingDevice()
	registry := core.NewRendererRegistry()
	RegisterRenderers(registry)
	camera := core.NewCameraState()

	scene := NewScene(0, 2, camera.CellSize, 11)
	camera.Position = scene.Center().Add(mgl32.Vec3{0, 0, 10})
	pipeline := region.NewPipeline(device, registry, camera, region.DefaultConfig())
	scene.Spawn(pipeline)

	stats := pipeline.RunPendingTasks()
	assert.Equal(t, 4, stats.Rebuilt, "one rebuild per cell")
	assert.Zero(t, stats.Failed)

	pass := gpu.NewRecordingPass()
	draws := pipeline.RenderAll(pass, camera.GetViewMatrix(), camera.GetProjectionMatrix())
	assert.Positive(t, draws)

	layers := map[*core.RenderLayer]bool{}
	for _, d := range pass.Draws {
		layers[d.Layer] = true
	}
	assert.True(t, layers[core.LayerSolid])
	assert.True(t, layers[core.LayerCutout])
	assert.True(t, layers[core.LayerTranslucent])
	assert.True(t, layers[core.LayerLines], "cell 0,0 has a beacon")
}

func TestPaneRenderer_UnknownColorFallsBack(t *testing.T) {
	assert.Equal(t, uint8(255), namedColor("not-a-color").R)
	assert.Equal(t, uint8(221), namedColor("plum").R)
}
