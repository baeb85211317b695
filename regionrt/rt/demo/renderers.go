package demo

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/colornames"

	"github.com/gekko3d/regioncache/regionrt/rt/core"
)

func rgba(c color.RGBA, alpha uint8) [4]uint8 {
	return [4]uint8{c.R, c.G, c.B, alpha}
}

// namedColor resolves an SVG color name, falling back to white.
func namedColor(name string) color.RGBA {
	if c, ok := colornames.Map[name]; ok {
		return c
	}
	return colornames.White
}

func emitQuad(pose *core.PoseStack, sink core.VertexSink, corners [4]mgl32.Vec3, col [4]uint8, normal mgl32.Vec3, light, overlay uint32) {
	uvs := [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	for i, p := range corners {
		pose.Emit(sink, core.Vertex{Pos: p, Color: col, UV: uvs[i], Overlay: overlay, Light: light, Normal: normal})
	}
}

// emitBox emits the four sides and the top of an axis-aligned box.
func emitBox(pose *core.PoseStack, sink core.VertexSink, min, max mgl32.Vec3, col [4]uint8, light, overlay uint32) {
	x0, y0, z0 := min.Elem()
	x1, y1, z1 := max.Elem()
	faces := []struct {
		corners [4]mgl32.Vec3
		normal  mgl32.Vec3
	}{
		{[4]mgl32.Vec3{{x0, y0, z0}, {x1, y0, z0}, {x1, y0, z1}, {x0, y0, z1}}, mgl32.Vec3{0, -1, 0}},
		{[4]mgl32.Vec3{{x1, y1, z0}, {x0, y1, z0}, {x0, y1, z1}, {x1, y1, z1}}, mgl32.Vec3{0, 1, 0}},
		{[4]mgl32.Vec3{{x0, y1, z0}, {x0, y0, z0}, {x0, y0, z1}, {x0, y1, z1}}, mgl32.Vec3{-1, 0, 0}},
		{[4]mgl32.Vec3{{x1, y0, z0}, {x1, y1, z0}, {x1, y1, z1}, {x1, y0, z1}}, mgl32.Vec3{1, 0, 0}},
		{[4]mgl32.Vec3{{x0, y0, z1}, {x1, y0, z1}, {x1, y1, z1}, {x0, y1, z1}}, mgl32.Vec3{0, 0, 1}},
	}
	for _, f := range faces {
		emitQuad(pose, sink, f.corners, col, f.normal, light, overlay)
	}
}

// TorchRenderer draws a wooden post with a flame card on top. Unlit torches
// keep the post only.
func TorchRenderer(obj core.TrackedObject, pose *core.PoseStack, sinks core.SinkProvider, partialTick float32, light uint32, overlay uint32) {
	torch, ok := obj.(*Object)
	if !ok {
		return
	}
	emitBox(pose, sinks.Sink(core.LayerSolid), mgl32.Vec3{-0.1, -0.1, 0}, mgl32.Vec3{0.1, 0.1, 0.8}, rgba(colornames.Sienna, 255), light, overlay)
	if !torch.Lit {
		return
	}

	height := 0.3 + 0.05*float32(math.Sin(float64(torch.Phase+partialTick)*math.Pi))
	pose.Push()
	pose.Translate(0, 0, 0.8)
	pose.Scale(1, 1, height/0.3)
	emitQuad(pose, sinks.Sink(core.LayerCutout),
		[4]mgl32.Vec3{{-0.15, 0, 0}, {0.15, 0, 0}, {0.15, 0, 0.3}, {-0.15, 0, 0.3}},
		rgba(colornames.Orange, 255), mgl32.Vec3{0, -1, 0}, core.FullBright, overlay)
	pose.Pop()
}

// PaneRenderer draws two crossed glass panes in the object's color.
func PaneRenderer(obj core.TrackedObject, pose *core.PoseStack, sinks core.SinkProvider, partialTick float32, light uint32, overlay uint32) {
	name := "lightskyblue"
	if pane, ok := obj.(*Object); ok && pane.Color != "" {
		name = pane.Color
	}
	col := rgba(namedColor(name), 96)
	sink := sinks.Sink(core.LayerTranslucent)
	emitQuad(pose, sink, [4]mgl32.Vec3{{-0.5, 0, 0}, {0.5, 0, 0}, {0.5, 0, 1}, {-0.5, 0, 1}}, col, mgl32.Vec3{0, -1, 0}, light, overlay)
	emitQuad(pose, sink, [4]mgl32.Vec3{{0, -0.5, 0}, {0, 0.5, 0}, {0, 0.5, 1}, {0, -0.5, 1}}, col, mgl32.Vec3{1, 0, 0}, light, overlay)
}

// BeaconRenderer draws a vertical line marker.
func BeaconRenderer(obj core.TrackedObject, pose *core.PoseStack, sinks core.SinkProvider, partialTick float32, light uint32, overlay uint32) {
	sink := sinks.Sink(core.LayerLines)
	col := rgba(colornames.Lime, 255)
	pose.Emit(sink, core.Vertex{Pos: mgl32.Vec3{0, 0, 0}, Color: col})
	pose.Emit(sink, core.Vertex{Pos: mgl32.Vec3{0, 0, 6}, Color: col})
}

// RegisterRenderers binds the demo kinds to their renderers.
func RegisterRenderers(r *core.RendererRegistry) {
	r.Register(KindTorch, core.RendererFunc(TorchRenderer))
	r.Register(KindPane, core.RendererFunc(PaneRenderer))
	r.Register(KindBeacon, core.RendererFunc(BeaconRenderer))
}
