package core

// Topology is how a layer's vertex stream is assembled into primitives.
type Topology uint8

const (
	TopologyQuads Topology = iota
	TopologyTriangles
	TopologyLines
	TopologyTriangleStrip
	TopologyTriangleFan
)

func (t Topology) String() string {
	switch t {
	case TopologyQuads:
		return "quads"
	case TopologyTriangles:
		return "triangles"
	case TopologyLines:
		return "lines"
	case TopologyTriangleStrip:
		return "triangle_strip"
	case TopologyTriangleFan:
		return "triangle_fan"
	}
	return "unknown"
}

// IndexCount is the number of list indices needed to draw vertexCount vertices.
// Strips and fans are expanded into triangle lists.
func (t Topology) IndexCount(vertexCount int) int {
	if vertexCount <= 0 {
		return 0
	}
	switch t {
	case TopologyQuads:
		return vertexCount / 4 * 6
	case TopologyTriangles:
		return vertexCount - vertexCount%3
	case TopologyLines:
		return vertexCount - vertexCount%2
	case TopologyTriangleStrip, TopologyTriangleFan:
		if vertexCount < 3 {
			return 0
		}
		return (vertexCount - 2) * 3
	}
	return 0
}

// PrimitiveSize returns vertices and indices per sortable primitive.
// ok is false for topologies that cannot be depth sorted.
func (t Topology) PrimitiveSize() (vertices int, indices int, ok bool) {
	switch t {
	case TopologyQuads:
		return 4, 6, true
	case TopologyTriangles:
		return 3, 3, true
	}
	return 0, 0, false
}

// RenderLayer is a draw configuration geometry is grouped by.
// Layers are compared by pointer; declare them once and share them.
type RenderLayer struct {
	Name       string
	Topology   Topology
	Layout     *VertexLayout
	Blend      bool
	SortOnDraw bool
	// BufferSize is the initial scratch capacity in bytes. Zero uses the accumulator default.
	BufferSize int
}

func (l *RenderLayer) String() string {
	if l == nil {
		return "<nil layer>"
	}
	return l.Name
}

// Sorted reports whether the layer is re-sorted against the viewpoint every draw.
func (l *RenderLayer) Sorted() bool {
	if !l.SortOnDraw {
		return false
	}
	_, _, ok := l.Topology.PrimitiveSize()
	return ok
}

var (
	LayerSolid = &RenderLayer{
		Name:     "solid",
		Topology: TopologyQuads,
		Layout:   LayoutBlock,
	}
	LayerCutout = &RenderLayer{
		Name:     "cutout",
		Topology: TopologyQuads,
		Layout:   LayoutBlock,
	}
	LayerTranslucent = &RenderLayer{
		Name:       "translucent",
		Topology:   TopologyQuads,
		Layout:     LayoutBlock,
		Blend:      true,
		SortOnDraw: true,
		BufferSize: 262144,
	}
	LayerEntityTranslucent = &RenderLayer{
		Name:       "entity_translucent",
		Topology:   TopologyQuads,
		Layout:     LayoutEntity,
		Blend:      true,
		SortOnDraw: true,
	}
	LayerLines = &RenderLayer{
		Name:       "lines",
		Topology:   TopologyLines,
		Layout:     LayoutPositionColor,
		BufferSize: 65536,
	}
)
