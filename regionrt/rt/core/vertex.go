package core

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type AttributeUsage uint8

const (
	UsagePosition AttributeUsage = iota
	UsageColor
	UsageUV
	UsageOverlay
	UsageLight
	UsageNormal
)

type AttributeFormat uint8

const (
	FormatFloat32x2 AttributeFormat = iota
	FormatFloat32x3
	FormatUnorm8x4
	FormatUint16x2
	FormatSnorm8x4
)

// Size in bytes of one attribute of this format.
func (f AttributeFormat) Size() uint32 {
	switch f {
	case FormatFloat32x2:
		return 8
	case FormatFloat32x3:
		return 12
	case FormatUnorm8x4, FormatUint16x2, FormatSnorm8x4:
		return 4
	}
	return 0
}

func formatFor(u AttributeUsage) AttributeFormat {
	switch u {
	case UsagePosition:
		return FormatFloat32x3
	case UsageColor:
		return FormatUnorm8x4
	case UsageUV:
		return FormatFloat32x2
	case UsageOverlay, UsageLight:
		return FormatUint16x2
	case UsageNormal:
		return FormatSnorm8x4
	}
	panic("unknown attribute usage")
}

type VertexAttribute struct {
	Usage  AttributeUsage
	Format AttributeFormat
	Offset uint32
}

// VertexLayout describes how a layer's vertices are packed into its vertex buffer.
type VertexLayout struct {
	Name       string
	Attributes []VertexAttribute
	Stride     uint32
}

// NewVertexLayout packs the given attributes in order without padding.
// Every layout must start with a position.
func NewVertexLayout(name string, usages ...AttributeUsage) *VertexLayout {
	if len(usages) == 0 || usages[0] != UsagePosition {
		panic("vertex layout " + name + " must start with a position attribute")
	}
	l := &VertexLayout{Name: name}
	for _, u := range usages {
		f := formatFor(u)
		l.Attributes = append(l.Attributes, VertexAttribute{Usage: u, Format: f, Offset: l.Stride})
		l.Stride += f.Size()
	}
	return l
}

// Has reports whether the layout carries an attribute with the given usage.
func (l *VertexLayout) Has(u AttributeUsage) bool {
	for _, a := range l.Attributes {
		if a.Usage == u {
			return true
		}
	}
	return false
}

// Encode appends the bytes of v to dst using this layout.
func (l *VertexLayout) Encode(dst []byte, v Vertex) []byte {
	le := binary.LittleEndian
	for _, a := range l.Attributes {
		switch a.Usage {
		case UsagePosition:
			dst = le.AppendUint32(dst, math.Float32bits(v.Pos[0]))
			dst = le.AppendUint32(dst, math.Float32bits(v.Pos[1]))
			dst = le.AppendUint32(dst, math.Float32bits(v.Pos[2]))
		case UsageColor:
			dst = append(dst, v.Color[0], v.Color[1], v.Color[2], v.Color[3])
		case UsageUV:
			dst = le.AppendUint32(dst, math.Float32bits(v.UV[0]))
			dst = le.AppendUint32(dst, math.Float32bits(v.UV[1]))
		case UsageOverlay:
			dst = le.AppendUint16(dst, uint16(v.Overlay&0xFFFF))
			dst = le.AppendUint16(dst, uint16(v.Overlay>>16))
		case UsageLight:
			dst = le.AppendUint16(dst, uint16(v.Light&0xFFFF))
			dst = le.AppendUint16(dst, uint16(v.Light>>16))
		case UsageNormal:
			dst = append(dst, snorm8(v.Normal[0]), snorm8(v.Normal[1]), snorm8(v.Normal[2]), 0)
		}
	}
	return dst
}

func snorm8(f float32) byte {
	f = mgl32.Clamp(f, -1, 1)
	return byte(int8(f * 127))
}

var (
	LayoutPositionColor = NewVertexLayout("position_color", UsagePosition, UsageColor)
	LayoutBlock         = NewVertexLayout("block", UsagePosition, UsageColor, UsageUV, UsageLight, UsageNormal)
	LayoutEntity        = NewVertexLayout("entity", UsagePosition, UsageColor, UsageUV, UsageOverlay, UsageLight, UsageNormal)
)

// Vertex is one vertex as emitted by a renderer. Attributes the layer's layout
// does not carry are dropped on encode.
type Vertex struct {
	Pos     mgl32.Vec3
	Color   [4]uint8
	UV      mgl32.Vec2
	Overlay uint32
	Light   uint32
	Normal  mgl32.Vec3
}

// VertexSink receives the geometry of one render layer.
type VertexSink interface {
	AddVertex(v Vertex)
}

// SinkProvider hands out the sink for a layer. Renderers write every layer they
// need through the same provider.
type SinkProvider interface {
	Sink(layer *RenderLayer) VertexSink
}
