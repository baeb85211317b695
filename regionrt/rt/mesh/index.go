package mesh

import (
	"encoding/binary"

	"github.com/gekko3d/regioncache/regionrt/rt/core"
)

// SequentialIndices returns the default draw order for vertexCount vertices of
// the given topology, expanded to a list topology.
func SequentialIndices(topology core.Topology, vertexCount int) []uint32 {
	count := topology.IndexCount(vertexCount)
	indices := make([]uint32, 0, count)
	switch topology {
	case core.TopologyQuads:
		for base := 0; len(indices) < count; base += 4 {
			indices = appendQuad(indices, uint32(base))
		}
	case core.TopologyTriangles, core.TopologyLines:
		for i := 0; i < count; i++ {
			indices = append(indices, uint32(i))
		}
	case core.TopologyTriangleStrip:
		for i := 0; i+2 < vertexCount; i++ {
			a, b, c := uint32(i), uint32(i+1), uint32(i+2)
			if i%2 == 1 {
				a, b = b, a
			}
			indices = append(indices, a, b, c)
		}
	case core.TopologyTriangleFan:
		for i := 1; i+1 < vertexCount; i++ {
			indices = append(indices, 0, uint32(i), uint32(i+1))
		}
	}
	return indices
}

func appendQuad(dst []uint32, base uint32) []uint32 {
	return append(dst, base, base+1, base+2, base+2, base+3, base)
}

// appendPrimitive appends the indices of primitive p.
func appendPrimitive(dst []uint32, topology core.Topology, p int) []uint32 {
	switch topology {
	case core.TopologyQuads:
		return appendQuad(dst, uint32(p*4))
	case core.TopologyTriangles:
		base := uint32(p * 3)
		return append(dst, base, base+1, base+2)
	}
	return dst
}

// IndexBytes appends indices to dst as little-endian uint32.
func IndexBytes(dst []byte, indices []uint32) []byte {
	for _, i := range indices {
		dst = binary.LittleEndian.AppendUint32(dst, i)
	}
	return dst
}
