package mesh

import (
	"slices"

	"github.com/gekko3d/regioncache/regionrt/rt/core"
	"github.com/go-gl/mathgl/mgl32"
)

// SortState is the sort descriptor of a compiled translucent mesh: one centroid
// per primitive. It is enough to recompute a back-to-front index order for any
// viewpoint without reading vertex data.
type SortState struct {
	Topology  core.Topology
	Centroids []mgl32.Vec3
}

// NewSortState computes primitive centroids from vertex positions.
// ok is false if the topology cannot be sorted.
func NewSortState(topology core.Topology, positions []mgl32.Vec3) (*SortState, bool) {
	perPrim, _, ok := topology.PrimitiveSize()
	if !ok {
		return nil, false
	}
	n := len(positions) / perPrim
	s := &SortState{Topology: topology, Centroids: make([]mgl32.Vec3, n)}
	inv := 1 / float32(perPrim)
	for p := 0; p < n; p++ {
		var sum mgl32.Vec3
		for _, pos := range positions[p*perPrim : (p+1)*perPrim] {
			sum = sum.Add(pos)
		}
		s.Centroids[p] = sum.Mul(inv)
	}
	return s, true
}

func (s *SortState) PrimitiveCount() int {
	return len(s.Centroids)
}

func (s *SortState) IndexCount() int {
	_, perPrim, _ := s.Topology.PrimitiveSize()
	return len(s.Centroids) * perPrim
}

// SortScratch is reusable memory for building sorted index orders.
type SortScratch struct {
	order   []int
	dist    []float32
	indices []uint32
	bytes   []byte
}

func NewSortScratch() *SortScratch {
	return &SortScratch{}
}

// BuildSortedIndices orders primitives far-to-near from origin and returns
// their indices. The returned slice is owned by scratch and is overwritten by
// the next call. Primitives at equal distance keep their compile order.
func (s *SortState) BuildSortedIndices(scratch *SortScratch, origin mgl32.Vec3) []uint32 {
	n := len(s.Centroids)
	scratch.order = scratch.order[:0]
	scratch.dist = scratch.dist[:0]
	for p, c := range s.Centroids {
		scratch.order = append(scratch.order, p)
		d := c.Sub(origin)
		scratch.dist = append(scratch.dist, d.Dot(d))
	}
	dist := scratch.dist
	slices.SortStableFunc(scratch.order, func(a, b int) int {
		switch {
		case dist[a] > dist[b]:
			return -1
		case dist[a] < dist[b]:
			return 1
		}
		return 0
	})

	scratch.indices = scratch.indices[:0]
	if cap(scratch.indices) < s.IndexCount() {
		scratch.indices = make([]uint32, 0, s.IndexCount())
	}
	for _, p := range scratch.order[:n] {
		scratch.indices = appendPrimitive(scratch.indices, s.Topology, p)
	}
	return scratch.indices
}

// BuildSortedIndexBytes is BuildSortedIndices encoded for an index buffer.
func (s *SortState) BuildSortedIndexBytes(scratch *SortScratch, origin mgl32.Vec3) []byte {
	indices := s.BuildSortedIndices(scratch, origin)
	scratch.bytes = IndexBytes(scratch.bytes[:0], indices)
	return scratch.bytes
}

// Release drops the scratch memory.
func (scratch *SortScratch) Release() {
	scratch.order = nil
	scratch.dist = nil
	scratch.indices = nil
	scratch.bytes = nil
}
