package demo

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/regioncache/regionrt/rt/core"
)

// Notifier receives object changes. RegionCache and region.Pipeline satisfy it.
type Notifier interface {
	NotifyChanged(obj core.TrackedObject)
	NotifyRemoved(obj core.TrackedObject)
}

// lightRadius is the distance a torch's block light reaches.
const lightRadius = 14

var paneColors = []string{"lightskyblue", "plum", "palegreen", "lightsalmon"}

// Scene is a square field of cells, each with a torch, two panes and every
// fourth cell a beacon.
type Scene struct {
	Level    *Level
	Objects  []*Object
	Size     int
	CellSize float32

	rng *rand.Rand
}

func NewScene(level int, size int, cellSize float32, seed uint64) *Scene {
	if size <= 0 {
		size = 8
	}
	if cellSize <= 0 {
		cellSize = core.DefaultCellSize
	}
	s := &Scene{
		Level:    NewLevel(level),
		Size:     size,
		CellSize: cellSize,
		rng:      rand.New(rand.NewPCG(seed, uint64(level))),
	}
	s.populate()
	return s
}

func (s *Scene) populate() {
	half := s.Size / 2
	for cy := -half; cy < s.Size-half; cy++ {
		for cx := -half; cx < s.Size-half; cx++ {
			origin := mgl32.Vec3{float32(cx) * s.CellSize, float32(cy) * s.CellSize, 0}
			s.add(KindTorch, origin.Add(s.jitter()))
			for i := 0; i < 2; i++ {
				pane := s.add(KindPane, origin.Add(s.jitter()))
				pane.Color = paneColors[s.rng.IntN(len(paneColors))]
			}
			if (cx+cy)%4 == 0 {
				s.add(KindBeacon, origin.Add(mgl32.Vec3{s.CellSize / 2, s.CellSize / 2, 0}))
			}
		}
	}
}

func (s *Scene) add(kind core.ObjectKind, pos mgl32.Vec3) *Object {
	obj := s.Level.NewObject(kind, pos)
	obj.Phase = s.rng.Float32() * 2
	s.Objects = append(s.Objects, obj)
	return obj
}

// jitter is a random offset that keeps the object inside its cell.
func (s *Scene) jitter() mgl32.Vec3 {
	margin := s.CellSize * 0.1
	span := s.CellSize - 2*margin
	return mgl32.Vec3{margin + s.rng.Float32()*span, margin + s.rng.Float32()*span, 0}
}

// Spawn announces every live object.
func (s *Scene) Spawn(n Notifier) {
	for _, obj := range s.Objects {
		if !obj.Removed() {
			n.NotifyChanged(obj)
		}
	}
}

func (s *Scene) pick(kind core.ObjectKind) *Object {
	var candidates []*Object
	for _, obj := range s.Objects {
		if obj.kind == kind {
			candidates = append(candidates, obj)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	return candidates[s.rng.IntN(len(candidates))]
}

// ToggleTorch flips a random torch and re-announces every object its light
// reaches.
func (s *Scene) ToggleTorch(n Notifier) *Object {
	torch := s.pick(KindTorch)
	if torch == nil || torch.Removed() {
		return nil
	}
	torch.Lit = !torch.Lit
	for _, obj := range s.Objects {
		if !obj.Removed() && obj.Pos.Sub(torch.Pos).Len() <= lightRadius {
			n.NotifyChanged(obj)
		}
	}
	return torch
}

// TogglePane removes a random pane, or brings it back if it was removed.
func (s *Scene) TogglePane(n Notifier) *Object {
	pane := s.pick(KindPane)
	if pane == nil {
		return nil
	}
	if pane.Removed() {
		pane.SetRemoved(false)
		n.NotifyChanged(pane)
	} else {
		pane.SetRemoved(true)
		n.NotifyRemoved(pane)
	}
	return pane
}

// Center is the middle of the field on the ground plane.
func (s *Scene) Center() mgl32.Vec3 {
	offset := float32(s.Size%2) * s.CellSize / 2
	return mgl32.Vec3{offset, offset, 0}
}
