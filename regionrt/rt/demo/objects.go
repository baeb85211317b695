package demo

import (
	"github.com/gekko3d/regioncache/regionrt/rt/core"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	KindTorch  core.ObjectKind = "torch"
	KindPane   core.ObjectKind = "pane"
	KindBeacon core.ObjectKind = "beacon"
)

// Level is the world the demo objects live in. Lit torches are its only
// block light source.
type Level struct {
	Index    int
	SkyLight int
	torches  []*Object
}

func NewLevel(index int) *Level {
	sky := 15
	if index%2 == 1 {
		sky = 4
	}
	return &Level{Index: index, SkyLight: sky}
}

func (l *Level) LightAt(pos mgl32.Vec3) uint32 {
	block := 0
	for _, t := range l.torches {
		if !t.Lit || t.removed {
			continue
		}
		if v := 14 - int(t.Pos.Sub(pos).Len()); v > block {
			block = v
		}
	}
	return core.PackLight(block, l.SkyLight)
}

// Object is a static demo object. Pos is fixed for its lifetime, so the
// object never changes cell.
type Object struct {
	Id    core.ObjectId
	kind  core.ObjectKind
	Pos   mgl32.Vec3
	Lit   bool
	Color string
	// Phase offsets the flame animation.
	Phase float32

	level   *Level
	removed bool
}

func (l *Level) NewObject(kind core.ObjectKind, pos mgl32.Vec3) *Object {
	obj := &Object{Id: core.NewObjectId(), kind: kind, Pos: pos, level: l}
	if kind == KindTorch {
		obj.Lit = true
		l.torches = append(l.torches, obj)
	}
	return obj
}

func (o *Object) ObjectId() core.ObjectId { return o.Id }
func (o *Object) Kind() core.ObjectKind   { return o.kind }
func (o *Object) Position() mgl32.Vec3    { return o.Pos }
func (o *Object) Removed() bool           { return o.removed }

func (o *Object) World() core.World {
	if o.level == nil {
		return nil
	}
	return o.level
}

func (o *Object) SetRemoved(removed bool) {
	o.removed = removed
}
