package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Pose is one entry of a PoseStack: the object-to-world transform and its normal matrix.
type Pose struct {
	Model  mgl32.Mat4
	Normal mgl32.Mat3
}

// PoseStack is a stack of transforms renderers push while emitting geometry.
type PoseStack struct {
	stack []Pose
}

func NewPoseStack() *PoseStack {
	return &PoseStack{stack: []Pose{{Model: mgl32.Ident4(), Normal: mgl32.Ident3()}}}
}

func (p *PoseStack) Last() *Pose {
	return &p.stack[len(p.stack)-1]
}

func (p *PoseStack) Push() {
	p.stack = append(p.stack, *p.Last())
}

func (p *PoseStack) Pop() {
	if len(p.stack) == 1 {
		panic("pose stack underflow")
	}
	p.stack = p.stack[:len(p.stack)-1]
}

// Depth is the number of pushes not yet popped.
func (p *PoseStack) Depth() int {
	return len(p.stack) - 1
}

func (p *PoseStack) Translate(x, y, z float32) {
	last := p.Last()
	last.Model = last.Model.Mul4(mgl32.Translate3D(x, y, z))
}

func (p *PoseStack) Scale(x, y, z float32) {
	last := p.Last()
	last.Model = last.Model.Mul4(mgl32.Scale3D(x, y, z))
	if x == y && y == z {
		if x < 0 {
			last.Normal = last.Normal.Mul(-1)
		}
		return
	}
	last.Normal = last.Normal.Mul3(mgl32.Diag3(mgl32.Vec3{1 / x, 1 / y, 1 / z}))
}

func (p *PoseStack) Rotate(q mgl32.Quat) {
	last := p.Last()
	last.Model = last.Model.Mul4(q.Mat4())
	last.Normal = last.Normal.Mul3(q.Mat4().Mat3())
}

// Emit transforms v by the current pose and hands it to sink.
func (p *PoseStack) Emit(sink VertexSink, v Vertex) {
	last := p.Last()
	v.Pos = mgl32.TransformCoordinate(v.Pos, last.Model)
	if v.Normal != (mgl32.Vec3{}) {
		v.Normal = last.Normal.Mul3x1(v.Normal).Normalize()
	}
	sink.AddVertex(v)
}
