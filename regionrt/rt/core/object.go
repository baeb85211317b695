package core

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// ObjectId is the stable identity of a tracked object.
type ObjectId uuid.UUID

func NewObjectId() ObjectId {
	return ObjectId(uuid.New())
}

func (id ObjectId) String() string {
	return uuid.UUID(id).String()
}

// ObjectKind selects the renderer used for an object.
type ObjectKind string

// TrackedObject is a scene object whose geometry is cached per cell.
// The cache only reads it; it never mutates it.
type TrackedObject interface {
	ObjectId() ObjectId
	Kind() ObjectKind
	// Position is the object's anchor in world space. Geometry is emitted
	// relative to it.
	Position() mgl32.Vec3
	Removed() bool
	// World may return nil when the object is not attached to a world.
	World() World
}

// Renderer emits the cached geometry of one object kind.
type Renderer interface {
	RenderCached(obj TrackedObject, pose *PoseStack, sinks SinkProvider, partialTick float32, light uint32, overlay uint32)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(obj TrackedObject, pose *PoseStack, sinks SinkProvider, partialTick float32, light uint32, overlay uint32)

func (f RendererFunc) RenderCached(obj TrackedObject, pose *PoseStack, sinks SinkProvider, partialTick float32, light uint32, overlay uint32) {
	f(obj, pose, sinks, partialTick, light, overlay)
}

// RendererRegistry maps object kinds to renderers. Kinds without a renderer
// have no cached rendering path.
type RendererRegistry struct {
	renderers map[ObjectKind]Renderer
}

func NewRendererRegistry() *RendererRegistry {
	return &RendererRegistry{renderers: make(map[ObjectKind]Renderer)}
}

func (r *RendererRegistry) Register(kind ObjectKind, renderer Renderer) {
	if renderer == nil {
		delete(r.renderers, kind)
		return
	}
	r.renderers[kind] = renderer
}

func (r *RendererRegistry) Lookup(obj TrackedObject) (Renderer, bool) {
	if r == nil || obj == nil {
		return nil, false
	}
	renderer, ok := r.renderers[obj.Kind()]
	return renderer, ok
}

func (r *RendererRegistry) Len() int {
	return len(r.renderers)
}
